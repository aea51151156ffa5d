package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is a read-only copy of the values of a worksheet.
//
// Rows and columns are 1-based like in the spreadsheet, columns are addressed
// by their letters ("A", "AC"). Reading outside of the used range returns an
// empty Value.
type Grid struct {
	Name string
	rows [][]Value
}

// NewGrid builds a grid from rows of raw cell values, rows[0] being row 1.
func NewGrid(name string, rows [][]string) *Grid {
	g := &Grid{Name: name, rows: make([][]Value, len(rows))}
	for i, row := range rows {
		g.rows[i] = make([]Value, len(row))
		for j, v := range row {
			g.rows[i][j] = Value(v)
		}
	}
	return g
}

// ReadGrid reads the raw values of sheet name in f.
func ReadGrid(f *excelize.File, name string) (*Grid, error) {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("invalid sheet name %q: %w", name, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in %q", name, f.Path)
	}
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("cannot read rows of sheet %q: %w", name, err)
	}
	return NewGrid(name, rows), nil
}

// ReadFirstGrid reads the first sheet of f, whatever its name.
func ReadFirstGrid(f *excelize.File) (*Grid, error) {
	name := f.GetSheetName(0)
	if name == "" {
		return nil, fmt.Errorf("no sheets found in %q", f.Path)
	}
	return ReadGrid(f, name)
}

// ReadFile opens the workbook at path and reads one of its sheets. An empty
// sheet name reads the first sheet.
func ReadFile(path, name string) (*Grid, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if name == "" {
		return ReadFirstGrid(f)
	}
	return ReadGrid(f, name)
}

// MaxRow returns the index of the last row holding data.
func (g *Grid) MaxRow() int { return len(g.rows) }

// At returns the value at the 1-based column and row numbers.
func (g *Grid) At(col, row int) Value {
	if row < 1 || row > len(g.rows) {
		return ""
	}
	r := g.rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return r[col-1]
}

// Cell returns the value at column letters col and row number row.
// It panics if col is not a valid column name, columns are expected to be
// validated with [ColumnNumber] when the layout is loaded.
func (g *Grid) Cell(col string, row int) Value {
	return g.At(MustColumnNumber(col), row)
}

// Row returns a copy of the values of row, or nil outside of the used range.
func (g *Grid) Row(row int) []Value {
	if row < 1 || row > len(g.rows) {
		return nil
	}
	return append([]Value(nil), g.rows[row-1]...)
}

// ColumnNumber converts column letters to their 1-based number.
func ColumnNumber(col string) (int, error) {
	return excelize.ColumnNameToNumber(strings.TrimSpace(col))
}

// MustColumnNumber is like ColumnNumber but panics on error.
func MustColumnNumber(col string) int {
	n, err := ColumnNumber(col)
	if err != nil {
		panic(err.Error())
	}
	return n
}

// ColumnName converts a 1-based column number to its letters.
func ColumnName(n int) string {
	name, err := excelize.ColumnNumberToName(n)
	if err != nil {
		panic(err.Error())
	}
	return name
}
