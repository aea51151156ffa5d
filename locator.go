package perfsheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/perfsheet/sheet"
	"github.com/shopspring/decimal"
)

// Locator finds a row by the label it holds in a given column.
type Locator struct {
	Column   string `yaml:"column"`   // column letters where the label is searched
	Label    string `yaml:"label"`    // text of the label
	Contains bool   `yaml:"contains"` // match a substring instead of the whole (trimmed) cell
	From     int    `yaml:"from"`     // first row searched, 0 means 1
}

func (l Locator) String() string {
	if l.Contains {
		return fmt.Sprintf("%s~%q", l.Column, l.Label)
	}
	return fmt.Sprintf("%s=%q", l.Column, l.Label)
}

// Validate checks that the locator can be used on a grid.
func (l Locator) Validate() error {
	if _, err := sheet.ColumnNumber(l.Column); err != nil {
		return fmt.Errorf("locator %s: invalid column: %w", l, err)
	}
	if strings.TrimSpace(l.Label) == "" {
		return fmt.Errorf("locator %s: empty label", l)
	}
	return nil
}

func (l Locator) match(v sheet.Value) bool {
	if l.Contains {
		return strings.Contains(string(v), l.Label)
	}
	return v.Trim() == strings.TrimSpace(l.Label)
}

// Find returns the only row of g matching the locator.
func (l Locator) Find(g *sheet.Grid) (int, error) {
	rows := l.FindAll(g)
	switch len(rows) {
	case 0:
		return 0, fmt.Errorf("%w: %s in sheet %q", ErrLabelNotFound, l, g.Name)
	case 1:
		return rows[0], nil
	default:
		return 0, fmt.Errorf("%w: %s in sheet %q matches rows %v", ErrAmbiguousLabel, l, g.Name, rows)
	}
}

// FindAll returns all the rows of g matching the locator, in order.
func (l Locator) FindAll(g *sheet.Grid) []int {
	col := sheet.MustColumnNumber(l.Column)
	var rows []int
	for row := max(l.From, 1); row <= g.MaxRow(); row++ {
		if l.match(g.At(col, row)) {
			rows = append(rows, row)
		}
	}
	return rows
}

// Field is a value read in column Value, Offset rows below the row found by
// the locator.
type Field struct {
	Locator `yaml:",inline"`
	Offset  int    `yaml:"offset"`
	Value   string `yaml:"value"`
}

// Validate checks that the field can be used on a grid.
func (f Field) Validate() error {
	if err := f.Locator.Validate(); err != nil {
		return err
	}
	if _, err := sheet.ColumnNumber(f.Value); err != nil {
		return fmt.Errorf("field %s: invalid value column: %w", f.Locator, err)
	}
	if f.Offset < 0 {
		return fmt.Errorf("field %s: negative offset %d", f.Locator, f.Offset)
	}
	return nil
}

// Read returns the raw value of the field and the coordinates it was read at.
func (f Field) Read(g *sheet.Grid) (sheet.Value, string, error) {
	row, err := f.Find(g)
	if err != nil {
		return "", "", err
	}
	target := row + f.Offset
	if target > g.MaxRow() {
		return "", "", fmt.Errorf("%w: %s found at row %d, +%d is past the last row %d of sheet %q",
			ErrOffsetOutOfRange, f.Locator, row, f.Offset, g.MaxRow(), g.Name)
	}
	cell := fmt.Sprintf("%s%d", strings.ToUpper(strings.TrimSpace(f.Value)), target)
	return g.Cell(f.Value, target), cell, nil
}

// Decimal returns the value of the field as a number. An empty cell is an
// error.
func (f Field) Decimal(g *sheet.Grid) (decimal.Decimal, error) {
	v, cell, err := f.Read(g)
	if err != nil {
		return decimal.Zero, err
	}
	if v.IsEmpty() {
		return decimal.Zero, fmt.Errorf("%w: %s!%s for %s", ErrEmptyValue, g.Name, cell, f.Locator)
	}
	return parseNumber(v, g.Name, cell)
}

// DecimalOrZero is like Decimal but an empty cell counts as zero.
func (f Field) DecimalOrZero(g *sheet.Grid) (decimal.Decimal, error) {
	d, err := f.Decimal(g)
	if errors.Is(err, ErrEmptyValue) {
		return decimal.Zero, nil
	}
	return d, err
}

func parseNumber(v sheet.Value, sheetName, cell string) (decimal.Decimal, error) {
	d, err := v.Decimal()
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s!%s is %q", ErrNotNumeric, sheetName, cell, v)
	}
	return d, nil
}

// optionalNumber parses v as a number, an empty cell is zero.
func optionalNumber(v sheet.Value, sheetName, cell string) (decimal.Decimal, error) {
	if v.IsEmpty() {
		return decimal.Zero, nil
	}
	return parseNumber(v, sheetName, cell)
}
