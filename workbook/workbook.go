// Package workbook writes the sheets of the performance sheet: each stage
// replaces one sheet of an output workbook, which is created when absent.
package workbook

import (
	"fmt"

	"github.com/etnz/perfsheet/sheet"
	"github.com/xuri/excelize/v2"
)

// Names of the sheets written by each stage.
const (
	HoldingsSheet        = "Holdings"
	PerformanceSheet     = "Performance"
	AllocationsSheet     = "Allocations"
	CharacteristicsSheet = "Characteristics"
)

// replace opens (or creates) the workbook at path, replaces sheet name with
// a blank one filled by fill, and saves the workbook.
func replace(path, name string, fill func(f *excelize.File) error) (err error) {
	f, err := sheet.OpenOrCreate(path, name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("cannot close workbook %q: %w", path, cerr)
		}
	}()

	if err := sheet.ReplaceSheet(f, name); err != nil {
		return err
	}
	if err := fill(f); err != nil {
		return fmt.Errorf("cannot write sheet %q of %q: %w", name, path, err)
	}
	if err := sheet.Activate(f, name); err != nil {
		return err
	}
	return sheet.Save(f, path)
}

// writeRows writes rows from row first, starting in column A.
func writeRows(f *excelize.File, name string, first int, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, first+i)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// setStyle creates style st and applies it to the range from:to.
func setStyle(f *excelize.File, name, from, to string, st *excelize.Style) error {
	id, err := f.NewStyle(st)
	if err != nil {
		return err
	}
	return f.SetCellStyle(name, from, to, id)
}

// setWidths sets the width of each column.
func setWidths(f *excelize.File, name string, widths map[string]float64) error {
	for col, w := range widths {
		if err := f.SetColWidth(name, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func solid(color string) excelize.Fill {
	return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
