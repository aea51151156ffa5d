package workbook

import (
	"github.com/etnz/perfsheet"
	"github.com/xuri/excelize/v2"
)

var holdingsWidths = map[string]float64{"A": 20, "B": 12, "C": 20, "D": 20, "E": 15, "I": 20}

// WriteHoldings writes the holdings table, with its header, in the Holdings
// sheet of the workbook at path.
func WriteHoldings(path string, holdings []perfsheet.Holding) error {
	return replace(path, HoldingsSheet, func(f *excelize.File) error {
		rows := [][]any{headerRow(perfsheet.HoldingsHeader)}
		for _, h := range holdings {
			rows = append(rows, h.Values())
		}
		if err := writeRows(f, HoldingsSheet, 1, rows); err != nil {
			return err
		}

		err := setStyle(f, HoldingsSheet, "A1", cellName(len(perfsheet.HoldingsHeader), 1), &excelize.Style{
			Font:      &excelize.Font{Family: "Arial", Size: 8, Bold: true, Underline: "single"},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "bottom"},
		})
		if err != nil {
			return err
		}
		return setWidths(f, HoldingsSheet, holdingsWidths)
	})
}

func headerRow(header []string) []any {
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	return row
}
