package workbook

import (
	"github.com/etnz/perfsheet"
	"github.com/xuri/excelize/v2"
)

// percentFormat is the built-in "0.00%" number format.
const percentFormat = 10

// WritePerformance writes the performance table in the Performance sheet of
// the workbook at path. Returns are fractions displayed as percentages.
func WritePerformance(path string, perf []perfsheet.PerformanceRow) error {
	return replace(path, PerformanceSheet, func(f *excelize.File) error {
		rows := [][]any{headerRow(perfsheet.PerformanceHeader)}
		for _, p := range perf {
			rows = append(rows, p.Values())
		}
		if err := writeRows(f, PerformanceSheet, 1, rows); err != nil {
			return err
		}
		if len(perf) > 0 {
			if err := setStyle(f, PerformanceSheet, "B2", cellName(3, len(perf)+1), &excelize.Style{NumFmt: percentFormat}); err != nil {
				return err
			}
		}
		return setWidths(f, PerformanceSheet, map[string]float64{"A": 15, "B": 15, "C": 15, "D": 15})
	})
}
