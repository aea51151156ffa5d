package workbook

import (
	"slices"

	"github.com/etnz/perfsheet"
	"github.com/xuri/excelize/v2"
)

const (
	gray      = "D3D3D3"
	lightBlue = "ADD8E6"
	darkBlue  = "00008B"

	decimalFormat = 2 // built-in "0.00"
)

// allocationMerges are the merged ranges of the allocations sheet, lined up
// with the distributed template.
var allocationMerges = [][2]string{
	{"A1", "K1"}, {"A2", "K2"}, {"A3", "K3"}, {"A4", "K4"},
	{"A5", "K5"}, {"A6", "K6"}, {"A7", "K7"}, {"A8", "K8"},
	{"A13", "C13"},
}

// WriteAllocations writes the allocation rows in the Allocations sheet of
// the workbook at path. Row 1 is left blank and rows are written from row 2,
// without header.
func WriteAllocations(path string, alloc []perfsheet.AllocationRow, titles []string) error {
	return replace(path, AllocationsSheet, func(f *excelize.File) error {
		rows := make([][]any, len(alloc))
		for i, r := range alloc {
			rows[i] = r.Values()
		}
		if err := writeRows(f, AllocationsSheet, 2, rows); err != nil {
			return err
		}

		for i, r := range alloc {
			row := i + 2
			title := r.IsTitle(titles)
			for col := 1; col <= 3; col++ {
				cell := cellName(col, row)
				if err := setStyle(f, AllocationsSheet, cell, cell, allocationStyle(col, row, title)); err != nil {
					return err
				}
			}
		}

		for _, m := range allocationMerges {
			if err := f.MergeCell(AllocationsSheet, m[0], m[1]); err != nil {
				return err
			}
		}
		return setWidths(f, AllocationsSheet, map[string]float64{"A": 30, "B": 30, "C": 30})
	})
}

// allocationStyle returns the style of the cell at col and row of the
// allocations sheet.
func allocationStyle(col, row int, title bool) *excelize.Style {
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	st := &excelize.Style{Font: &excelize.Font{Family: "Tahoma", Size: 10}}
	if title {
		st.Fill = solid(gray)
		st.Font.Bold = true
		st.Alignment = center
	}
	if col > 1 {
		st.NumFmt = decimalFormat
		st.Alignment = center
		return st
	}

	switch {
	case row >= 2 && row <= 7:
		st.Fill = solid(lightBlue)
	case slices.Contains([]int{11, 15}, row):
		st.Font = &excelize.Font{Family: "Tahoma", Size: 10, Bold: true}
	case row == 13:
		st.Alignment = center
		st.Font = &excelize.Font{Family: "Tahoma", Size: 11, Bold: true, Color: darkBlue}
	}
	return st
}
