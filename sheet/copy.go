package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CopySheet copies sheet src of workbook from into sheet dst of workbook to.
//
// The destination sheet is created if needed. Cell values and formulas,
// cell styles, hyperlinks and comments are copied for every cell of the
// source used range except the coordinates listed in skip. Merged ranges,
// column widths and visibility, row heights and visibility, sheet
// properties, panes and page margins are copied as well.
//
// Copying into a sheet that was already published replaces it: merged
// ranges and comments already present in dst are removed first, and a cell
// of dst that is empty in src is cleared. Skipped cells keep whatever dst
// holds.
func CopySheet(from *excelize.File, src string, to *excelize.File, dst string, skip ...string) error {
	if err := EnsureSheet(to, dst); err != nil {
		return err
	}
	skipped := make(map[string]bool, len(skip))
	for _, c := range skip {
		skipped[strings.ToUpper(strings.TrimSpace(c))] = true
	}

	maxCol, maxRow, err := usedRange(from, src)
	if err != nil {
		return err
	}
	dstCol, dstRow, err := usedRange(to, dst)
	if err != nil {
		return err
	}
	if err := unmergeAll(to, dst); err != nil {
		return err
	}
	hidden, err := mergedTails(from, src)
	if err != nil {
		return err
	}

	styles := make(map[int]int) // source style ID -> destination style ID
	for row := 1; row <= max(maxRow, dstRow); row++ {
		for col := 1; col <= max(maxCol, dstCol); col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			if skipped[cell] {
				continue
			}
			if err := copyStyle(from, src, to, dst, cell, styles); err != nil {
				return fmt.Errorf("cannot copy style of %s!%s: %w", src, cell, err)
			}
			// excelize reads any cell of a merged range as its top-left cell.
			if hidden[cell] {
				if err := to.SetCellValue(dst, cell, nil); err != nil {
					return fmt.Errorf("cannot clear %s!%s: %w", dst, cell, err)
				}
				continue
			}
			if err := copyValue(from, src, to, dst, cell); err != nil {
				return fmt.Errorf("cannot copy value of %s!%s: %w", src, cell, err)
			}
			if err := copyHyperlink(from, src, to, dst, cell); err != nil {
				return fmt.Errorf("cannot copy hyperlink of %s!%s: %w", src, cell, err)
			}
		}
	}

	if err := deleteComments(to, dst, skipped); err != nil {
		return err
	}
	comments, err := from.GetComments(src)
	if err != nil {
		return fmt.Errorf("cannot read comments of %q: %w", src, err)
	}
	for _, c := range comments {
		if skipped[strings.ToUpper(c.Cell)] {
			continue
		}
		if err := to.AddComment(dst, c); err != nil {
			return fmt.Errorf("cannot copy comment of %s!%s: %w", src, c.Cell, err)
		}
	}

	if err := copyMerges(from, src, to, dst); err != nil {
		return err
	}
	return copyLayout(from, src, to, dst, maxCol, maxRow)
}

// usedRange returns the last column and row of sheet, from its declared
// dimension and from its actual values, whichever is larger.
func usedRange(f *excelize.File, sheet string) (maxCol, maxRow int, err error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, 0, fmt.Errorf("cannot read rows of %q: %w", sheet, err)
	}
	maxRow = len(rows)
	for _, r := range rows {
		maxCol = max(maxCol, len(r))
	}

	dim, err := f.GetSheetDimension(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("cannot read dimension of %q: %w", sheet, err)
	}
	if dim != "" {
		parts := strings.Split(dim, ":")
		col, row, err := excelize.CellNameToCoordinates(parts[len(parts)-1])
		if err == nil {
			maxCol, maxRow = max(maxCol, col), max(maxRow, row)
		}
	}

	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("cannot read merged cells of %q: %w", sheet, err)
	}
	for _, mc := range merges {
		col, row, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err == nil {
			maxCol, maxRow = max(maxCol, col), max(maxRow, row)
		}
	}
	return maxCol, maxRow, nil
}

func copyValue(from *excelize.File, src string, to *excelize.File, dst, cell string) error {
	formula, err := from.GetCellFormula(src, cell)
	if err != nil {
		return err
	}
	if formula != "" {
		return to.SetCellFormula(dst, cell, formula)
	}

	raw, err := from.GetCellValue(src, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return err
	}
	if raw == "" {
		return to.SetCellValue(dst, cell, nil)
	}
	typ, err := from.GetCellType(src, cell)
	if err != nil {
		return err
	}
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return to.SetCellStr(dst, cell, raw)
	case excelize.CellTypeBool:
		return to.SetCellBool(dst, cell, raw == "1" || strings.EqualFold(raw, "true"))
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return to.SetCellFloat(dst, cell, v, -1, 64)
	}
	return to.SetCellStr(dst, cell, raw)
}

func copyStyle(from *excelize.File, src string, to *excelize.File, dst, cell string, styles map[int]int) error {
	id, err := from.GetCellStyle(src, cell)
	if err != nil || id == 0 {
		return err
	}
	nid, ok := styles[id]
	if !ok {
		style, err := from.GetStyle(id)
		if err != nil {
			return err
		}
		if nid, err = to.NewStyle(style); err != nil {
			return err
		}
		styles[id] = nid
	}
	return to.SetCellStyle(dst, cell, cell, nid)
}

func copyHyperlink(from *excelize.File, src string, to *excelize.File, dst, cell string) error {
	ok, link, err := from.GetCellHyperLink(src, cell)
	if err != nil || !ok {
		return err
	}
	linkType := "Location"
	if strings.Contains(link, "://") || strings.HasPrefix(link, "mailto:") {
		linkType = "External"
	}
	return to.SetCellHyperLink(dst, cell, link, linkType)
}

// deleteComments removes the comments of sheet, except on skipped cells.
func deleteComments(f *excelize.File, sheet string, skipped map[string]bool) error {
	comments, err := f.GetComments(sheet)
	if err != nil {
		return fmt.Errorf("cannot read comments of %q: %w", sheet, err)
	}
	for _, c := range comments {
		if skipped[strings.ToUpper(c.Cell)] {
			continue
		}
		if err := f.DeleteComment(sheet, c.Cell); err != nil {
			return fmt.Errorf("cannot delete comment of %s!%s: %w", sheet, c.Cell, err)
		}
	}
	return nil
}

// unmergeAll removes every merged range of sheet, keeping cell values.
func unmergeAll(f *excelize.File, sheet string) error {
	old, err := f.GetMergeCells(sheet)
	if err != nil {
		return fmt.Errorf("cannot read merged cells of %q: %w", sheet, err)
	}
	for _, mc := range old {
		if err := f.UnmergeCell(sheet, mc.GetStartAxis(), mc.GetEndAxis()); err != nil {
			return fmt.Errorf("cannot unmerge %s:%s in %q: %w", mc.GetStartAxis(), mc.GetEndAxis(), sheet, err)
		}
	}
	return nil
}

// mergedTails returns the cells covered by a merged range of sheet, except
// the top-left cell of each range.
func mergedTails(f *excelize.File, sheet string) (map[string]bool, error) {
	merges, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("cannot read merged cells of %q: %w", sheet, err)
	}
	tails := make(map[string]bool)
	for _, mc := range merges {
		c1, r1, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			return nil, err
		}
		c2, r2, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		for row := r1; row <= r2; row++ {
			for col := c1; col <= c2; col++ {
				if row == r1 && col == c1 {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(col, row)
				tails[cell] = true
			}
		}
	}
	return tails, nil
}

func copyMerges(from *excelize.File, src string, to *excelize.File, dst string) error {
	merges, err := from.GetMergeCells(src)
	if err != nil {
		return fmt.Errorf("cannot read merged cells of %q: %w", src, err)
	}
	for _, mc := range merges {
		if err := to.MergeCell(dst, mc.GetStartAxis(), mc.GetEndAxis()); err != nil {
			return fmt.Errorf("cannot merge %s:%s in %q: %w", mc.GetStartAxis(), mc.GetEndAxis(), dst, err)
		}
	}
	return nil
}

func copyLayout(from *excelize.File, src string, to *excelize.File, dst string, maxCol, maxRow int) error {
	props, err := from.GetSheetProps(src)
	if err != nil {
		return fmt.Errorf("cannot read properties of %q: %w", src, err)
	}
	if err := to.SetSheetProps(dst, &props); err != nil {
		return fmt.Errorf("cannot set properties of %q: %w", dst, err)
	}

	margins, err := from.GetPageMargins(src)
	if err != nil {
		return fmt.Errorf("cannot read page margins of %q: %w", src, err)
	}
	if err := to.SetPageMargins(dst, &margins); err != nil {
		return fmt.Errorf("cannot set page margins of %q: %w", dst, err)
	}

	panes, err := from.GetPanes(src)
	if err != nil {
		return fmt.Errorf("cannot read panes of %q: %w", src, err)
	}
	if panes.Freeze || panes.Split {
		if err := to.SetPanes(dst, &panes); err != nil {
			return fmt.Errorf("cannot set panes of %q: %w", dst, err)
		}
	}

	for col := 1; col <= maxCol; col++ {
		name := ColumnName(col)
		width, err := from.GetColWidth(src, name)
		if err != nil {
			return err
		}
		if err := to.SetColWidth(dst, name, name, width); err != nil {
			return err
		}
		visible, err := from.GetColVisible(src, name)
		if err != nil {
			return err
		}
		if !visible {
			if err := to.SetColVisible(dst, name, false); err != nil {
				return err
			}
		}
	}
	for row := 1; row <= maxRow; row++ {
		height, err := from.GetRowHeight(src, row)
		if err != nil {
			return err
		}
		if err := to.SetRowHeight(dst, row, height); err != nil {
			return err
		}
		visible, err := from.GetRowVisible(src, row)
		if err != nil {
			return err
		}
		if !visible {
			if err := to.SetRowVisible(dst, row, false); err != nil {
				return err
			}
		}
	}
	return nil
}
