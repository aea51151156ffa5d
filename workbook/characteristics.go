package workbook

import (
	"fmt"

	"github.com/etnz/perfsheet"
	"github.com/etnz/perfsheet/sheet"
	"github.com/xuri/excelize/v2"
)

// FillCharacteristics writes the characteristics in sheet name of f, the
// formatted template. The title cell keeps its style but gets a bold
// Tahoma 12 font, centered.
func FillCharacteristics(f *excelize.File, name string, c *perfsheet.Characteristics) error {
	for _, v := range c.Values {
		if err := f.SetCellFloat(name, v.Cell, v.Value.InexactFloat64(), -1, 64); err != nil {
			return fmt.Errorf("cannot write %s!%s: %w", name, v.Cell, err)
		}
	}
	if c.Title == "" || c.TitleCell == "" {
		return nil
	}

	if err := f.SetCellValue(name, c.TitleCell, c.Title); err != nil {
		return fmt.Errorf("cannot write title in %s!%s: %w", name, c.TitleCell, err)
	}
	st := &excelize.Style{}
	id, err := f.GetCellStyle(name, c.TitleCell)
	if err != nil {
		return err
	}
	if id != 0 {
		if st, err = f.GetStyle(id); err != nil {
			return err
		}
	}
	st.Font = &excelize.Font{Family: "Tahoma", Size: 12, Bold: true}
	if st.Alignment == nil {
		st.Alignment = &excelize.Alignment{}
	}
	st.Alignment.Horizontal, st.Alignment.Vertical = "center", "center"
	return setStyle(f, name, c.TitleCell, c.TitleCell, st)
}

// PublishCharacteristics copies sheet src of from into the Characteristics
// sheet of the master workbook at path, which is created when absent.
//
// The cells listed in skip keep the content they have in the master
// workbook.
func PublishCharacteristics(from *excelize.File, src, path string, skip []string) (err error) {
	to, err := sheet.OpenOrCreate(path, CharacteristicsSheet)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := to.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("cannot close workbook %q: %w", path, cerr)
		}
	}()

	if err := sheet.CopySheet(from, src, to, CharacteristicsSheet, skip...); err != nil {
		return fmt.Errorf("cannot copy %q into %q: %w", src, path, err)
	}
	return sheet.Save(to, path)
}
