package sheet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize puts in every new workbook.
const defaultSheet = "Sheet1"

// Open opens an existing workbook. Permission errors (typically a file
// locked by a spreadsheet application) are wrapped so that errors.Is
// reports fs.ErrPermission.
func Open(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook %q: %w", path, err)
	}
	return f, nil
}

// OpenOrCreate opens the workbook at path, or returns a new workbook whose
// only sheet is called name when the file does not exist yet.
func OpenOrCreate(path, name string) (*excelize.File, error) {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		f := excelize.NewFile()
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			f.Close()
			return nil, fmt.Errorf("cannot create sheet %q: %w", name, err)
		}
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot stat workbook %q: %w", path, err)
	}
	return Open(path)
}

// EnsureSheet creates sheet name in f when it does not exist.
func EnsureSheet(f *excelize.File, name string) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("invalid sheet name %q: %w", name, err)
	}
	if idx >= 0 {
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("cannot create sheet %q: %w", name, err)
	}
	return nil
}

// ReplaceSheet makes sure sheet name exists in f and is blank: an existing
// sheet is dropped with its values, styles and merged cells.
func ReplaceSheet(f *excelize.File, name string) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("invalid sheet name %q: %w", name, err)
	}
	if idx < 0 {
		return EnsureSheet(f, name)
	}
	// a workbook cannot lose its last sheet, so the blank one is created first.
	tmp := name + "~"
	if _, err := f.NewSheet(tmp); err != nil {
		return fmt.Errorf("cannot create sheet %q: %w", tmp, err)
	}
	if err := f.DeleteSheet(name); err != nil {
		return fmt.Errorf("cannot delete sheet %q: %w", name, err)
	}
	if err := f.SetSheetName(tmp, name); err != nil {
		return fmt.Errorf("cannot rename sheet %q: %w", tmp, err)
	}
	return nil
}

// Activate makes sheet name the one displayed when the workbook is opened.
func Activate(f *excelize.File, name string) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return err
	}
	if idx >= 0 {
		f.SetActiveSheet(idx)
	}
	return nil
}

// Save writes f to path, creating the parent directory if needed.
func Save(f *excelize.File, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create directory %q: %w", dir, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save workbook %q: %w", path, err)
	}
	return nil
}
