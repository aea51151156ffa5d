// Package sheet reads worksheets into in-memory grids and copies worksheets
// between workbooks.
//
// It is a thin layer over excelize: the extraction logic of perfsheet works
// on [Grid] values, so that it can be tested without any file on disk, while
// the workbook plumbing (opening, creating, replacing and copying sheets)
// lives here.
package sheet
