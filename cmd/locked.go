package cmd

import (
	"errors"
	"io/fs"
)

// isLocked reports whether err comes from a file held by another process,
// typically a workbook open in a spreadsheet application.
func isLocked(err error) bool {
	return errors.Is(err, fs.ErrPermission) || isSharingViolation(err)
}
