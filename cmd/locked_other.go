//go:build !windows

package cmd

// isSharingViolation is always false: only Windows refuses to open a file
// because another process has it open.
func isSharingViolation(error) bool { return false }
