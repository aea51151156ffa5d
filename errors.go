package perfsheet

import "errors"

var (
	// ErrLabelNotFound is returned when a locator label is in none of the rows.
	ErrLabelNotFound = errors.New("label not found")
	// ErrAmbiguousLabel is returned when a locator label is in more than one row.
	ErrAmbiguousLabel = errors.New("ambiguous label")
	// ErrOffsetOutOfRange is returned when a field offset points past the last row.
	ErrOffsetOutOfRange = errors.New("offset out of range")
	// ErrEmptyValue is returned when a required cell is empty.
	ErrEmptyValue = errors.New("empty value")
	// ErrNotNumeric is returned when a cell expected to be a number is not.
	ErrNotNumeric = errors.New("not a number")
	// ErrMissingColumn is returned when a header label is absent from the header row.
	ErrMissingColumn = errors.New("missing column")
	// ErrNoCountry is returned when a security is not preceded by any country header.
	ErrNoCountry = errors.New("security without country")
	// ErrNoCashRow is returned when the holdings have no row without identifier.
	ErrNoCashRow = errors.New("no cash row")
	// ErrAmbiguousCash is returned when more than one holding has no identifier.
	ErrAmbiguousCash = errors.New("more than one cash row")
)
