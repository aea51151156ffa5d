package sheet

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Value is the raw content of a cell as stored in the workbook, before any
// number format is applied. The zero Value is an empty cell.
type Value string

// IsEmpty reports whether the cell holds nothing but blanks.
func (v Value) IsEmpty() bool { return strings.TrimSpace(string(v)) == "" }

func (v Value) String() string { return string(v) }

// Trim returns the value without surrounding blanks.
func (v Value) Trim() string { return strings.TrimSpace(string(v)) }

// Decimal parses the value as a number. Raw numeric cells may use the
// exponent notation (1.5E-2), which is supported.
func (v Value) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(v.Trim())
}
