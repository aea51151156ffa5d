package perfsheet

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a weight expressed in percentage points: P(5) is 5%.
type Percent struct {
	value decimal.Decimal
}

func P[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Percent {
	return Percent{value: newDecimal(value)}
}

func (p Percent) Equal(q Percent) bool     { return p.value.Equal(q.value) }
func (p Percent) Decimal() decimal.Decimal { return p.value }
func (p Percent) Float64() float64         { return p.value.InexactFloat64() }

// Fraction returns the weight as a fraction of one: P(5).Fraction() is 0.05.
func (p Percent) Fraction() decimal.Decimal { return p.value.Div(hundred) }

func (p Percent) String() string { return p.value.StringFixed(2) + "%" }

func (p Percent) MarshalJSON() ([]byte, error) { return p.value.MarshalJSON() }

var hundred = decimal.NewFromInt(100)

// GrossUp returns the factor that rescales a weight of the whole portfolio
// into a weight of the portfolio excluding cash: 1 / (1 - cash/100).
func GrossUp(cash Percent) (decimal.Decimal, error) {
	invested := hundred.Sub(cash.value)
	if !invested.IsPositive() {
		return decimal.Zero, fmt.Errorf("cannot exclude cash weight of %s", cash)
	}
	return hundred.Div(invested), nil
}

// Rescale returns p multiplied by factor, rounded to 2 decimal places.
func (p Percent) Rescale(factor decimal.Decimal) Percent {
	return Percent{value: p.value.Mul(factor).Round(2)}
}
