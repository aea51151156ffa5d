package perfsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocator_Find(t *testing.T) {
	g := grid(t, "s", cells{
		"A1": "Total", "A2": " Total ", "A3": "Subtotal",
		"B4": "EAFE Small Cap Value Composite",
	})

	tests := []struct {
		name    string
		loc     Locator
		want    int
		wantErr error
	}{
		{"exact match is trimmed", Locator{Column: "A", Label: "Total"}, 0, ErrAmbiguousLabel},
		{"exact match from a row", Locator{Column: "A", Label: "Total", From: 2}, 2, nil},
		{"exact does not match substrings", Locator{Column: "A", Label: "total"}, 0, ErrLabelNotFound},
		{"contains", Locator{Column: "B", Label: "Small Cap", Contains: true}, 4, nil},
		{"contains is case sensitive", Locator{Column: "B", Label: "small cap", Contains: true}, 0, ErrLabelNotFound},
		{"other column", Locator{Column: "C", Label: "Total"}, 0, ErrLabelNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := tt.loc.Find(g)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, row)
		})
	}

	assert.Equal(t, []int{1, 2, 3}, Locator{Column: "A", Label: "otal", Contains: true}.FindAll(g))
}

func TestField(t *testing.T) {
	g := grid(t, "s", cells{
		"A1": "Cash", "B1": "4.5",
		"A2": "Empty",
		"A3": "Text", "B3": "abc",
		"A4": "Last", "B4": "1",
	})
	field := func(label string, offset int) Field {
		return Field{Locator: Locator{Column: "A", Label: label}, Offset: offset, Value: "B"}
	}

	v, cell, err := field("Cash", 0).Read(g)
	require.NoError(t, err)
	assert.Equal(t, "4.5", v.String())
	assert.Equal(t, "B1", cell)

	d, err := field("Cash", 3).Decimal(g)
	require.NoError(t, err)
	assert.Equal(t, "1", d.String())

	_, err = field("Empty", 0).Decimal(g)
	assert.ErrorIs(t, err, ErrEmptyValue)

	d, err = field("Empty", 0).DecimalOrZero(g)
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = field("Text", 0).DecimalOrZero(g)
	assert.ErrorIs(t, err, ErrNotNumeric)

	_, err = field("Last", 1).Decimal(g)
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	_, err = field("Missing", 0).DecimalOrZero(g)
	assert.ErrorIs(t, err, ErrLabelNotFound)
}

func TestField_Validate(t *testing.T) {
	ok := Field{Locator: Locator{Column: "A", Label: "x"}, Value: "B"}
	require.NoError(t, ok.Validate())

	for name, f := range map[string]Field{
		"column":   {Locator: Locator{Column: "", Label: "x"}, Value: "B"},
		"label":    {Locator: Locator{Column: "A", Label: " "}, Value: "B"},
		"value":    {Locator: Locator{Column: "A", Label: "x"}, Value: "2"},
		"negative": {Locator: Locator{Column: "A", Label: "x"}, Offset: -1, Value: "B"},
	} {
		assert.Error(t, f.Validate(), name)
	}
}
