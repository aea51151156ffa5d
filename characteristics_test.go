package perfsheet

import (
	"fmt"
	"testing"

	"github.com/etnz/perfsheet/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func charsGrid(t *testing.T) *sheet.Grid {
	t.Helper()
	content := cells{
		"B9": "France", "D9": "30",
		"C10": "Air Liquide", "D10": "12",
		"C11": "Danone", "D11": "18",
		"B12": "Japan",
		"B13": "Germany", "D13": "65",
		"C26": "US Dollar Spot", "D26": "5",

		"A27": "Total", "AC27": "12.5", "U27": "3.2", "K27": "15.1", "M27": "1.4", "O27": "2.2",
		"Q27": "9.8", "S27": "0.6", "AA27": "40", "G27": "1.2", "I27": "0.9",
	}
	for i := 1; i <= 12; i++ {
		content[fmt.Sprintf("C%d", 13+i)] = fmt.Sprintf("Security %d", i)
		content[fmt.Sprintf("D%d", 13+i)] = fmt.Sprint(i)
	}
	return grid(t, "Characteristics", content)
}

func capsGrid(t *testing.T) *sheet.Grid {
	t.Helper()
	return grid(t, "Holdings", cells{
		"B3": "7.5-15B", "D3": "19",
		"B4": "1.5-7.5B", "D4": "38",
		"B5": "750M-1.5B",
		"B6": "400-750M", "D6": "9.5",
		"B7": "<400M", "D7": "28.5",
	})
}

func sectorsGrid(t *testing.T) *sheet.Grid {
	t.Helper()
	content := cells{"B1": "Sector", "E1": "Weight"}
	for i, s := range []string{
		"Communication Services", "Consumer Discretionary", "Consumer Staples", "Energy",
		"Financials", "Health Care", "Industrials", "Information Technology",
		"Materials", "Real Estate", "Utilities",
	} {
		content[fmt.Sprintf("B%d", i+2)] = s
		if s != "Energy" {
			content[fmt.Sprintf("E%d", i+2)] = fmt.Sprint(i + 1)
		}
	}
	return grid(t, "Sectors", content)
}

func value(t *testing.T, c *Characteristics, cell string) float64 {
	t.Helper()
	v, ok := c.Get(cell)
	require.True(t, ok, "no value for %s", cell)
	return v.InexactFloat64()
}

func TestComposeCharacteristics(t *testing.T) {
	l := DefaultCharacteristicsLayout()
	l.Title = "International Small Cap"
	c, err := ComposeCharacteristics(charsGrid(t), sectorsGrid(t), capsGrid(t), l)
	require.NoError(t, err)

	assert.Equal(t, "International Small Cap", c.Title)
	assert.Equal(t, "A14", c.TitleCell)

	assert.Equal(t, 15.0, value(t, c, "B19"), "holdings count")
	assert.Equal(t, 0.77, value(t, c, "B20"), "top 10 weight")
	assert.Equal(t, 2.0, value(t, c, "B21"), "countries with a weight")
	assert.Equal(t, 0.05, value(t, c, "B17"), "cash")
	assert.Equal(t, 0.05, value(t, c, "B51"), "cash copy")
	assert.Equal(t, 0.95, value(t, c, "B48"), "invested")

	assert.Equal(t, 0.125, value(t, c, "B24"))
	assert.Equal(t, 0.032, value(t, c, "B28"))
	assert.Equal(t, 15.1, value(t, c, "B29"))
	assert.Equal(t, 0.4, value(t, c, "B34"))
	assert.Equal(t, 0.0, value(t, c, "B37"), "an empty overall value is zero")
	assert.Equal(t, 0.9, value(t, c, "B42"))

	for _, cell := range l.Zeros {
		assert.Equal(t, 0.0, value(t, c, cell), cell)
	}

	for cell, want := range map[string]float64{"B57": 0.2, "B58": 0.4, "B59": 0, "B60": 0.1, "B61": 0.3} {
		assert.InDelta(t, want, value(t, c, cell), 1e-9, cell)
	}

	assert.Equal(t, 0.01, value(t, c, "B64"))
	assert.Equal(t, 0.0, value(t, c, "B67"), "Energy is empty")
	assert.Equal(t, 0.11, value(t, c, "B74"))
	for _, cp := range l.Copies {
		assert.Equal(t, value(t, c, cp.From), value(t, c, cp.To), "%s to %s", cp.From, cp.To)
	}
	assert.Equal(t, value(t, c, "B64"), value(t, c, "B87"))
}

func TestComposeCharacteristics_Errors(t *testing.T) {
	l := DefaultCharacteristicsLayout()

	t.Run("missing sector", func(t *testing.T) {
		sectors := grid(t, "Sectors", cells{"B2": "Energy", "E2": "3"})
		_, err := ComposeCharacteristics(charsGrid(t), sectors, capsGrid(t), l)
		assert.ErrorIs(t, err, ErrLabelNotFound)
	})
	t.Run("missing overall row", func(t *testing.T) {
		chars := grid(t, "Characteristics", cells{"C26": "US Dollar Spot", "D26": "5"})
		_, err := ComposeCharacteristics(chars, sectorsGrid(t), capsGrid(t), l)
		assert.ErrorIs(t, err, ErrLabelNotFound)
	})
	t.Run("ambiguous cap bucket", func(t *testing.T) {
		caps := capsGrid(t)
		dup := grid(t, "Holdings", cells{
			"B3": "7.5-15B", "D3": "19",
			"B4": "1.5-7.5B", "D4": "38",
			"B5": "750M-1.5B",
			"B6": "400-750M", "D6": "9.5",
			"B7": "<400M", "D7": "28.5",
			"B8": "<400M", "D8": "1",
		})
		_, err := ComposeCharacteristics(charsGrid(t), sectorsGrid(t), caps, l)
		require.NoError(t, err)
		_, err = ComposeCharacteristics(charsGrid(t), sectorsGrid(t), dup, l)
		assert.ErrorIs(t, err, ErrAmbiguousLabel)
	})
	t.Run("weight is not a number", func(t *testing.T) {
		chars := charsGrid(t)
		bad := grid(t, "Characteristics", cells{
			"C14": "Security", "D14": "n/a",
			"C26": "US Dollar Spot", "D26": "5",
			"A27": "Total",
		})
		_, err := ComposeCharacteristics(chars, sectorsGrid(t), capsGrid(t), l)
		require.NoError(t, err)
		_, err = ComposeCharacteristics(bad, sectorsGrid(t), capsGrid(t), l)
		assert.ErrorIs(t, err, ErrNotNumeric)
	})
}

func TestCounts(t *testing.T) {
	g := charsGrid(t)
	assert.Equal(t, 15, CountEntries(g, "C", 9))
	assert.Equal(t, 12, CountEntries(g, "C", 14)-1, "without cash")
	assert.Equal(t, 2, CountCountries(g, "B", "D", 9))

	top, err := TopWeights(g, "D", "B", 14, 3)
	require.NoError(t, err)
	assert.Equal(t, "33", top.String())

	top, err = TopWeights(g, "D", "B", 14, 100)
	require.NoError(t, err)
	assert.Equal(t, "83", top.String(), "fewer weights than asked")
}

func TestCharacteristicsLayout_Validate(t *testing.T) {
	require.NoError(t, DefaultCharacteristicsLayout().Validate())

	l := DefaultCharacteristicsLayout()
	l.Sectors[0].Label = ""
	assert.Error(t, l.Validate())

	l = DefaultCharacteristicsLayout()
	l.TemplateSheet = ""
	assert.Error(t, l.Validate())
}
