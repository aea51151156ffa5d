package perfsheet

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/perfsheet/sheet"
)

// CountryWeight is the weight of a country in the portfolio excluding cash.
type CountryWeight struct {
	Country string  `json:"country"`
	Weight  Percent `json:"weight"`
}

// CashWeight returns the weight of the cash line of the raw holdings export.
func CashWeight(g *sheet.Grid, l HoldingsLayout) (Percent, error) {
	cols, err := l.columns(g)
	if err != nil {
		return Percent{}, err
	}
	f := Field{
		Locator: Locator{Column: l.SecurityColumn, Label: l.CashLabel, Contains: true, From: l.HeaderRow + 1},
		Value:   cols.weight,
	}
	w, err := f.Decimal(g)
	if err != nil {
		return Percent{}, fmt.Errorf("cash weight: %w", err)
	}
	return P(w), nil
}

// CountryWeights returns the weight of every country header of the raw
// holdings export, grossed up to exclude cash and rounded to 2 decimals, in
// the order of the export. The unclassified bucket is left out. The cash
// weight is returned too.
func CountryWeights(g *sheet.Grid, l HoldingsLayout) ([]CountryWeight, Percent, error) {
	cash, err := CashWeight(g, l)
	if err != nil {
		return nil, Percent{}, err
	}
	factor, err := GrossUp(cash)
	if err != nil {
		return nil, Percent{}, err
	}
	cols, err := l.columns(g)
	if err != nil {
		return nil, Percent{}, err
	}

	var weights []CountryWeight
	index := make(map[string]int)
	for row := l.HeaderRow + 1; row <= g.MaxRow(); row++ {
		country := g.Cell(l.CountryColumn, row).Trim()
		if country == "" {
			continue
		}
		raw, err := optionalNumber(g.Cell(cols.weight, row), g.Name, fmt.Sprintf("%s%d", cols.weight, row))
		if err != nil {
			return nil, Percent{}, err
		}
		w := CountryWeight{Country: country, Weight: P(raw).Rescale(factor)}
		if i, ok := index[country]; ok {
			weights[i] = w
			continue
		}
		index[country] = len(weights)
		weights = append(weights, w)
	}

	weights = slices.DeleteFunc(weights, func(w CountryWeight) bool { return w.Country == l.Unclassified })
	return weights, cash, nil
}

// DefaultTitles are the section rows of the allocation template.
var DefaultTitles = []string{
	"North America", "United Kingdom", "Euroland (EU) Countries", "Non-Euroland (EU) Countries",
	"Far East & Australasia", "Other", "Latin America", "Africa/Middle East", "Eastern Europe",
	"Far East ex-China", "China", "Other Emerging Markets", "Emerging Market Total",
}

// AllocationLayout describes the regional allocation template.
type AllocationLayout struct {
	HeaderRow      int      `yaml:"header_row"`
	MarketColumn   string   `yaml:"market_column"`
	CountryColumn  string   `yaml:"country_column"`
	CurrencyColumn string   `yaml:"currency_column"`
	Titles         []string `yaml:"titles"`
}

// DefaultAllocationLayout returns the layout of the allocation template.
func DefaultAllocationLayout() AllocationLayout {
	return AllocationLayout{
		HeaderRow:      1,
		MarketColumn:   "A",
		CountryColumn:  "B",
		CurrencyColumn: "C",
		Titles:         slices.Clone(DefaultTitles),
	}
}

// Validate checks the layout.
func (l AllocationLayout) Validate() error {
	if l.HeaderRow < 0 {
		return fmt.Errorf("allocations: invalid header row %d", l.HeaderRow)
	}
	for _, col := range []string{l.MarketColumn, l.CountryColumn, l.CurrencyColumn} {
		if _, err := sheet.ColumnNumber(col); err != nil {
			return fmt.Errorf("allocations: invalid column %q: %w", col, err)
		}
	}
	return nil
}

// AllocationRow is a row of the allocation template.
type AllocationRow struct {
	Market   string      `json:"market"` // as written, indentation included
	Country  sheet.Value `json:"country"`  // Country (%)
	Currency sheet.Value `json:"currency"` // Currency (%)
}

// IsTitle reports whether the row is one of the section titles, compared
// as written.
func (r AllocationRow) IsTitle(titles []string) bool {
	return slices.Contains(titles, r.Market)
}

// ReadAllocation reads the rows of the allocation template that follow the
// header row. Market labels are kept as written.
func ReadAllocation(g *sheet.Grid, l AllocationLayout) []AllocationRow {
	var rows []AllocationRow
	for row := l.HeaderRow + 1; row <= g.MaxRow(); row++ {
		rows = append(rows, AllocationRow{
			Market:   string(g.Cell(l.MarketColumn, row)),
			Country:  g.Cell(l.CountryColumn, row),
			Currency: g.Cell(l.CurrencyColumn, row),
		})
	}
	return rows
}

// AllocationUpdate is the result of UpdateAllocation.
type AllocationUpdate struct {
	Rows    []AllocationRow `json:"rows"`
	Applied []CountryWeight `json:"applied"`
	Dropped []CountryWeight `json:"dropped"`
}

// UpdateAllocation fills the country placeholders of the allocation
// template.
//
// For every country, the first row whose market contains the country name
// and is not a section title is the country row. Its Country (%) is
// overwritten only if it already holds a value: the template decides which
// countries are reported, rows are never added. Countries without a row, or
// whose row has an empty placeholder, are dropped. rows is left unchanged.
func UpdateAllocation(rows []AllocationRow, weights []CountryWeight, titles []string) AllocationUpdate {
	u := AllocationUpdate{Rows: slices.Clone(rows)}
	for _, w := range weights {
		i := slices.IndexFunc(u.Rows, func(r AllocationRow) bool {
			return strings.Contains(r.Market, w.Country) && !r.IsTitle(titles)
		})
		if i < 0 || u.Rows[i].Country.IsEmpty() {
			u.Dropped = append(u.Dropped, w)
			continue
		}
		u.Rows[i].Country = sheet.Value(w.Weight.Decimal().String())
		u.Applied = append(u.Applied, w)
	}
	return u
}

// number returns v as a float64 when it is a number, and as a string
// otherwise. Empty values are nil.
func number(v sheet.Value) any {
	if v.IsEmpty() {
		return nil
	}
	if d, err := v.Decimal(); err == nil {
		return d.InexactFloat64()
	}
	return string(v)
}

// Values returns the row cells: market, country and currency.
func (r AllocationRow) Values() []any {
	var market any
	if strings.TrimSpace(r.Market) != "" {
		market = r.Market
	}
	return []any{market, number(r.Country), number(r.Currency)}
}
