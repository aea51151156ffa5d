package perfsheet

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/perfsheet/sheet"
	"github.com/shopspring/decimal"
)

// Values of the synthetic cash holding.
const (
	CashIdentifier   = "CASH"
	CashTicker       = "USD"
	CashName         = "US DOLLAR"
	CashSecurityType = "Cash"
	CashCountry      = "United States"
)

// HoldingsHeader is the header of the holdings table, in column order.
var HoldingsHeader = []string{
	"Identifier", "Identifier Type", "Ticker", "Security Name", "Security Type",
	"# of Shares", "Security Price", "Weight (%)", "Country", "Market Value",
}

// Holding is one row of the holdings table.
type Holding struct {
	Identifier     string   `json:"identifier"`
	IdentifierType string   `json:"identifierType"`
	Ticker         string   `json:"ticker"`
	SecurityName   string   `json:"securityName"`
	SecurityType   string   `json:"securityType"`
	Shares         Quantity `json:"shares"`
	Price          Money    `json:"price"`
	Weight         Percent  `json:"weight"`
	Country        string   `json:"country"`
	MarketValue    Money    `json:"marketValue"`
}

// Values returns the holding cells in the order of HoldingsHeader. Numbers
// are returned as float64, ready to be written in a workbook.
func (h Holding) Values() []any {
	return []any{
		h.Identifier, h.IdentifierType, h.Ticker, h.SecurityName, h.SecurityType,
		h.Shares.Float64(), h.Price.Float64(), h.Weight.Float64(), h.Country, h.MarketValue.Float64(),
	}
}

// HoldingsLayout describes the raw holdings export.
//
// The country and security name columns have no header in the export, they
// are given by their letters. The other columns are found by their header
// label in HeaderRow.
type HoldingsLayout struct {
	HeaderRow      int    `yaml:"header_row"`
	CountryColumn  string `yaml:"country_column"`
	SecurityColumn string `yaml:"security_column"`
	Identifier     string `yaml:"identifier"`
	Ticker         string `yaml:"ticker"`
	Shares         string `yaml:"shares"`
	Price          string `yaml:"price"`
	Weight         string `yaml:"weight"`
	MarketValue    string `yaml:"market_value"`
	Currency       string `yaml:"currency"`
	CashLabel      string `yaml:"cash_label"`   // security name of the cash line
	Unclassified   string `yaml:"unclassified"` // country header excluded from the country weights
}

// DefaultHoldingsLayout returns the layout of the brokerage holdings export.
func DefaultHoldingsLayout() HoldingsLayout {
	return HoldingsLayout{
		HeaderRow:      11,
		CountryColumn:  "B",
		SecurityColumn: "C",
		Identifier:     "ISIN",
		Ticker:         "Ticker",
		Shares:         "Pos",
		Price:          "Px Close",
		Weight:         "% Wgt",
		MarketValue:    "Mkt Val",
		Currency:       "USD",
		CashLabel:      "US Dollar Spot",
		Unclassified:   "Not Classified",
	}
}

// Validate checks the layout.
func (l HoldingsLayout) Validate() error {
	if l.HeaderRow < 1 {
		return fmt.Errorf("holdings: invalid header row %d", l.HeaderRow)
	}
	for _, col := range []string{l.CountryColumn, l.SecurityColumn} {
		if _, err := sheet.ColumnNumber(col); err != nil {
			return fmt.Errorf("holdings: invalid column %q: %w", col, err)
		}
	}
	for name, label := range map[string]string{
		"identifier": l.Identifier, "ticker": l.Ticker, "shares": l.Shares, "price": l.Price,
		"weight": l.Weight, "market_value": l.MarketValue, "cash_label": l.CashLabel,
	} {
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("holdings: %s label is required", name)
		}
	}
	return nil
}

// holdingsColumns are the column letters of the labeled columns.
type holdingsColumns struct {
	identifier, ticker, shares, price, weight, marketValue string
}

// columns resolves the labeled columns from the header row of g.
func (l HoldingsLayout) columns(g *sheet.Grid) (holdingsColumns, error) {
	header := g.Row(l.HeaderRow)
	find := func(label string) (string, error) {
		for i, v := range header {
			if v.Trim() == strings.TrimSpace(label) {
				return sheet.ColumnName(i + 1), nil
			}
		}
		return "", fmt.Errorf("%w: %q in header row %d of sheet %q", ErrMissingColumn, label, l.HeaderRow, g.Name)
	}
	var c holdingsColumns
	var err error
	for _, f := range []struct {
		dst   *string
		label string
	}{
		{&c.identifier, l.Identifier},
		{&c.ticker, l.Ticker},
		{&c.shares, l.Shares},
		{&c.price, l.Price},
		{&c.weight, l.Weight},
		{&c.marketValue, l.MarketValue},
	} {
		if *f.dst, err = find(f.label); err != nil {
			return c, err
		}
	}
	return c, nil
}

// LabeledRow associates a security row of the holdings export with its
// country header.
type LabeledRow struct {
	Row        int    // row of the security
	CountryRow int    // row of the country header
	Country    string // country as written in the header
}

// LabelCountries associates every security row of g (a row with a security
// name) with the nearest strictly preceding row holding a country.
//
// The export lists each country header followed by the securities of that
// country, so the association only depends on row order. A security that no
// country precedes is an error.
func LabelCountries(g *sheet.Grid, l HoldingsLayout) ([]LabeledRow, error) {
	var (
		labels     []LabeledRow
		country    string
		countryRow int
	)
	for row := l.HeaderRow + 1; row <= g.MaxRow(); row++ {
		if name := g.Cell(l.SecurityColumn, row); !name.IsEmpty() {
			if countryRow == 0 {
				return nil, fmt.Errorf("%w: %q at row %d of sheet %q", ErrNoCountry, name.Trim(), row, g.Name)
			}
			labels = append(labels, LabeledRow{Row: row, CountryRow: countryRow, Country: country})
		}
		if c := g.Cell(l.CountryColumn, row); !c.IsEmpty() {
			country, countryRow = c.Trim(), row
		}
	}
	return labels, nil
}

// ExtractHoldings builds the holdings table from the raw holdings export.
//
// Every security row becomes a holding with its country uppercased. The only
// row without identifier is the cash line: it is replaced by the synthetic
// cash holding (see [NewCashHolding]). The table is sorted by security name.
func ExtractHoldings(g *sheet.Grid, l HoldingsLayout) ([]Holding, error) {
	cols, err := l.columns(g)
	if err != nil {
		return nil, err
	}
	labels, err := LabelCountries(g, l)
	if err != nil {
		return nil, err
	}

	holdings := make([]Holding, 0, len(labels))
	for _, lr := range labels {
		h, err := cols.holding(g, l, lr)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}

	holdings, err = InsertCashRow(holdings)
	if err != nil {
		return nil, err
	}
	SortBySecurityName(holdings)
	return holdings, nil
}

func (c holdingsColumns) holding(g *sheet.Grid, l HoldingsLayout, lr LabeledRow) (Holding, error) {
	var shares, price, weight, value decimal.Decimal
	for _, f := range []struct {
		dst *decimal.Decimal
		col string
	}{
		{&shares, c.shares},
		{&price, c.price},
		{&weight, c.weight},
		{&value, c.marketValue},
	} {
		d, err := optionalNumber(g.Cell(f.col, lr.Row), g.Name, fmt.Sprintf("%s%d", f.col, lr.Row))
		if err != nil {
			return Holding{}, err
		}
		*f.dst = d
	}
	return Holding{
		Identifier:     g.Cell(c.identifier, lr.Row).Trim(),
		IdentifierType: "ISIN",
		Ticker:         g.Cell(c.ticker, lr.Row).Trim(),
		SecurityName:   g.Cell(l.SecurityColumn, lr.Row).Trim(),
		SecurityType:   "Common Stock",
		Shares:         Q(shares),
		Price:          M(price, l.Currency),
		Weight:         P(weight),
		Country:        strings.ToUpper(lr.Country),
		MarketValue:    M(value, l.Currency),
	}, nil
}

// NewCashHolding returns the synthetic cash holding that replaces the raw
// cash line: its amounts are kept, everything else is fixed.
func NewCashHolding(raw Holding) Holding {
	return Holding{
		Identifier:     CashIdentifier,
		IdentifierType: CashIdentifier,
		Ticker:         CashTicker,
		SecurityName:   CashName,
		SecurityType:   CashSecurityType,
		Shares:         raw.Shares,
		Price:          raw.Price,
		Weight:         raw.Weight,
		Country:        CashCountry,
		MarketValue:    raw.MarketValue,
	}
}

// InsertCashRow replaces the only holding without identifier by the
// synthetic cash holding, appended last.
func InsertCashRow(holdings []Holding) ([]Holding, error) {
	idx := -1
	for i, h := range holdings {
		if h.Identifier != "" {
			continue
		}
		if idx >= 0 {
			return nil, fmt.Errorf("%w: %q and %q", ErrAmbiguousCash, holdings[idx].SecurityName, h.SecurityName)
		}
		idx = i
	}
	if idx < 0 {
		return nil, ErrNoCashRow
	}
	cash := NewCashHolding(holdings[idx])
	res := slices.Delete(slices.Clone(holdings), idx, idx+1)
	return append(res, cash), nil
}

// SortBySecurityName sorts holdings by security name, keeping the order of
// equal names.
func SortBySecurityName(holdings []Holding) {
	slices.SortStableFunc(holdings, func(a, b Holding) int {
		return strings.Compare(a.SecurityName, b.SecurityName)
	})
}
