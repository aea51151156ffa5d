package perfsheet

import (
	"fmt"
	"slices"

	"github.com/etnz/perfsheet/sheet"
	"github.com/shopspring/decimal"
)

// Metric is a characteristic written in Cell of the template, read in Column
// on the row whose label column holds Label.
type Metric struct {
	Cell    string `yaml:"cell"`
	Label   string `yaml:"label"` // unused for the metrics of the overall row
	Column  string `yaml:"column"`
	Percent bool   `yaml:"percent"` // the source is in percentage points
}

func (m Metric) scale(d decimal.Decimal) decimal.Decimal {
	if m.Percent {
		return d.Div(hundred)
	}
	return d
}

// CellCopy copies the value of cell From into cell To.
type CellCopy struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// CharacteristicsLayout describes where the characteristics are read and
// where they go in the template sheet.
type CharacteristicsLayout struct {
	CharacteristicsSheet string `yaml:"characteristics_sheet"`
	SectorsSheet         string `yaml:"sectors_sheet"`
	TemplateSheet        string `yaml:"template_sheet"`
	CapsSheet            string `yaml:"caps_sheet"`

	Title     string `yaml:"title"` // written in TitleCell when not empty
	TitleCell string `yaml:"title_cell"`

	// The characteristics sheet lists country rows (country in
	// CountryColumn) and security rows (name in NameColumn), both with a
	// weight in WeightColumn.
	CountryColumn      string `yaml:"country_column"`
	NameColumn         string `yaml:"name_column"`
	WeightColumn       string `yaml:"weight_column"`
	FirstRow           int    `yaml:"first_row"`
	SecuritiesFirstRow int    `yaml:"securities_first_row"`
	HoldingsCountCell  string `yaml:"holdings_count_cell"`
	TopTenCell         string `yaml:"top_ten_cell"`
	CountriesCountCell string `yaml:"countries_count_cell"`

	CashLabel    string `yaml:"cash_label"` // security name of the cash line
	CashCell     string `yaml:"cash_cell"`
	CashCopyCell string `yaml:"cash_copy_cell"`
	InvestedCell string `yaml:"invested_cell"`

	OverallColumn string   `yaml:"overall_column"`
	OverallLabel  string   `yaml:"overall_label"`
	Overall       []Metric `yaml:"overall"`

	SectorLabelColumn string   `yaml:"sector_label_column"`
	Sectors           []Metric `yaml:"sectors"`

	CapLabelColumn string   `yaml:"cap_label_column"`
	Caps           []Metric `yaml:"caps"`

	Zeros     []string   `yaml:"zeros"`
	Copies    []CellCopy `yaml:"copies"`
	Forbidden []string   `yaml:"forbidden"` // template cells never copied to the master workbook
}

// DefaultCharacteristicsLayout returns the layout of the characteristics
// workbook and of its formatted template.
func DefaultCharacteristicsLayout() CharacteristicsLayout {
	overall := func(cell, col string, pct bool) Metric { return Metric{Cell: cell, Column: col, Percent: pct} }
	sector := func(cell, label string) Metric { return Metric{Cell: cell, Label: label, Column: "E", Percent: true} }
	capBucket := func(cell, label string) Metric { return Metric{Cell: cell, Label: label, Column: "D", Percent: true} }
	return CharacteristicsLayout{
		CharacteristicsSheet: "Characteristics",
		SectorsSheet:         "Sectors",
		TemplateSheet:        "CharacteristicsUpdated",
		CapsSheet:            "Holdings",
		TitleCell:            "A14",

		CountryColumn:      "B",
		NameColumn:         "C",
		WeightColumn:       "D",
		FirstRow:           9,
		SecuritiesFirstRow: 14,
		HoldingsCountCell:  "B19",
		TopTenCell:         "B20",
		CountriesCountCell: "B21",

		CashLabel:    "US Dollar Spot",
		CashCell:     "B17",
		CashCopyCell: "B51",
		InvestedCell: "B48",

		OverallColumn: "A",
		OverallLabel:  "Total",
		Overall: []Metric{
			overall("B24", "AC", true),
			overall("B28", "U", true),
			overall("B29", "K", false),
			overall("B30", "M", false),
			overall("B31", "O", false),
			overall("B32", "Q", false),
			overall("B33", "S", false),
			overall("B34", "AA", true),
			overall("B37", "W", true),
			overall("B41", "G", false),
			overall("B42", "I", false),
		},

		SectorLabelColumn: "B",
		Sectors: []Metric{
			sector("B64", "Communication Services"),
			sector("B65", "Consumer Discretionary"),
			sector("B66", "Consumer Staples"),
			sector("B67", "Energy"),
			sector("B68", "Financials"),
			sector("B69", "Health Care"),
			sector("B70", "Industrials"),
			sector("B71", "Information Technology"),
			sector("B72", "Materials"),
			sector("B73", "Real Estate"),
			sector("B74", "Utilities"),
		},

		CapLabelColumn: "B",
		Caps: []Metric{
			capBucket("B57", "7.5-15B"),
			capBucket("B58", "1.5-7.5B"),
			capBucket("B59", "750M-1.5B"),
			capBucket("B60", "400-750M"),
			capBucket("B61", "<400M"),
		},

		Zeros: []string{"B49", "B50", "B52", "B55", "B56", "B75"},
		Copies: []CellCopy{
			{"B71", "B78"}, {"B69", "B79"}, {"B65", "B80"}, {"B66", "B81"},
			{"B70", "B82"}, {"B72", "B83"}, {"B68", "B84"}, {"B67", "B85"},
			{"B74", "B86"}, {"B64", "B87"}, {"B73", "B88"},
		},
		Forbidden: []string{"G12", "H12", "F13", "B14", "C14", "D14", "E14", "B63", "B77"},
	}
}

// Validate checks the layout.
func (l CharacteristicsLayout) Validate() error {
	for _, s := range []string{l.CharacteristicsSheet, l.SectorsSheet, l.TemplateSheet, l.CapsSheet} {
		if s == "" {
			return fmt.Errorf("characteristics: sheet names are required")
		}
	}
	for _, col := range []string{l.CountryColumn, l.NameColumn, l.WeightColumn, l.OverallColumn, l.SectorLabelColumn, l.CapLabelColumn} {
		if _, err := sheet.ColumnNumber(col); err != nil {
			return fmt.Errorf("characteristics: invalid column %q: %w", col, err)
		}
	}
	if l.OverallLabel == "" || l.CashLabel == "" {
		return fmt.Errorf("characteristics: overall and cash labels are required")
	}
	for _, group := range [][]Metric{l.Overall, l.Sectors, l.Caps} {
		for _, m := range group {
			if _, err := sheet.ColumnNumber(m.Column); err != nil {
				return fmt.Errorf("characteristics: metric %s: invalid column %q: %w", m.Cell, m.Column, err)
			}
		}
	}
	for _, group := range [][]Metric{l.Sectors, l.Caps} {
		for _, m := range group {
			if m.Label == "" {
				return fmt.Errorf("characteristics: metric %s has no label", m.Cell)
			}
		}
	}
	return nil
}

// CellValue is a value to write in a cell of the template.
type CellValue struct {
	Cell  string          `json:"cell"`
	Value decimal.Decimal `json:"value"`
}

// Characteristics are the values of the characteristics template.
type Characteristics struct {
	Title     string      `json:"title,omitempty"`
	TitleCell string      `json:"titleCell,omitempty"`
	Values    []CellValue `json:"values"` // in the order they were computed
}

// Get returns the value of cell.
func (c *Characteristics) Get(cell string) (decimal.Decimal, bool) {
	i := slices.IndexFunc(c.Values, func(v CellValue) bool { return v.Cell == cell })
	if i < 0 {
		return decimal.Zero, false
	}
	return c.Values[i].Value, true
}

// set writes v in cell, replacing a previous value.
func (c *Characteristics) set(cell string, v decimal.Decimal) {
	i := slices.IndexFunc(c.Values, func(v CellValue) bool { return v.Cell == cell })
	if i < 0 {
		c.Values = append(c.Values, CellValue{Cell: cell, Value: v})
		return
	}
	c.Values[i].Value = v
}

// ComposeCharacteristics computes the characteristics from the
// characteristics, sectors and market capitalization sheets.
//
// Every value is found through a label: a missing or ambiguous label is an
// error, while an empty value counts as zero.
func ComposeCharacteristics(chars, sectors, caps *sheet.Grid, l CharacteristicsLayout) (*Characteristics, error) {
	c := &Characteristics{Title: l.Title, TitleCell: l.TitleCell}

	cash, err := Field{
		Locator: Locator{Column: l.NameColumn, Label: l.CashLabel},
		Value:   l.WeightColumn,
	}.DecimalOrZero(chars)
	if err != nil {
		return nil, fmt.Errorf("cash weight: %w", err)
	}
	c.set(l.CashCell, P(cash).Fraction())

	c.set(l.HoldingsCountCell, decimal.NewFromInt(int64(CountEntries(chars, l.NameColumn, l.FirstRow))))
	top, err := TopWeights(chars, l.WeightColumn, l.CountryColumn, l.SecuritiesFirstRow, 10)
	if err != nil {
		return nil, fmt.Errorf("top 10 weight: %w", err)
	}
	c.set(l.TopTenCell, top.Div(hundred))
	c.set(l.CountriesCountCell, decimal.NewFromInt(int64(CountCountries(chars, l.CountryColumn, l.WeightColumn, l.FirstRow))))

	overall, err := Locator{Column: l.OverallColumn, Label: l.OverallLabel}.Find(chars)
	if err != nil {
		return nil, fmt.Errorf("overall row: %w", err)
	}
	for _, m := range l.Overall {
		d, err := optionalNumber(chars.Cell(m.Column, overall), chars.Name, fmt.Sprintf("%s%d", m.Column, overall))
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", m.Cell, err)
		}
		c.set(m.Cell, m.scale(d))
	}

	c.set(l.InvestedCell, P(hundred.Sub(cash)).Fraction())
	for _, cell := range l.Zeros {
		c.set(cell, decimal.Zero)
	}
	c.set(l.CashCopyCell, P(cash).Fraction())

	factor, err := GrossUp(P(cash))
	if err != nil {
		return nil, err
	}
	for _, m := range l.Caps {
		d, err := Field{Locator: Locator{Column: l.CapLabelColumn, Label: m.Label}, Value: m.Column}.DecimalOrZero(caps)
		if err != nil {
			return nil, fmt.Errorf("market cap %s: %w", m.Label, err)
		}
		c.set(m.Cell, m.scale(d.Mul(factor)))
	}

	for _, m := range l.Sectors {
		d, err := Field{Locator: Locator{Column: l.SectorLabelColumn, Label: m.Label}, Value: m.Column}.DecimalOrZero(sectors)
		if err != nil {
			return nil, fmt.Errorf("sector %s: %w", m.Label, err)
		}
		c.set(m.Cell, m.scale(d))
	}

	for _, cp := range l.Copies {
		v, ok := c.Get(cp.From)
		if !ok {
			return nil, fmt.Errorf("cannot copy %s to %s: %s has no value", cp.From, cp.To, cp.From)
		}
		c.set(cp.To, v)
	}
	return c, nil
}

// CountEntries counts the non-empty cells of column col from row from.
func CountEntries(g *sheet.Grid, col string, from int) int {
	n := 0
	for row := from; row <= g.MaxRow(); row++ {
		if !g.Cell(col, row).IsEmpty() {
			n++
		}
	}
	return n
}

// CountCountries counts the rows from row from holding both a country and a
// weight: countries without securities have no weight.
func CountCountries(g *sheet.Grid, countryCol, weightCol string, from int) int {
	n := 0
	for row := from; row <= g.MaxRow(); row++ {
		if !g.Cell(countryCol, row).IsEmpty() && !g.Cell(weightCol, row).IsEmpty() {
			n++
		}
	}
	return n
}

// TopWeights returns the sum of the n largest weights of the security rows
// (rows with a weight and no country) from row from.
func TopWeights(g *sheet.Grid, weightCol, countryCol string, from, n int) (decimal.Decimal, error) {
	var weights []decimal.Decimal
	for row := from; row <= g.MaxRow(); row++ {
		v := g.Cell(weightCol, row)
		if v.IsEmpty() || !g.Cell(countryCol, row).IsEmpty() {
			continue
		}
		d, err := parseNumber(v, g.Name, fmt.Sprintf("%s%d", weightCol, row))
		if err != nil {
			return decimal.Zero, err
		}
		weights = append(weights, d)
	}
	slices.SortFunc(weights, func(a, b decimal.Decimal) int { return b.Cmp(a) })
	return decimal.Sum(decimal.Zero, weights[:min(n, len(weights))]...), nil
}
