package perfsheet

import (
	"fmt"

	"github.com/etnz/perfsheet/date"
	"github.com/etnz/perfsheet/sheet"
	"github.com/shopspring/decimal"
)

// PerformanceHeader is the header of the performance table, in column order.
var PerformanceHeader = []string{"Strategy", "Gross", "Net", "Date"}

// Strategy is a strategy of the performance export and the name it is
// reported under.
type Strategy struct {
	Match string `yaml:"match"` // substring of the strategy title in the export
	Name  string `yaml:"name"`
}

// PerformanceLayout describes the monthly performance export.
//
// Each strategy title is found in LabelColumn, and its figures are Offset
// rows below it.
type PerformanceLayout struct {
	LabelColumn string     `yaml:"label_column"`
	GrossColumn string     `yaml:"gross_column"`
	NetColumn   string     `yaml:"net_column"`
	Offset      int        `yaml:"offset"`
	Strategies  []Strategy `yaml:"strategies"`
}

// DefaultPerformanceLayout returns the layout of the performance export.
func DefaultPerformanceLayout() PerformanceLayout {
	return PerformanceLayout{
		LabelColumn: "B",
		GrossColumn: "C",
		NetColumn:   "D",
		Offset:      2,
		Strategies: []Strategy{
			{Match: "EAFE Small Cap Value", Name: "EAFE"},
			{Match: "EM Small Cap Value", Name: "EM"},
			{Match: "Int'l Small Cap Value", Name: "ISC Composite"},
			{Match: "ISC Impact", Name: "ISCIO"},
		},
	}
}

// fields returns the gross and net fields of strategy s.
func (l PerformanceLayout) fields(s Strategy) (gross, net Field) {
	loc := Locator{Column: l.LabelColumn, Label: s.Match, Contains: true}
	return Field{Locator: loc, Offset: l.Offset, Value: l.GrossColumn},
		Field{Locator: loc, Offset: l.Offset, Value: l.NetColumn}
}

// Validate checks the layout.
func (l PerformanceLayout) Validate() error {
	if len(l.Strategies) == 0 {
		return fmt.Errorf("performance: no strategies")
	}
	for _, s := range l.Strategies {
		if s.Name == "" {
			return fmt.Errorf("performance: strategy %q has no name", s.Match)
		}
		gross, net := l.fields(s)
		if err := gross.Validate(); err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		if err := net.Validate(); err != nil {
			return fmt.Errorf("performance: %w", err)
		}
	}
	return nil
}

// PerformanceRow holds the returns of one strategy.
type PerformanceRow struct {
	Strategy string          `json:"strategy"`
	Gross    decimal.Decimal `json:"gross"`
	Net      decimal.Decimal `json:"net"`
	Date     date.Date       `json:"date"`
}

// Values returns the row cells in the order of PerformanceHeader.
func (r PerformanceRow) Values() []any {
	return []any{r.Strategy, r.Gross.InexactFloat64(), r.Net.InexactFloat64(), r.Date.US()}
}

// ExtractPerformance reads the gross and net returns of every strategy of
// the layout, in layout order, and stamps them with date on.
//
// The strategy title must be found exactly once, and both figures must be
// numbers.
func ExtractPerformance(g *sheet.Grid, l PerformanceLayout, on date.Date) ([]PerformanceRow, error) {
	rows := make([]PerformanceRow, 0, len(l.Strategies))
	for _, s := range l.Strategies {
		gross, net := l.fields(s)
		g1, err := gross.Decimal(g)
		if err != nil {
			return nil, fmt.Errorf("gross performance of %s: %w", s.Name, err)
		}
		n1, err := net.Decimal(g)
		if err != nil {
			return nil, fmt.Errorf("net performance of %s: %w", s.Name, err)
		}
		rows = append(rows, PerformanceRow{Strategy: s.Name, Gross: g1, Net: n1, Date: on})
	}
	return rows, nil
}
