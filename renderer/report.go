package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/perfsheet"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders what was extracted for a performance sheet. Stages
// with nothing extracted are left out.
func ReportMarkdown(r *perfsheet.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Performance Sheet on %s", r.Date))

	if len(r.Holdings) > 0 {
		doc.PlainText("")
		doc.H2("Holdings")
		doc.PlainText("")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Security", "Ticker", "Country", "Weight", "Market Value"},
		}
		for _, h := range r.Holdings {
			table.Rows = append(table.Rows, []string{h.SecurityName, h.Ticker, h.Country, h.Weight.String(), h.MarketValue.String()})
		}
		table.Rows = append(table.Rows, []string{md.Bold("Total"), "", "", md.Bold(r.TotalWeight().String()), ""})
		doc.Table(table)
	}

	if len(r.Performance) > 0 {
		doc.PlainText("")
		doc.H2("Performance")
		doc.PlainText("")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
			Header:    []string{"Strategy", "Gross", "Net", "Date"},
		}
		for _, p := range r.Performance {
			table.Rows = append(table.Rows, []string{
				p.Strategy,
				perfsheet.P(p.Gross.Shift(2)).String(),
				perfsheet.P(p.Net.Shift(2)).String(),
				p.Date.US(),
			})
		}
		doc.Table(table)
	}

	if len(r.CountryWeights) > 0 {
		doc.PlainText("")
		doc.H2("Country Weights")
		doc.PlainText("")
		if r.Cash != nil {
			doc.PlainText(fmt.Sprintf("Excluding cash of %s.", r.Cash))
			doc.PlainText("")
		}
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Country", "Weight"},
		}
		for _, w := range r.CountryWeights {
			table.Rows = append(table.Rows, []string{w.Country, w.Weight.String()})
		}
		doc.Table(table)
	}

	if r.Allocation != nil {
		doc.PlainText("")
		doc.H2("Allocations")
		doc.PlainText("")
		doc.PlainText(fmt.Sprintf("%d countries applied, %d dropped.", len(r.Allocation.Applied), len(r.Allocation.Dropped)))
		if len(r.Allocation.Dropped) > 0 {
			doc.PlainText("")
			var dropped []string
			for _, w := range r.Allocation.Dropped {
				dropped = append(dropped, fmt.Sprintf("%s (%s)", w.Country, w.Weight))
			}
			doc.BulletList(dropped...)
		}
	}

	if c := r.Characteristics; c != nil && len(c.Values) > 0 {
		doc.PlainText("")
		doc.H2("Characteristics")
		doc.PlainText("")
		if c.Title != "" {
			doc.PlainText(md.Bold(c.Title))
			doc.PlainText("")
		}
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Cell", "Value"},
		}
		for _, v := range c.Values {
			table.Rows = append(table.Rows, []string{v.Cell, v.Value.String()})
		}
		doc.Table(table)
	}

	return doc.String()
}
