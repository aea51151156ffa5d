package perfsheet

import "github.com/etnz/perfsheet/date"

// Report gathers everything extracted for one performance sheet.
// Stages that were not run, or failed, are left empty.
type Report struct {
	Date            date.Date         `json:"date"`
	Holdings        []Holding         `json:"holdings,omitempty"`
	Performance     []PerformanceRow  `json:"performance,omitempty"`
	Cash            *Percent          `json:"cash,omitempty"`
	CountryWeights  []CountryWeight   `json:"countryWeights,omitempty"`
	Allocation      *AllocationUpdate `json:"allocation,omitempty"`
	Characteristics *Characteristics  `json:"characteristics,omitempty"`
}

// TotalWeight returns the sum of the holding weights.
func (r *Report) TotalWeight() Percent {
	var total Percent
	for _, h := range r.Holdings {
		total = Percent{value: total.value.Add(h.Weight.value)}
	}
	return total
}
