// Package perfsheet extracts the figures of a fund "performance sheet" from
// the loosely structured spreadsheets exported by the brokerage and the
// performance system, and recomputes the derived figures that go into the
// distributed workbook.
//
// The package is organised along the four stages of the report:
//   - Holdings: the raw holdings export is labeled (every security gets the
//     country header preceding it) and turned into a clean holdings table
//     with a synthetic cash row. See [LabelCountries] and [ExtractHoldings].
//   - Performance: gross and net returns of the four strategies are located
//     by label in the monthly performance export. See [ExtractPerformance].
//   - Allocations: country weights are grossed up to exclude cash and
//     written into the placeholders of the regional allocation template.
//     See [CountryWeights] and [UpdateAllocation].
//   - Characteristics: about thirty scalar metrics are looked up in the
//     characteristics, sectors and market capitalization sheets.
//     See [ComposeCharacteristics].
//
// Every lookup goes through a named [Locator]: a label searched in a column.
// A locator that finds nothing, or more than one row, is an error. Nothing
// in this package reads or writes files, the spreadsheets are handed over as
// [sheet.Grid] values, and the styled output is produced by package
// workbook.
package perfsheet
