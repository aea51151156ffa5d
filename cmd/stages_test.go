package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/perfsheet/config"
	"github.com/etnz/perfsheet/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// content is the content of a sheet, by cell name.
type content map[string]any

// writeWorkbook creates a workbook at path with the given sheets, in order.
func writeWorkbook(t *testing.T, path string, names []string, sheets map[string]content) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, name := range names {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for cell, v := range sheets[name] {
			require.NoError(t, f.SetCellValue(name, cell, v))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

var sectorNames = []string{
	"Communication Services", "Consumer Discretionary", "Consumer Staples", "Energy",
	"Financials", "Health Care", "Industrials", "Information Technology",
	"Materials", "Real Estate", "Utilities",
}

// fixtures writes every source workbook of a run on 2025-10-19 in dir.
func fixtures(t *testing.T, dir string) {
	t.Helper()
	writeWorkbook(t, filepath.Join(dir, "holdings_export.xlsx"), []string{"Export"}, map[string]content{
		"Export": {
			"A1":  "Holdings as of 09/30/2025",
			"D11": "ISIN", "E11": "Ticker", "F11": "Pos", "G11": "Px Close", "H11": "% Wgt", "I11": "Mkt Val",
			"B12": "France", "H12": 10,
			"C13": "Air Liquide", "D13": "FR0000120073", "E13": "AI FP", "F13": 100, "G13": 150.5, "H13": 4, "I13": 15050,
			"C14": "Danone", "D14": "FR0000120644", "E14": "BN FP", "F14": 200, "G14": 60, "H14": 6, "I14": 12000,
			"B15": "Japan", "H15": 20,
			"C16": "Toyota Motor", "D16": "JP3633400001", "E16": "7203 JP", "F16": 1000, "G16": 20, "H16": 20, "I16": 20000,
			"B17": "Not Classified", "H17": 5,
			"C18": "US Dollar Spot", "F18": 5000, "G18": 1, "H18": 5, "I18": 5000,
		},
	})

	writeWorkbook(t, filepath.Join(dir, "performance_2025-09-30.xlsx"), []string{"Perf"}, map[string]content{
		"Perf": {
			"B2": "EAFE Small Cap Value Composite", "C4": 0.0123, "D4": 0.011,
			"B6": "EM Small Cap Value Composite", "C8": -0.005, "D8": -0.006,
			"B10": "Int'l Small Cap Value Composite", "C12": 0.021, "D12": 0.0195,
			"B14": "ISC Impact Composite", "C16": 0.015, "D16": 0.014,
		},
	})

	writeWorkbook(t, filepath.Join(dir, "allocation_template.xlsx"), []string{"Template"}, map[string]content{
		"Template": {
			"A1": "Market", "B1": "Country (%)", "C1": "Currency (%)",
			"A2": "Weights as of month end", "A3": "Benchmark: MSCI EAFE Small Cap",
			"A9": "Euroland (EU) Countries",
			"A10": "France", "B10": 0, "C10": 2,
			"A11": "Far East & Australasia",
			"A12": "Japan", "B12": 0, "C12": 3,
		},
	})

	chars := content{
		"B9": "France", "D9": 10,
		"C10": "Air Liquide", "D10": 4,
		"C11": "Danone", "D11": 6,
		"B12": "Japan", "D12": 20,
		"C14": "Toyota Motor", "D14": 20,
		"C15": "US Dollar Spot", "D15": 5,
		"A16": "Total", "AC16": 12.5, "K16": 15.1,
	}
	sectors := content{}
	for i, s := range sectorNames {
		sectors[fmt.Sprintf("B%d", i+2)] = s
		sectors[fmt.Sprintf("E%d", i+2)] = i + 1
	}
	template := content{"A17": "Cash", "A19": "Holdings", "B14": "template"}
	writeWorkbook(t, filepath.Join(dir, "characteristics.xlsx"),
		[]string{"Characteristics", "Sectors", "CharacteristicsUpdated"},
		map[string]content{"Characteristics": chars, "Sectors": sectors, "CharacteristicsUpdated": template})

	writeWorkbook(t, filepath.Join(dir, "caps.xlsx"), []string{"Holdings"}, map[string]content{
		"Holdings": {
			"B2": "7.5-15B", "D2": 19, "B3": "1.5-7.5B", "D3": 38, "B4": "750M-1.5B",
			"B5": "400-750M", "D5": 9.5, "B6": "<400M", "D6": 28.5,
		},
	})
}

func testPipeline(t *testing.T, dir string) *pipeline {
	t.Helper()
	cfg := config.Default()
	cfg.BaseDir = dir
	cfg.Files.CapsWorkbook = "caps.xlsx"
	cfg.Characteristics.Title = "International Small Cap"
	require.NoError(t, cfg.Validate())
	today := date.New(2025, time.October, 19)
	return newPipeline(cfg, today, today, zerolog.Nop())
}

func readCell(t *testing.T, path, name, cell string) string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	v, err := f.GetCellValue(name, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return v
}

func TestPipeline_RunAll(t *testing.T) {
	dir := t.TempDir()
	fixtures(t, dir)
	p := testPipeline(t, dir)

	var out bytes.Buffer
	require.Equal(t, 0, p.runAll(context.Background(), &out), out.String())

	assert.Len(t, p.report.Holdings, 4)
	assert.Len(t, p.report.Performance, 4)
	require.NotNil(t, p.report.Allocation)
	assert.Len(t, p.report.Allocation.Applied, 2)
	require.NotNil(t, p.report.Characteristics)

	holdings := filepath.Join(dir, "holdings.xlsx")
	assert.Equal(t, "Identifier", readCell(t, holdings, "Holdings", "A1"))
	assert.Equal(t, "Air Liquide", readCell(t, holdings, "Holdings", "D2"))
	assert.Equal(t, "FRANCE", readCell(t, holdings, "Holdings", "I2"))

	perf := filepath.Join(dir, "performance.xlsx")
	assert.Equal(t, "ISCIO", readCell(t, perf, "Performance", "A5"))
	assert.Equal(t, "10/19/2025", readCell(t, perf, "Performance", "D5"))

	alloc := filepath.Join(dir, "allocations.xlsx")
	assert.Equal(t, "France", readCell(t, alloc, "Allocations", "A10"))
	assert.Equal(t, "10.53", readCell(t, alloc, "Allocations", "B10"))
	assert.Equal(t, "2", readCell(t, alloc, "Allocations", "C10"))
	assert.Equal(t, "21.05", readCell(t, alloc, "Allocations", "B12"))

	master := filepath.Join(dir, "performance_sheet.xlsx")
	assert.Equal(t, "0.05", readCell(t, master, "Characteristics", "B17"))
	assert.Equal(t, "4", readCell(t, master, "Characteristics", "B19"))
	assert.Equal(t, "International Small Cap", readCell(t, master, "Characteristics", "A14"))
	assert.Empty(t, readCell(t, master, "Characteristics", "B14"), "forbidden cells are not copied")

	// the characteristics workbook itself is left untouched
	assert.Empty(t, readCell(t, filepath.Join(dir, "characteristics.xlsx"), "CharacteristicsUpdated", "B17"))
}

func TestPipeline_DryRun(t *testing.T) {
	dir := t.TempDir()
	fixtures(t, dir)
	p := testPipeline(t, dir)
	p.dryRun = true

	var out bytes.Buffer
	require.Equal(t, 0, p.runAll(context.Background(), &out), out.String())
	assert.Len(t, p.report.CountryWeights, 2)
	for _, name := range []string{"holdings.xlsx", "performance.xlsx", "allocations.xlsx", "performance_sheet.xlsx"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.ErrorIs(t, err, fs.ErrNotExist, name)
	}
}

func TestPipeline_StageFailureDoesNotStopTheRun(t *testing.T) {
	dir := t.TempDir()
	fixtures(t, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "performance_2025-09-30.xlsx")))
	p := testPipeline(t, dir)

	var out bytes.Buffer
	assert.Equal(t, 1, p.runAll(context.Background(), &out))
	assert.Contains(t, out.String(), "performance: an unexpected error occurred")
	assert.Empty(t, p.report.Performance)
	assert.NotNil(t, p.report.Allocation, "the next stages ran")
	assert.NotNil(t, p.report.Characteristics)
}

func TestPipeline_Cancelled(t *testing.T) {
	dir := t.TempDir()
	fixtures(t, dir)
	p := testPipeline(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	assert.Equal(t, len(stages), p.runAll(ctx, &out))
	assert.Empty(t, p.report.Holdings)
}

func TestReportStageError(t *testing.T) {
	var out bytes.Buffer
	err := fmt.Errorf("cannot save workbook: %w", &fs.PathError{Op: "open", Path: "/data/holdings.xlsx", Err: fs.ErrPermission})
	reportStageError(&out, "holdings", err)
	assert.Equal(t, "holdings: file holdings.xlsx is open, please close it and try again\n", out.String())

	out.Reset()
	reportStageError(&out, "performance", fmt.Errorf("boom"))
	assert.Equal(t, "performance: an unexpected error occurred: boom\n", out.String())
}
