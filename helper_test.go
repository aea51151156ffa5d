package perfsheet

import (
	"testing"

	"github.com/etnz/perfsheet/sheet"
	"github.com/xuri/excelize/v2"
)

// cells is a sparse sheet content, by cell name.
type cells map[string]string

// grid builds a sheet.Grid from sparse cells.
func grid(t *testing.T, name string, content cells) *sheet.Grid {
	t.Helper()
	var rows [][]string
	for cell, v := range content {
		col, row, err := excelize.CellNameToCoordinates(cell)
		if err != nil {
			t.Fatalf("invalid cell %q: %v", cell, err)
		}
		for len(rows) < row {
			rows = append(rows, nil)
		}
		for len(rows[row-1]) < col {
			rows[row-1] = append(rows[row-1], "")
		}
		rows[row-1][col-1] = v
	}
	return sheet.NewGrid(name, rows)
}

// holdingsExport is a raw holdings export with its header on row 11.
func holdingsExport(t *testing.T) *sheet.Grid {
	t.Helper()
	return grid(t, "Holdings", cells{
		"A1": "Fund holdings as of month end",
		"D11": "ISIN", "E11": "Ticker", "F11": "Pos", "G11": "Px Close", "H11": "% Wgt", "I11": "Mkt Val",

		"B12": "France", "H12": "10",
		"C13": "Air Liquide", "D13": "FR0000120073", "E13": "AI FP", "F13": "100", "G13": "150.5", "H13": "4", "I13": "15050",
		"C14": "Danone", "D14": "FR0000120644", "E14": "BN FP", "F14": "200", "G14": "60", "H14": "6", "I14": "12000",

		"B15": "Japan", "H15": "20",
		"C16": "Toyota Motor", "D16": "JP3633400001", "E16": "7203 JP", "F16": "1000", "G16": "20", "H16": "20", "I16": "20000",

		"B17": "Not Classified", "H17": "5",
		"C18": "US Dollar Spot", "F18": "5000", "G18": "1", "H18": "5", "I18": "5000",
	})
}

// cellName returns the name of the cell at column col and row.
func cellName(t *testing.T, col string, row int) string {
	t.Helper()
	name, err := excelize.JoinCellName(col, row)
	if err != nil {
		t.Fatalf("invalid cell %s%d: %v", col, row, err)
	}
	return name
}
