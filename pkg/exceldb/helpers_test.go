package exceldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows to Sheet1 of a new xlsx under t.TempDir.
func writeWorkbook(t *testing.T, name string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// schoolRows is a header row plus four data rows.
var schoolRows = [][]interface{}{
	{"ID", "Name", "Town", "Pupils"},
	{"S1", "Hill Top", "Leeds", 120},
	{"S2", "Riverside", "York", 80},
	{"S3", "Oakfield", "Hull", 95},
	{"S4", "Moorside", "Ripon", 60},
}
