package parser

import (
	"strconv"

	"github.com/ukaji3/exceldb-go/pkg/exceldb/models"
	"github.com/xuri/excelize/v2"
)

// ReadGrid reads every stored row of a sheet into a Grid.
// Empty cells become nil; other values are typed with parseValue.
func ReadGrid(f *excelize.File, sheetName string) (*models.Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	cells := make([][]interface{}, len(rows))
	for rowIdx, row := range rows {
		values := make([]interface{}, len(row))
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			values[colIdx] = parseValue(cellValue)
		}
		cells[rowIdx] = values
	}

	return models.NewGrid(sheetName, cells), nil
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
