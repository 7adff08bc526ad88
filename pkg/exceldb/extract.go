package exceldb

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/models"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/parser"
)

// Extract builds a Mapping from a rectangular region of grid.
//
// Row r.StartRow is the header row and supplies the field names for
// columns r.StartColumn through r.EndColumn. Every row after it up to and
// including r.EndRow becomes one record, keyed by its column 1 value.
// A record key seen twice keeps the later row's fields.
//
// On error no Mapping is returned.
func Extract(grid *models.Grid, r models.Range) (*models.Mapping, error) {
	if grid == nil {
		return nil, fmt.Errorf("%w: load a workbook before extracting", ErrUnloadedSource)
	}

	endCol, err := validateRange(r)
	if err != nil {
		return nil, err
	}

	names := make([]interface{}, 0, endCol-r.StartColumn+1)
	for col := r.StartColumn; col <= endCol; col++ {
		name, err := grid.Cell(r.StartRow, col)
		if err != nil {
			return nil, NewExtractionError(grid.Sheet, r.StartRow, col, err)
		}
		names = append(names, name)
	}

	data := models.NewMapping()
	for row := r.StartRow + 1; row <= r.EndRow; row++ {
		key, err := grid.Cell(row, 1)
		if err != nil {
			return nil, NewExtractionError(grid.Sheet, row, 1, err)
		}

		fields := models.NewFields()
		for i, name := range names {
			col := r.StartColumn + i
			value, err := grid.Cell(row, col)
			if err != nil {
				return nil, NewExtractionError(grid.Sheet, row, col, err)
			}
			fields.Set(name, value)
		}

		if _, dup := data.Get(key); dup {
			log.WithFields(log.Fields{"sheet": grid.Sheet, "row": row, "key": key}).
				Debug("duplicate record key, later row wins")
		}
		data.Set(key, fields)
	}

	log.WithFields(log.Fields{
		"sheet":   grid.Sheet,
		"records": data.Len(),
		"fields":  len(names),
	}).Trace("range extracted")

	return data, nil
}

// validateRange checks r and returns the decoded end column.
func validateRange(r models.Range) (int, error) {
	var missing []string
	if r.StartRow == 0 {
		missing = append(missing, "start_row")
	}
	if r.EndRow == 0 {
		missing = append(missing, "end_row")
	}
	if r.StartColumn == 0 {
		missing = append(missing, "start_column")
	}
	if strings.TrimSpace(r.EndColumn) == "" {
		missing = append(missing, "end_column")
	}
	if len(missing) > 0 {
		return 0, fmt.Errorf("%w: %s required", ErrMissingParameter, strings.Join(missing, ", "))
	}

	endCol, err := parser.ColumnNumber(r.EndColumn)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidColumn, err)
	}

	if r.StartRow < 0 || r.StartColumn < 0 {
		return 0, fmt.Errorf("%w: start row and column must be positive", ErrInvalidRange)
	}
	if r.EndRow < r.StartRow {
		return 0, fmt.Errorf("%w: end row %d before start row %d", ErrInvalidRange, r.EndRow, r.StartRow)
	}
	if endCol < r.StartColumn {
		return 0, fmt.Errorf("%w: end column %s before start column %d", ErrInvalidRange, r.EndColumn, r.StartColumn)
	}
	return endCol, nil
}
