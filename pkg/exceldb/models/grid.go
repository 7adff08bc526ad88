// Package models defines data structures for spreadsheet record extraction.
package models

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds indicates a cell address below row 1 or column 1.
var ErrOutOfBounds = errors.New("cell address out of bounds")

// Grid is a read-only block of cell values loaded from a single sheet.
// Rows and columns are addressed 1-based. Cell values are int64, float64,
// string or nil for an empty cell.
//
// A Grid is never mutated after construction, so concurrent reads are safe.
type Grid struct {
	// Sheet is the name of the sheet the grid was read from.
	Sheet string
	rows  [][]interface{}
	cols  int
}

// NewGrid creates a Grid from row-major cell values. The rows are copied.
func NewGrid(sheet string, rows [][]interface{}) *Grid {
	g := &Grid{Sheet: sheet, rows: make([][]interface{}, len(rows))}
	for i, row := range rows {
		g.rows[i] = append([]interface{}(nil), row...)
		if len(row) > g.cols {
			g.cols = len(row)
		}
	}
	return g
}

// Cell returns the value at (row, col). Addresses past the stored data
// behave like empty spreadsheet cells and return nil.
func (g *Grid) Cell(row, col int) (interface{}, error) {
	if row < 1 || col < 1 {
		return nil, fmt.Errorf("cell (%d, %d): %w", row, col, ErrOutOfBounds)
	}
	if row > len(g.rows) {
		return nil, nil
	}
	r := g.rows[row-1]
	if col > len(r) {
		return nil, nil
	}
	return r[col-1], nil
}

// NumRows returns the number of stored rows, trailing empty rows included.
func (g *Grid) NumRows() int {
	return len(g.rows)
}

// NumCols returns the length of the widest stored row.
func (g *Grid) NumCols() int {
	return g.cols
}
