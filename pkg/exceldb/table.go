package exceldb

import (
	"fmt"

	"github.com/ukaji3/exceldb-go/pkg/exceldb/models"
)

// Table is an extracted Mapping together with the range that produced it.
type Table struct {
	// Range is the region the data was extracted from.
	Range models.Range
	// Data is the extracted mapping.
	Data *models.Mapping
	// Index lists the record keys in row order.
	Index []interface{}
	// Columns lists the field names of the first record.
	Columns []interface{}
}

// NewTable extracts r from grid and wraps the result.
// A range with no data rows fails with ErrEmptyExtraction.
func NewTable(grid *models.Grid, r models.Range) (*Table, error) {
	data, err := Extract(grid, r)
	if err != nil {
		return nil, err
	}
	return NewTableFromMapping(r, data)
}

// NewTableFromMapping wraps an already extracted mapping.
func NewTableFromMapping(r models.Range, data *models.Mapping) (*Table, error) {
	if data == nil || data.Len() == 0 {
		return nil, fmt.Errorf("%w: rows %d-%d", ErrEmptyExtraction, r.StartRow+1, r.EndRow)
	}
	index := data.Keys()
	first, _ := data.Get(index[0])
	return &Table{
		Range:   r,
		Data:    data,
		Index:   index,
		Columns: first.Names(),
	}, nil
}

// Len returns the number of records.
func (t *Table) Len() int {
	return t.Data.Len()
}

// Get returns the record stored under key.
func (t *Table) Get(key interface{}) (*models.Fields, bool) {
	return t.Data.Get(key)
}

// Value returns one field of one record.
func (t *Table) Value(key, column interface{}) (interface{}, bool) {
	fields, ok := t.Data.Get(key)
	if !ok {
		return nil, false
	}
	return fields.Get(column)
}

// Records flattens the table into row-ordered maps. Each map carries the
// record key under keyField when keyField is non-empty.
func (t *Table) Records(keyField string) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, t.Data.Len())
	for _, key := range t.Index {
		fields, _ := t.Data.Get(key)
		m := fields.Map()
		if keyField != "" {
			m[keyField] = key
		}
		out = append(out, m)
	}
	return out
}
