// Package output renders extraction results as JSON.
// Object keys keep row and header order.
package output

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/ukaji3/exceldb-go/pkg/exceldb"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/models"
)

// ErrDuplicateKey indicates two distinct keys or field names render as the
// same JSON object key, such as int64(1) and "1".
var ErrDuplicateKey = errors.New("duplicate JSON key")

// MappingToJSON serializes a Mapping as a JSON object of objects.
func MappingToJSON(m *models.Mapping, pretty bool) ([]byte, error) {
	if err := checkKeys(m); err != nil {
		return nil, err
	}
	return marshal(mappingJSON{m}, pretty)
}

// TableToJSON serializes a Table with its range, index and columns.
func TableToJSON(t *exceldb.Table, pretty bool) ([]byte, error) {
	if err := checkKeys(t.Data); err != nil {
		return nil, err
	}
	return marshal(tableJSON{
		Range:   t.Range,
		Index:   t.Index,
		Columns: t.Columns,
		Data:    mappingJSON{t.Data},
	}, pretty)
}

// SpreadsheetToJSON serializes every registered table's data, keyed by
// table name in registration order.
func SpreadsheetToJSON(s *exceldb.Spreadsheet, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.Names() {
		data, err := s.Data(name)
		if err != nil {
			return nil, err
		}
		if err := checkKeys(data); err != nil {
			return nil, fmt.Errorf("table %q: %w", name, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, name, mappingJSON{data}); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return finish(buf.Bytes(), pretty)
}

// WorkbookInfoToJSON serializes workbook metadata.
func WorkbookInfoToJSON(info *models.WorkbookInfo, pretty bool) ([]byte, error) {
	return marshal(info, pretty)
}

// checkKeys fails when two row keys, or two field names of one row,
// render as the same text.
func checkKeys(m *models.Mapping) error {
	if m == nil {
		return nil
	}
	keys := make(map[string]bool, m.Len())
	for _, key := range m.Keys() {
		k := models.KeyString(key)
		if keys[k] {
			return fmt.Errorf("%w: row %q", ErrDuplicateKey, k)
		}
		keys[k] = true

		fields, _ := m.Get(key)
		if fields == nil {
			continue
		}
		names := make(map[string]bool, fields.Len())
		for _, name := range fields.Names() {
			n := models.KeyString(name)
			if names[n] {
				return fmt.Errorf("%w: field %q in row %q", ErrDuplicateKey, n, k)
			}
			names[n] = true
		}
	}
	return nil
}

type tableJSON struct {
	Range   models.Range  `json:"range"`
	Index   []interface{} `json:"index"`
	Columns []interface{} `json:"columns"`
	Data    mappingJSON   `json:"data"`
}

type mappingJSON struct {
	m *models.Mapping
}

func (j mappingJSON) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if j.m != nil {
		for i, key := range j.m.Keys() {
			fields, _ := j.m.Get(key)
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeMember(&buf, models.KeyString(key), fieldsJSON{fields}); err != nil {
				return nil, err
			}
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type fieldsJSON struct {
	f *models.Fields
}

func (j fieldsJSON) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range j.f.Names() {
		value, _ := j.f.Get(name)
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, models.KeyString(name), value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, value interface{}) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return finish(data, pretty)
}

func finish(data []byte, pretty bool) ([]byte, error) {
	if !pretty {
		return data, nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
