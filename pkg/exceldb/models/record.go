package models

import "fmt"

// Fields maps field names (header values) to field values for one record.
// Iteration order is insertion order.
type Fields struct {
	names  []interface{}
	values map[interface{}]interface{}
}

// NewFields creates an empty Fields.
func NewFields() *Fields {
	return &Fields{values: make(map[interface{}]interface{})}
}

// Set stores value under name. Overwriting keeps the original position.
func (f *Fields) Set(name, value interface{}) {
	if _, ok := f.values[name]; !ok {
		f.names = append(f.names, name)
	}
	f.values[name] = value
}

// Get returns the value stored under name.
func (f *Fields) Get(name interface{}) (interface{}, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Names returns the field names in insertion order.
func (f *Fields) Names() []interface{} {
	return append([]interface{}(nil), f.names...)
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	return len(f.names)
}

// Map flattens the fields into a string-keyed map.
func (f *Fields) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(f.names))
	for _, name := range f.names {
		m[KeyString(name)] = f.values[name]
	}
	return m
}

// Mapping is the result of a range extraction: record key to Fields.
// Iteration order is row order. A repeated key replaces the earlier
// record's fields but keeps the earlier position.
type Mapping struct {
	keys    []interface{}
	records map[interface{}]*Fields
}

// NewMapping creates an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{records: make(map[interface{}]*Fields)}
}

// Set stores fields under key.
func (m *Mapping) Set(key interface{}, fields *Fields) {
	if _, ok := m.records[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.records[key] = fields
}

// Get returns the record stored under key.
func (m *Mapping) Get(key interface{}) (*Fields, bool) {
	f, ok := m.records[key]
	return f, ok
}

// Keys returns the record keys in row order.
func (m *Mapping) Keys() []interface{} {
	return append([]interface{}(nil), m.keys...)
}

// Len returns the number of records.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// KeyString renders a key or field name as text. nil renders as "".
func KeyString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
