package exceldb

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	log "github.com/sirupsen/logrus"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/models"
)

// Spreadsheet holds named tables extracted from one workbook.
type Spreadsheet struct {
	wb     *Workbook
	names  []string
	tables map[string]*Table
}

// NewSpreadsheet creates an empty Spreadsheet over wb.
func NewSpreadsheet(wb *Workbook) *Spreadsheet {
	return &Spreadsheet{
		wb:     wb,
		tables: make(map[string]*Table),
	}
}

// OpenSpreadsheet loads the workbook at path and wraps it.
func OpenSpreadsheet(path string) (*Spreadsheet, error) {
	wb, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewSpreadsheet(wb), nil
}

// Workbook returns the underlying workbook.
func (s *Spreadsheet) Workbook() *Workbook {
	return s.wb
}

// Register extracts r from the workbook and stores the table under name.
// The name is checked before any extraction work.
func (s *Spreadsheet) Register(name string, r models.Range) (*Table, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if s.wb == nil {
		return nil, fmt.Errorf("%w: spreadsheet has no workbook", ErrUnloadedSource)
	}
	grid, err := s.wb.Grid(r.Sheet)
	if err != nil {
		return nil, err
	}
	t, err := NewTable(grid, r)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", name, err)
	}
	s.put(name, t)
	return t, nil
}

// RegisterDefinedNames registers a table for every defined name in the
// workbook, in name order. Names that are not valid table names, ranges
// holding only a header row and ranges on sheets that were not loaded
// are skipped.
func (s *Spreadsheet) RegisterDefinedNames() ([]string, error) {
	if s.wb == nil {
		return nil, fmt.Errorf("%w: spreadsheet has no workbook", ErrUnloadedSource)
	}
	defined := s.wb.DefinedRanges()
	names := make([]string, 0, len(defined))
	for name := range defined {
		names = append(names, name)
	}
	sort.Strings(names)

	var registered []string
	for _, name := range names {
		if ValidateName(name) != nil {
			log.WithField("name", name).Debug("skipping defined name")
			continue
		}
		if _, err := s.Register(name, defined[name]); err != nil {
			if errors.Is(err, ErrEmptyExtraction) || errors.Is(err, ErrUnknownSheet) {
				log.WithError(err).WithField("name", name).Debug("skipping defined name")
				continue
			}
			return registered, err
		}
		registered = append(registered, name)
	}
	return registered, nil
}

// Set stores an existing table under name.
func (s *Spreadsheet) Set(name string, t *Table) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("table %q: %w", name, ErrEmptyExtraction)
	}
	s.put(name, t)
	return nil
}

func (s *Spreadsheet) put(name string, t *Table) {
	if _, ok := s.tables[name]; !ok {
		s.names = append(s.names, name)
	}
	s.tables[name] = t
	log.WithFields(log.Fields{"name": name, "records": t.Len()}).Debug("table registered")
}

// Get returns the table registered under name.
func (s *Spreadsheet) Get(name string) (*Table, error) {
	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// Data returns the mapping of the table registered under name.
func (s *Spreadsheet) Data(name string) (*models.Mapping, error) {
	t, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return t.Data, nil
}

// Has reports whether a table is registered under name.
func (s *Spreadsheet) Has(name string) bool {
	_, ok := s.tables[name]
	return ok
}

// Names returns the registered names in registration order.
func (s *Spreadsheet) Names() []string {
	return append([]string(nil), s.names...)
}

// Remove drops the table registered under name and reports whether one existed.
func (s *Spreadsheet) Remove(name string) bool {
	if _, ok := s.tables[name]; !ok {
		return false
	}
	delete(s.tables, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return true
}

// ValidateName rejects empty names and names containing whitespace.
func ValidateName(name string) error {
	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return &NameError{Name: name}
	}
	return nil
}
