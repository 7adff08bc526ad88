package exceldb

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/models"
	"github.com/xuri/excelize/v2"
)

var schoolRange = models.Range{StartRow: 1, EndRow: 5, StartColumn: 2, EndColumn: "D"}

func TestSpreadsheetRegister(t *testing.T) {
	s, err := OpenSpreadsheet(writeWorkbook(t, "db.xlsx", schoolRows))
	require.NoError(t, err)

	table, err := s.Register("schools", schoolRange)
	require.NoError(t, err)

	assert.True(t, s.Has("schools"))
	got, err := s.Get("schools")
	require.NoError(t, err)
	assert.Same(t, table, got)

	data, err := s.Data("schools")
	require.NoError(t, err)
	assert.Same(t, table.Data, data)

	fields, ok := data.Get("S3")
	require.True(t, ok)
	v, _ := fields.Get("Name")
	assert.Equal(t, "Oakfield", v)
}

func TestSpreadsheetInvalidName(t *testing.T) {
	s := NewSpreadsheet(nil)

	for _, name := range []string{"my schools", "tab\tname", "", "line\n"} {
		_, err := s.Register(name, schoolRange)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)

		var nameErr *NameError
		require.True(t, errors.As(err, &nameErr))
		assert.Equal(t, name, nameErr.Name)

		assert.ErrorIs(t, s.Set(name, &Table{}), ErrInvalidName)
	}
	assert.Empty(t, s.Names())
}

func TestSpreadsheetWithoutWorkbook(t *testing.T) {
	s := NewSpreadsheet(nil)
	_, err := s.Register("schools", schoolRange)
	assert.ErrorIs(t, err, ErrUnloadedSource)
}

func TestSpreadsheetUnknownTable(t *testing.T) {
	s := NewSpreadsheet(nil)

	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrUnknownTable)
	_, err = s.Data("nope")
	assert.ErrorIs(t, err, ErrUnknownTable)
	assert.False(t, s.Has("nope"))
	assert.False(t, s.Remove("nope"))
}

func TestSpreadsheetNamesAndRemove(t *testing.T) {
	s, err := OpenSpreadsheet(writeWorkbook(t, "db.xlsx", schoolRows))
	require.NoError(t, err)

	_, err = s.Register("schools", schoolRange)
	require.NoError(t, err)
	_, err = s.Register("first_two", models.Range{StartRow: 1, EndRow: 3, StartColumn: 2, EndColumn: "B"})
	require.NoError(t, err)
	_, err = s.Register("schools", models.Range{StartRow: 1, EndRow: 2, StartColumn: 2, EndColumn: "B"})
	require.NoError(t, err)

	assert.Equal(t, []string{"schools", "first_two"}, s.Names())
	data, err := s.Data("schools")
	require.NoError(t, err)
	assert.Equal(t, 1, data.Len())

	assert.True(t, s.Remove("schools"))
	assert.Equal(t, []string{"first_two"}, s.Names())
}

func TestSpreadsheetRegisterErrors(t *testing.T) {
	s, err := OpenSpreadsheet(writeWorkbook(t, "db.xlsx", schoolRows))
	require.NoError(t, err)

	_, err = s.Register("ghost", models.Range{Sheet: "Ghost", StartRow: 1, EndRow: 2, StartColumn: 2, EndColumn: "B"})
	assert.ErrorIs(t, err, ErrUnknownSheet)

	_, err = s.Register("empty", models.Range{StartRow: 1, EndRow: 1, StartColumn: 2, EndColumn: "B"})
	assert.ErrorIs(t, err, ErrEmptyExtraction)
	assert.False(t, s.Has("empty"))
}

func TestSpreadsheetRegisterDefinedNames(t *testing.T) {
	f := excelize.NewFile()
	for i, row := range schoolRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{Name: "Schools", RefersTo: "Sheet1!$B$1:$D$5"}))
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{Name: "Towns", RefersTo: "Sheet1!$C$1:$C$3"}))
	path := filepath.Join(t.TempDir(), "named.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	s, err := OpenSpreadsheet(path)
	require.NoError(t, err)

	names, err := s.RegisterDefinedNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Schools", "Towns"}, names)

	towns, err := s.Get("Towns")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"S1", "S2"}, towns.Index)
	assert.Equal(t, []interface{}{"Town"}, towns.Columns)
}

func TestSpreadsheetRegisterDefinedNamesSkipsUnusable(t *testing.T) {
	f := excelize.NewFile()
	for i, row := range schoolRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Other", "A1", &[]interface{}{"Key", "Value"}))
	require.NoError(t, f.SetSheetRow("Other", "A2", &[]interface{}{"k", "v"}))
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{Name: "Headers", RefersTo: "Sheet1!$A$1:$D$1"}))
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{Name: "Others", RefersTo: "Other!$A$1:$B$2"}))
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{Name: "Schools", RefersTo: "Sheet1!$B$1:$D$5"}))
	path := filepath.Join(t.TempDir(), "named.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := LoadWithOptions(path, Options{Sheets: []string{"Sheet1"}})
	require.NoError(t, err)
	s := NewSpreadsheet(wb)

	names, err := s.RegisterDefinedNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"Schools"}, names)
	assert.False(t, s.Has("Headers"))
	assert.False(t, s.Has("Others"))
}
