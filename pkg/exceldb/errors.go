package exceldb

import (
	"errors"
	"fmt"
)

// ErrMissingParameter indicates a required range coordinate is zero or empty.
var ErrMissingParameter = errors.New("missing parameter")

// ErrUnloadedSource indicates extraction was attempted without a loaded grid.
var ErrUnloadedSource = errors.New("source not loaded")

// ErrEmptyExtraction indicates a range produced no records.
var ErrEmptyExtraction = errors.New("extraction produced no records")

// ErrInvalidName indicates a table name is empty or contains whitespace.
var ErrInvalidName = errors.New("invalid table name")

// ErrInvalidColumn indicates the end column is not a valid column name.
var ErrInvalidColumn = errors.New("invalid column")

// ErrInvalidRange indicates the range ends before it starts.
var ErrInvalidRange = errors.New("invalid range")

// ErrUnknownTable indicates no table is registered under the requested name.
var ErrUnknownTable = errors.New("unknown table")

// ErrUnknownSheet indicates the workbook has no sheet with the requested name.
var ErrUnknownSheet = errors.New("unknown sheet")

// ErrSourceNotFound indicates the input file does not exist.
var ErrSourceNotFound = errors.New("file not found")

// ErrPermissionDenied indicates the input file could not be opened for reading.
var ErrPermissionDenied = errors.New("permission denied")

// ErrInvalidFormat indicates the input file is not a readable workbook.
var ErrInvalidFormat = errors.New("invalid workbook format")

// SourceLoadError represents a failure to load a workbook.
// Err wraps one of ErrSourceNotFound, ErrPermissionDenied or ErrInvalidFormat.
type SourceLoadError struct {
	Path string
	Err  error
}

func (e *SourceLoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Path, e.Err)
}

func (e *SourceLoadError) Unwrap() error {
	return e.Err
}

// ExtractionError represents a cell read failure during range extraction.
type ExtractionError struct {
	SheetName string
	Row       int
	Column    int
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q at row %d, column %d: %v", e.SheetName, e.Row, e.Column, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName string, row, column int, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Row:       row,
		Column:    column,
		Err:       err,
	}
}

// NameError reports a rejected table name. It matches ErrInvalidName.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("invalid table name %q: must be non-empty and contain no whitespace", e.Name)
}

func (e *NameError) Is(target error) bool {
	return target == ErrInvalidName
}
