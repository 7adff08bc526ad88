package models

// Range describes a rectangular block of a sheet to extract.
// Row StartRow is the header row; data rows run from StartRow+1 to EndRow
// inclusive. Column 1 always supplies the record key.
type Range struct {
	// Sheet is the sheet name. Empty means the active sheet.
	Sheet string `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	// StartRow is the header row (1-based).
	StartRow int `json:"start_row" yaml:"start_row"`
	// EndRow is the last data row (1-based, inclusive).
	EndRow int `json:"end_row" yaml:"end_row"`
	// StartColumn is the first field column (1-based).
	StartColumn int `json:"start_column" yaml:"start_column"`
	// EndColumn is the last field column as letters, e.g. "E" or "AB".
	EndColumn string `json:"end_column" yaml:"end_column"`
}
