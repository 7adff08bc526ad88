// Package exceldb extracts keyed records from spreadsheet ranges.
//
// A workbook is loaded once into an explicit, caller-owned Workbook
// handle. Ranges of its sheets are turned into Mappings (record key to
// header-named fields) by Extract, wrapped by Table for lookups, and
// collected under names by Spreadsheet.
package exceldb

// Options configures workbook loading.
type Options struct {
	// Sheets restricts loading to the named sheets. Empty loads every sheet.
	Sheets []string
	// IncludeDefinedNames specifies whether to read workbook defined names.
	// If nil, defaults to true.
	IncludeDefinedNames *bool
	// Password opens an encrypted workbook.
	Password string
}

// DefaultOptions returns default load options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldIncludeDefinedNames returns whether to read defined names.
func (o Options) ShouldIncludeDefinedNames() bool {
	if o.IncludeDefinedNames != nil {
		return *o.IncludeDefinedNames
	}
	return true
}

// wantsSheet returns whether the named sheet should be loaded.
func (o Options) wantsSheet(name string) bool {
	if len(o.Sheets) == 0 {
		return true
	}
	for _, s := range o.Sheets {
		if s == name {
			return true
		}
	}
	return false
}
