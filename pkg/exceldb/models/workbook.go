package models

// WorkbookInfo represents workbook-level metadata with per-sheet summaries.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists the sheets in workbook order.
	Sheets []SheetInfo `json:"sheets"`
	// DefinedRanges maps workbook defined names to their ranges.
	DefinedRanges map[string]Range `json:"defined_ranges,omitempty"`
}
