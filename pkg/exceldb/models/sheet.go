package models

// SheetInfo summarizes a loaded sheet.
type SheetInfo struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Rows is the number of stored rows.
	Rows int `json:"rows"`
	// Cols is the width of the widest row.
	Cols int `json:"cols"`
	// Active reports whether this is the workbook's active sheet.
	Active bool `json:"active"`
	// Bounds is the bounding range of non-empty cells, if any.
	Bounds string `json:"bounds,omitempty"`
}
