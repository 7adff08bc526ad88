package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/exceldb-go/pkg/exceldb/models"
	"github.com/xuri/excelize/v2"
)

// ParseRange parses a range reference into a Range.
// Accepted forms: B1:E20, $B$1:$E$20, Sheet1!B1:E20, 'My Sheet'!$B$1:$E$20.
// The top row becomes the header row and the left column the first field
// column.
func ParseRange(ref string) (models.Range, error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "=")

	var sheet string
	rangeStr := ref
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheet = strings.Trim(ref[:idx], "'")
		rangeStr = ref[idx+1:]
	}

	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return models.Range{}, fmt.Errorf("range %q: expected TOPLEFT:BOTTOMRIGHT", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.Range{}, fmt.Errorf("range %q: %w", ref, err)
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.Range{}, fmt.Errorf("range %q: %w", ref, err)
	}

	endName, err := excelize.ColumnNumberToName(endCol)
	if err != nil {
		return models.Range{}, fmt.Errorf("range %q: %w", ref, err)
	}

	return models.Range{
		Sheet:       sheet,
		StartRow:    startRow,
		EndRow:      endRow,
		StartColumn: startCol,
		EndColumn:   endName,
	}, nil
}

// FormatRange renders a Range as a reference such as B1:E20. The sheet
// name is not included.
func FormatRange(r models.Range) (string, error) {
	start, err := excelize.CoordinatesToCellName(r.StartColumn, r.StartRow)
	if err != nil {
		return "", err
	}
	endCol, err := ColumnNumber(r.EndColumn)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(endCol, r.EndRow)
	if err != nil {
		return "", err
	}
	return start + ":" + end, nil
}

// DefinedRanges returns the workbook's user defined names that refer to
// a single rectangular range. Built-in names (_xlnm.*) and multi-area
// references are skipped.
func DefinedRanges(f *excelize.File) map[string]models.Range {
	result := make(map[string]models.Range)

	for _, dn := range f.GetDefinedName() {
		if strings.HasPrefix(strings.ToLower(dn.Name), "_xlnm.") {
			continue
		}
		if strings.Contains(dn.RefersTo, ",") {
			continue
		}
		r, err := ParseRange(dn.RefersTo)
		if err != nil {
			continue
		}
		result[dn.Name] = r
	}

	return result
}
