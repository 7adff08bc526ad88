package parser

import "github.com/ukaji3/exceldb-go/pkg/exceldb/models"

// DetectBounds finds the bounding box of non-empty cells in a grid.
// The returned Range has StartColumn set to the leftmost used column.
// ok is false when the grid holds no values.
func DetectBounds(g *models.Grid) (r models.Range, ok bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(g)
	if minRow < 0 {
		return models.Range{}, false
	}

	endName, err := ColumnName(maxCol)
	if err != nil {
		return models.Range{}, false
	}

	return models.Range{
		Sheet:       g.Sheet,
		StartRow:    minRow,
		EndRow:      maxRow,
		StartColumn: minCol,
		EndColumn:   endName,
	}, true
}

// findDataBounds finds the 1-based bounding box of non-empty cells.
func findDataBounds(g *models.Grid) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for row := 1; row <= g.NumRows(); row++ {
		for col := 1; col <= g.NumCols(); col++ {
			v, _ := g.Cell(row, col)
			if isEmpty(v) {
				continue
			}
			if minRow < 0 || row < minRow {
				minRow = row
			}
			if maxRow < 0 || row > maxRow {
				maxRow = row
			}
			if minCol < 0 || col < minCol {
				minCol = col
			}
			if maxCol < 0 || col > maxCol {
				maxCol = col
			}
		}
	}

	return
}

func isEmpty(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
