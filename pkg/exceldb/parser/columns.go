// Package parser provides excelize-backed readers and coordinate helpers.
package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColumnNumber decodes column letters (A=1, Z=26, AA=27, ...) into a
// 1-based column index. Letters are case-insensitive. Anything other than
// ASCII letters, or a column past XFD, is an error.
func ColumnNumber(letters string) (int, error) {
	letters = strings.TrimSpace(letters)
	if letters == "" {
		return 0, fmt.Errorf("empty column name")
	}
	for _, c := range letters {
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return 0, fmt.Errorf("column name %q contains non-letter %q", letters, c)
		}
	}
	return excelize.ColumnNameToNumber(strings.ToUpper(letters))
}

// ColumnName encodes a 1-based column index as letters.
func ColumnName(n int) (string, error) {
	return excelize.ColumnNumberToName(n)
}
