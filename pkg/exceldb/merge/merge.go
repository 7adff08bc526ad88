// Package merge fills document templates with record data.
//
// A Document carries flat placeholder values plus named repeating groups.
// DocxTemplate renders it through a Word template's {{…}} placeholders,
// repeating each group's {{for}} block once per group entry.
package merge

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrTemplateNotFound indicates the template file does not exist.
var ErrTemplateNotFound = errors.New("template not found")

// ErrInvalidTemplate indicates the template is not a readable .docx.
var ErrInvalidTemplate = errors.New("invalid template")

// ErrUnknownGroup indicates the template never loops over a group.
var ErrUnknownGroup = errors.New("no template loop for group")

// Document is the input of a merge.
type Document struct {
	// Fields maps placeholder names to scalar values.
	Fields map[string]interface{}
	// Groups maps a group name to its rows. Rows of a group share one key set.
	Groups map[string][]map[string]interface{}
}

// Merger renders a Document to an output file.
type Merger interface {
	// MergeFields lists the placeholder names the template declares.
	MergeFields() ([]string, error)
	// Merge renders doc into a new file at outPath.
	Merge(doc Document, outPath string) error
}

// Acronym returns the upper-cased initial of every whitespace-separated word.
func Acronym(name string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}

// OutputName derives the output file name "<prefix> <ACRONYM> <code>.docx".
// Empty parts are left out. Path separators become "-", so the name
// always stays a single file name.
func OutputName(prefix, name, code string) string {
	var parts []string
	for _, p := range []string{prefix, Acronym(name), strings.TrimSpace(code)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return pathSafe.Replace(strings.Join(parts, " ")) + ".docx"
}

var pathSafe = strings.NewReplacer("/", "-", `\`, "-")

// Write validates b, merges it with m into dir and returns the written path.
func Write(m Merger, b *Brief, dir, prefix string) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	path := filepath.Join(dir, OutputName(prefix, b.Client, b.CourseCode))
	if err := m.Merge(b.Document(), path); err != nil {
		return "", err
	}
	return path, nil
}
