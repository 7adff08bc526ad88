package merge

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	stencil "github.com/benjaminschreck/go-stencil"
	log "github.com/sirupsen/logrus"
)

// DocxTemplate is a Word template prepared for rendering. Placeholders use
// the {{name}} syntax; a group is repeated with {{for row in Group}} ...
// {{end}} and its values are read as {{row.Key}}. One DocxTemplate can
// render many documents.
type DocxTemplate struct {
	path   string
	tmpl   *stencil.PreparedTemplate
	fields []string
	// top is read from the data root; rows from loop variables.
	top    []string
	rows   []string
	groups map[string]bool
}

// OpenTemplate prepares the .docx at path.
func OpenTemplate(path string) (*DocxTemplate, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}

	ph, err := scanTemplate(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, path, err)
	}

	tmpl, err := stencil.PrepareFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, path, err)
	}

	t := &DocxTemplate{
		path:   path,
		tmpl:   tmpl,
		fields: ph.names,
		top:    ph.top,
		rows:   ph.rows,
		groups: ph.groups,
	}
	log.WithFields(log.Fields{"path": path, "fields": len(t.fields)}).Debug("template opened")
	return t, nil
}

// Close releases the prepared template.
func (t *DocxTemplate) Close() {
	t.tmpl.Close()
}

// MergeFields lists the template's placeholder names in document order,
// main document first. Looped groups are listed under their own name.
func (t *DocxTemplate) MergeFields() ([]string, error) {
	return append([]string(nil), t.fields...), nil
}

// Merge renders doc into a new file at outPath. Placeholders with no value
// render empty. A group with entries that the template never loops over
// fails with ErrUnknownGroup.
func (t *DocxTemplate) Merge(doc Document, outPath string) error {
	data, unfilled, err := t.templateData(doc)
	if err != nil {
		return err
	}
	if len(unfilled) > 0 {
		log.WithFields(log.Fields{"template": t.path, "fields": unfilled}).Warn("merge fields left empty")
	}

	out, err := t.tmpl.Render(data)
	if err != nil {
		return fmt.Errorf("render %s: %w", t.path, err)
	}
	if err := os.WriteFile(outPath, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	log.WithField("path", outPath).Debug("document written")
	return nil
}

func (t *DocxTemplate) templateData(doc Document) (stencil.TemplateData, []string, error) {
	data := stencil.TemplateData{}
	for k, v := range doc.Fields {
		data[k] = v
	}

	groups := make([]string, 0, len(doc.Groups))
	for g := range doc.Groups {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	for _, g := range groups {
		entries := doc.Groups[g]
		if !t.groups[g] {
			if len(entries) > 0 {
				return nil, nil, fmt.Errorf("%w %q in %s", ErrUnknownGroup, g, t.path)
			}
			continue
		}
		data[g] = t.rowData(entries)
	}

	var unfilled []string
	for g := range t.groups {
		if _, ok := data[g]; !ok {
			data[g] = []interface{}{}
		}
	}
	for _, name := range t.top {
		if _, ok := data[name]; !ok {
			data[name] = ""
			unfilled = append(unfilled, name)
		}
	}
	return data, unfilled, nil
}

// rowData copies entries, giving every row key the template reads a value.
func (t *DocxTemplate) rowData(entries []map[string]interface{}) []interface{} {
	rows := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		row := make(map[string]interface{}, len(e)+len(t.rows))
		for _, k := range t.rows {
			row[k] = ""
		}
		for k, v := range e {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows
}
