package merge

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMerger struct {
	doc  Document
	path string
}

func (m *recordingMerger) MergeFields() ([]string, error) { return nil, nil }

func (m *recordingMerger) Merge(doc Document, outPath string) error {
	m.doc = doc
	m.path = outPath
	return nil
}

func TestAcronym(t *testing.T) {
	tests := map[string]string{
		"Hill Top Academy":     "HTA",
		"  st  mary's  school ": "SMS",
		"éclair bakery":        "ÉB",
		"":                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Acronym(in), in)
	}
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "CDB HTA C42.docx", OutputName("CDB", "Hill Top Academy", "C42"))
	assert.Equal(t, "HTA C42.docx", OutputName("", "Hill Top Academy", "C42"))
	assert.Equal(t, "CDB C42.docx", OutputName("CDB", "", " C42 "))
}

func TestOutputNameStaysInDir(t *testing.T) {
	name := OutputName("CDB", "Acme / Sons", "../../tmp/evil")
	assert.Equal(t, "CDB A-S ..-..-tmp-evil.docx", name)
	assert.Equal(t, "CDB A-S C42.docx", OutputName("CDB", `Acme \ Sons`, "C42"))

	m := &recordingMerger{}
	b := validBrief()
	b.Client = "Acme / Sons"
	b.CourseCode = "../../tmp/evil"
	dir := t.TempDir()
	path, err := Write(m, b, dir, "CDB")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
}

func validBrief() *Brief {
	return &Brief{
		DutyManager:    "Pat",
		CourseCode:     "C42",
		Client:         "Hill Top Academy",
		ClientStudents: 30,
		ClientTeams:    5,
		Nights:         []map[string]interface{}{{"Night": "Mon"}},
	}
}

func TestWrite(t *testing.T) {
	m := &recordingMerger{}
	dir := t.TempDir()

	path, err := Write(m, validBrief(), dir, "CDB")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "CDB HTA C42.docx"), path)
	assert.Equal(t, path, m.path)
	assert.Equal(t, "Hill Top Academy", m.doc.Fields["Client"])
	assert.Equal(t, 30, m.doc.Fields["ClientStudents"])
	assert.Len(t, m.doc.Groups["Night"], 1)
	assert.Contains(t, m.doc.Groups, "Instructor")
}

func TestWriteRejectsInvalidBrief(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Brief)
		field  string
	}{
		{"negative students", func(b *Brief) { b.ClientStudents = -1 }, "ClientStudents"},
		{"negative teams", func(b *Brief) { b.ClientTeams = -2 }, "ClientTeams"},
		{"missing client", func(b *Brief) { b.Client = "" }, "Client"},
		{"missing course code", func(b *Brief) { b.CourseCode = "" }, "CourseCode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBrief()
			tt.mutate(b)
			m := &recordingMerger{}

			_, err := Write(m, b, t.TempDir(), "CDB")
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.field, verrs[0].Field())
			assert.Empty(t, m.path, "merge must not run")
		})
	}
}

func TestWriteWithoutDutyManager(t *testing.T) {
	b := validBrief()
	b.DutyManager = ""
	m := &recordingMerger{}

	_, err := Write(m, b, t.TempDir(), "CDB")
	require.NoError(t, err)
	assert.Equal(t, "", m.doc.Fields["DutyManager"])
}

func TestWriteWithDocxTemplate(t *testing.T) {
	tmpl, err := OpenTemplate(defaultTemplate(t))
	require.NoError(t, err)

	b := validBrief()
	b.Nights = []map[string]interface{}{{"Night": "Mon", "Site": "Camp A"}}
	b.Instructors = []map[string]interface{}{{"InstructorName": "Kim"}}

	path, err := Write(tmpl, b, t.TempDir(), "CDB")
	require.NoError(t, err)

	doc := readPartString(t, path, "word/document.xml")
	assert.Contains(t, doc, "Hill Top Academy")
	assert.Contains(t, doc, "Camp A")
	assert.Contains(t, doc, "Kim")
}
