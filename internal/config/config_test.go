package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exceldb-go/pkg/exceldb"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/models"
)

const sampleYAML = `
logging:
  level: debug
workbook:
  path: Mock database.xlsx
  cache: true
merge:
  template: CDB Template.docx
tables:
  - name: schools
    start_row: 1
    end_row: 20
    end_column: F
  - name: instructors
    sheet: Staff
    range: B3:H40
  - name: campsites
    start_row: 1
    end_row: 12
    start_column: 3
    end_column: e
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exceldb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file and no env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
				assert.Equal(t, ".", cfg.Merge.OutputDir)
				assert.Equal(t, "CDB", cfg.Merge.Prefix)
				assert.Empty(t, cfg.Tables)
			},
		},
		{
			name: "file values",
			file: sampleYAML,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "Mock database.xlsx", cfg.Workbook.Path)
				assert.True(t, cfg.Workbook.Cache)
				assert.Equal(t, "CDB Template.docx", cfg.Merge.Template)
				require.Len(t, cfg.Tables, 3)
				assert.Equal(t, 2, cfg.Tables[0].StartColumn, "start column defaults to 2")
				assert.Equal(t, 3, cfg.Tables[2].StartColumn)
			},
		},
		{
			name: "env overrides file",
			file: sampleYAML,
			env:  map[string]string{"EXCELDB_LOGGING_LEVEL": "error", "EXCELDB_MERGE_PREFIX": "BRIEF"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "error", cfg.Logging.Level)
				assert.Equal(t, "BRIEF", cfg.Merge.Prefix)
				assert.Equal(t, "Mock database.xlsx", cfg.Workbook.Path)
			},
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"EXCELDB_LOGGING_LEVEL": "chatty"},
			wantErr: true,
		},
		{
			name:    "invalid log format",
			env:     map[string]string{"EXCELDB_LOGGING_FORMAT": "xml"},
			wantErr: true,
		},
		{
			name:    "table name with space",
			file:    "tables:\n  - name: my schools\n    range: B1:C4\n",
			wantErr: true,
		},
		{
			name:    "duplicate table name",
			file:    "tables:\n  - name: a\n    range: B1:C4\n  - name: a\n    range: B1:C4\n",
			wantErr: true,
		},
		{
			name:    "table missing coordinates",
			file:    "tables:\n  - name: a\n    start_row: 1\n",
			wantErr: true,
		},
		{
			name:    "unknown key",
			file:    "workbok:\n  path: x.xlsx\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"EXCELDB_LOGGING_LEVEL", "EXCELDB_LOGGING_FORMAT", "EXCELDB_MERGE_PREFIX"} {
				t.Setenv(k, "")
				os.Unsetenv(k)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfig(t, tt.file)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTableConfigToRange(t *testing.T) {
	r, err := TableConfig{Name: "a", Sheet: "Staff", Range: "B3:H40"}.ToRange()
	require.NoError(t, err)
	assert.Equal(t, models.Range{Sheet: "Staff", StartRow: 3, EndRow: 40, StartColumn: 2, EndColumn: "H"}, r)

	r, err = TableConfig{Name: "b", StartRow: 1, EndRow: 9, StartColumn: 2, EndColumn: "D"}.ToRange()
	require.NoError(t, err)
	assert.Equal(t, models.Range{StartRow: 1, EndRow: 9, StartColumn: 2, EndColumn: "D"}, r)

	_, err = TableConfig{Name: "c", StartRow: 1}.ToRange()
	assert.ErrorIs(t, err, exceldb.ErrMissingParameter)
}
