// Package config loads exceldb settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"github.com/ukaji3/exceldb-go/pkg/exceldb"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/models"
	"github.com/ukaji3/exceldb-go/pkg/exceldb/parser"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment variable, e.g. EXCELDB_LOGGING_LEVEL.
const EnvPrefix = "EXCELDB"

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Workbook WorkbookConfig `yaml:"workbook" envconfig:"WORKBOOK"`
	Merge    MergeConfig    `yaml:"merge" envconfig:"MERGE"`
	Tables   []TableConfig  `yaml:"tables" ignored:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// WorkbookConfig contains workbook loading configuration.
// Leaf fields stay untagged so envconfig never falls back to bare names like $PATH.
type WorkbookConfig struct {
	Path     string `yaml:"path"`
	Sheet    string `yaml:"sheet"`
	Password string `yaml:"password"`
	Cache    bool   `yaml:"cache"`
}

// MergeConfig contains document merge configuration
type MergeConfig struct {
	Template  string `yaml:"template"`
	OutputDir string `yaml:"output_dir" split_words:"true"`
	Prefix    string `yaml:"prefix"`
}

// TableConfig names a range to register as a table. Either Range
// ("B1:E20") or the individual coordinates must be given.
type TableConfig struct {
	Name        string `yaml:"name"`
	Sheet       string `yaml:"sheet"`
	Range       string `yaml:"range"`
	StartRow    int    `yaml:"start_row"`
	EndRow      int    `yaml:"end_row"`
	StartColumn int    `yaml:"start_column"`
	EndColumn   string `yaml:"end_column"`
}

// Defaults applied to fields left empty by both file and environment.
const (
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
	DefaultOutputDir   = "."
	DefaultPrefix      = "CDB"
	DefaultStartColumn = 2
)

// Load reads the YAML file at path (skipped when path is empty), then
// overlays environment variables, then fills defaults and validates.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		fileConfig, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = *fileConfig
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	if c.Merge.OutputDir == "" {
		c.Merge.OutputDir = DefaultOutputDir
	}
	if c.Merge.Prefix == "" {
		c.Merge.Prefix = DefaultPrefix
	}
	for i := range c.Tables {
		if c.Tables[i].Range == "" && c.Tables[i].StartColumn == 0 {
			c.Tables[i].StartColumn = DefaultStartColumn
		}
	}
}

// validate validates the configuration
func (c *Config) validate() error {
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging format %q: must be text or json", c.Logging.Format)
	}

	seen := make(map[string]bool, len(c.Tables))
	for i, t := range c.Tables {
		if err := exceldb.ValidateName(t.Name); err != nil {
			return fmt.Errorf("tables[%d]: %w", i, err)
		}
		if seen[t.Name] {
			return fmt.Errorf("tables[%d]: duplicate table name %q", i, t.Name)
		}
		seen[t.Name] = true
		if _, err := t.ToRange(); err != nil {
			return fmt.Errorf("tables[%d] %q: %w", i, t.Name, err)
		}
	}
	return nil
}

// ToRange converts the table entry into an extraction range.
func (t TableConfig) ToRange() (models.Range, error) {
	if t.Range != "" {
		r, err := parser.ParseRange(t.Range)
		if err != nil {
			return models.Range{}, err
		}
		if t.Sheet != "" {
			r.Sheet = t.Sheet
		}
		return r, nil
	}
	if t.StartRow == 0 || t.EndRow == 0 || t.EndColumn == "" {
		return models.Range{}, fmt.Errorf("%w: range or start_row, end_row and end_column required", exceldb.ErrMissingParameter)
	}
	return models.Range{
		Sheet:       t.Sheet,
		StartRow:    t.StartRow,
		EndRow:      t.EndRow,
		StartColumn: t.StartColumn,
		EndColumn:   t.EndColumn,
	}, nil
}

// LoadOptions returns workbook load options for the configuration.
func (c *Config) LoadOptions() exceldb.Options {
	return exceldb.Options{Password: c.Workbook.Password}
}

// ConfigureLogging applies the logging settings to the standard logrus logger.
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		level = log.WarnLevel
	}
	log.SetLevel(level)
	if strings.EqualFold(c.Logging.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{})
	}
	log.SetOutput(os.Stderr)
}
