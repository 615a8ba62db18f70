// Package config loads lexboard configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all lexboard configuration.
type Config struct {
	// DatabasePath is the SQLite file the importer writes and the
	// dashboard reads.
	DatabasePath string `yaml:"database_path"`

	// WorkbookPath is the legislation spreadsheet. When the file exists
	// the dashboard reads legislation from it directly; otherwise it
	// falls back to the database.
	WorkbookPath string `yaml:"workbook_path"`

	// ExportDir receives CSV and PDF exports.
	ExportDir string `yaml:"export_dir"`

	// WkhtmltopdfPath locates the external PDF renderer. If the binary
	// is missing, PDF export is disabled with a warning.
	WkhtmltopdfPath string `yaml:"wkhtmltopdf_path"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		DatabasePath:    "legal_data.db",
		WorkbookPath:    "laws_import.xlsx",
		ExportDir:       ".",
		WkhtmltopdfPath: "/usr/local/bin/wkhtmltopdf",
	}
}

// Load reads configuration from a YAML file, layering it over defaults and
// then applying environment overrides. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets environment variables win over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LEXBOARD_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("LEXBOARD_WORKBOOK"); v != "" {
		c.WorkbookPath = v
	}
	if v := os.Getenv("LEXBOARD_EXPORT_DIR"); v != "" {
		c.ExportDir = v
	}
	if v := os.Getenv("LEXBOARD_WKHTMLTOPDF"); v != "" {
		c.WkhtmltopdfPath = v
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.ExportDir == "" {
		return fmt.Errorf("export_dir is required")
	}
	return nil
}
