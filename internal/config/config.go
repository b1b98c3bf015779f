// Package config provides centralized configuration management for the extractor.
// It loads configuration from environment variables with defaults that reproduce
// the fixed-name behaviour, and validates all settings before any file is touched.
package config

import (
	"fmt"
	"time"
)

// Default file names of the Lynch et al. (2024) USGS data release and the GEP output.
const (
	DefaultInput  = "Rec fish food_20230509_for USGS data release.xlsx"
	DefaultOutput = "gep-subsistence-fisheries.csv"
)

// Config holds all application configuration.
type Config struct {
	Source   SourceConfig
	Output   OutputConfig
	Columns  ColumnConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// SourceConfig describes the spreadsheet to read.
type SourceConfig struct {
	// Path is the input workbook (or CSV export) path
	Path string `env:"TCUV_INPUT" default:"Rec fish food_20230509_for USGS data release.xlsx"`

	// Sheet is the worksheet to read; empty means the first sheet
	Sheet string `env:"TCUV_SHEET"`
}

// OutputConfig describes the delimited file to write.
type OutputConfig struct {
	Path string `env:"TCUV_OUTPUT" default:"gep-subsistence-fisheries.csv"`

	// Delimiter is the single field separator rune (default: ,)
	Delimiter rune `env:"TCUV_DELIMITER" default:","`
}

// ColumnConfig names the two projected columns.
type ColumnConfig struct {
	Key   string `env:"TCUV_KEY_COLUMN" default:"admin"`
	Value string `env:"TCUV_VALUE_COLUMN" default:"TCUV"`
}

// DatabaseConfig holds the optional PostgreSQL publish settings.
// Publishing is disabled while URL is empty.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// Table receives the cleaned rows (default: gep_subsistence_fisheries)
	Table string `env:"DB_TABLE" default:"gep_subsistence_fisheries"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"0"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// Timeout bounds the whole publish step (default: 1m)
	Timeout time.Duration `env:"DB_TIMEOUT" default:"1m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Enabled reports whether rows should be published to PostgreSQL.
func (c *DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// String returns a safe string representation of the config for logging.
// The database URL is masked.
func (c *Config) String() string {
	db := "disabled"
	if c.Database.Enabled() {
		db = fmt.Sprintf("{URL: [MASKED], Table: %q}", c.Database.Table)
	}
	return fmt.Sprintf("Config{Source: {Path: %q, Sheet: %q}, Output: {Path: %q, Delimiter: %q}, "+
		"Columns: {Key: %q, Value: %q}, Database: %s, Logging: {Level: %q, Format: %q}}",
		c.Source.Path, c.Source.Sheet, c.Output.Path, c.Output.Delimiter,
		c.Columns.Key, c.Columns.Value, db, c.Logging.Level, c.Logging.Format)
}
