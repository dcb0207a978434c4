package config

import (
	"github.com/tmsantos/bigdiff/pkg/ignore"
	"github.com/tmsantos/bigdiff/pkg/models"
)

// Config represents the application configuration
type Config struct {
	Diff    DiffConfig    `yaml:"diff"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Ignore  []string      `yaml:"ignore"`
}

// DiffConfig holds comparison-related settings
type DiffConfig struct {
	// NormalizeEOL rewrites CRLF and lone CR to LF before text diffs.
	NormalizeEOL bool `yaml:"normalize_eol"`
	// MaxTextSize is the human-readable text-diff size ceiling ("5MB").
	MaxTextSize string `yaml:"max_text_size"`
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format   string `yaml:"format"`   // "human" or "json"
	Progress bool   `yaml:"progress"` // Show the comparison progress bar
	Quiet    bool   `yaml:"quiet"`    // Suppress non-error output
}

// LoggingConfig holds run-log settings
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Format  string `yaml:"format"` // "json" or "text"
	Level   string `yaml:"level"`  // "debug", "info", "warn", "error"
	File    string `yaml:"file"`   // Log file path (empty = disabled)
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Diff: DiffConfig{
			NormalizeEOL: false,
			MaxTextSize:  "5MB",
		},
		Output: OutputConfig{
			Format:   "human",
			Progress: true,
			Quiet:    false,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Format:  "json",
			Level:   "info",
			File:    "",
		},
		Ignore: []string{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validFormats := map[string]bool{"human": true, "json": true}
	if !validFormats[c.Output.Format] {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be 'human' or 'json'",
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	// Invalid glob patterns are a configuration error, caught here rather
	// than mid-scan.
	if _, err := ignore.NewClassifier(c.Ignore); err != nil {
		return &models.ValidationError{
			Field:   "ignore",
			Message: err.Error(),
		}
	}

	return nil
}
