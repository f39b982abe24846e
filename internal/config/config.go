// Package config loads the xlgrid binary's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/javajack/xlgrid"
)

// Config holds all xlgrid configuration.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Server  ServerConfig  `yaml:"server"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// GridConfig sets the dimensions of new grids.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// ServerConfig configures the browser surface.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	Heartbeat string `yaml:"heartbeat"` // SSE heartbeat interval, e.g. "30s"
}

// ExportConfig configures file exports.
type ExportConfig struct {
	Dir   string `yaml:"dir"`
	Quote bool   `yaml:"quote"` // RFC 4180 quoting instead of raw values
	Sheet string `yaml:"sheet"` // worksheet name for XLSX
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
	File   string `yaml:"file"`   // empty logs to stderr
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Rows: xlgrid.DefaultRows,
			Cols: xlgrid.DefaultCols,
		},
		Server: ServerConfig{
			Addr:      "localhost:8080",
			Heartbeat: "30s",
		},
		Export: ExportConfig{
			Dir:   ".",
			Sheet: "Sheet1",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return fmt.Errorf("grid dimensions %dx%d must be positive", c.Grid.Rows, c.Grid.Cols)
	}
	if _, err := c.HeartbeatInterval(); err != nil {
		return err
	}
	return nil
}

// HeartbeatInterval parses Server.Heartbeat.
func (c *Config) HeartbeatInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Server.Heartbeat)
	if err != nil {
		return 0, fmt.Errorf("invalid server.heartbeat %q: %w", c.Server.Heartbeat, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("server.heartbeat must be positive, got %s", d)
	}
	return d, nil
}

// ExportOptions translates the export section into library options.
func (c *Config) ExportOptions() []xlgrid.ExportOption {
	return []xlgrid.ExportOption{
		xlgrid.WithQuoting(c.Export.Quote),
		xlgrid.WithSheetName(c.Export.Sheet),
	}
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("XLGRID_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("XLGRID_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("XLGRID_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v, err := strconv.ParseBool(os.Getenv("XLGRID_EXPORT_QUOTE")); err == nil {
		c.Export.Quote = v
	}
}
