package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"levelkit/curve"
)

// Config holds the complete tool configuration. Values are resolved in
// order: defaults, then an optional config file, then environment
// variables.
type Config struct {
	// Curve holds the calibration constraints the table is built from.
	Curve curve.Constraints `json:"curve" yaml:"curve"`

	// AnchorTolerance relaxes the table's anchor self-check, in whole
	// levels. Zero demands the anchor hold exactly.
	AnchorTolerance int `json:"anchor_tolerance" yaml:"anchor_tolerance" env:"LEVELKIT_ANCHOR_TOLERANCE"`

	// Output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// SQL script generation
	SQL SQLConfig `json:"sql" yaml:"sql"`

	// Chart rendering
	Chart ChartConfig `json:"chart" yaml:"chart"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// OutputConfig holds artifact output locations.
type OutputConfig struct {
	Dir string `json:"dir" yaml:"dir" env:"LEVELKIT_OUTPUT_DIR"`
}

// ChartsDir returns the chart output directory under the output root.
func (o OutputConfig) ChartsDir() string { return filepath.Join(o.Dir, "charts") }

// ReportsDir returns the report output directory under the output root.
func (o OutputConfig) ReportsDir() string { return filepath.Join(o.Dir, "reports") }

// SQLDir returns the SQL script output directory under the output root.
func (o OutputConfig) SQLDir() string { return filepath.Join(o.Dir, "sql") }

// SQLConfig holds SQL script generation configuration.
type SQLConfig struct {
	TableName string `json:"table_name" yaml:"table_name" env:"LEVELKIT_SQL_TABLE"`
}

// ChartConfig holds chart rendering configuration.
type ChartConfig struct {
	Width  int `json:"width" yaml:"width" env:"LEVELKIT_CHART_WIDTH"`
	Height int `json:"height" yaml:"height" env:"LEVELKIT_CHART_HEIGHT"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level" env:"LEVELKIT_LOG_LEVEL"`
	Format string `json:"format" yaml:"format" env:"LEVELKIT_LOG_FORMAT"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Curve:           curve.DefaultConstraints(),
		AnchorTolerance: 0,
		Output: OutputConfig{
			Dir: "output",
		},
		SQL: SQLConfig{
			TableName: "users",
		},
		Chart: ChartConfig{
			Width:  1280,
			Height: 800,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a JSON or YAML file, chosen by
// extension. Environment variables override file values.
func LoadFromFile(path string) (*Config, error) {
	if err := validateConfigPath(path); err != nil {
		return nil, fmt.Errorf("invalid config file path: %w", err)
	}

	data, err := os.ReadFile(path) // #nosec G304 - Path validated above
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// validateConfigPath validates that the config file path is usable.
func validateConfigPath(path string) error {
	if path == "" {
		return errors.New("config file path cannot be empty")
	}

	switch strings.ToLower(filepath.Ext(filepath.Clean(path))) {
	case ".json", ".yaml", ".yml":
	default:
		return errors.New("config file must have a .json, .yaml or .yml extension")
	}

	if _, err := os.Stat(filepath.Clean(path)); err != nil {
		return fmt.Errorf("config file not accessible: %w", err)
	}
	return nil
}

// Validate validates the configuration and returns detailed error messages.
func (c *Config) Validate() error {
	var errs []string

	if err := c.Curve.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("curve config: %v", err))
	}
	if c.AnchorTolerance < 0 {
		errs = append(errs, "anchor_tolerance must not be negative")
	}
	if err := c.Output.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("output config: %v", err))
	}
	if err := c.SQL.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("sql config: %v", err))
	}
	if err := c.Chart.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("chart config: %v", err))
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Validate validates output settings.
func (o OutputConfig) Validate() error {
	if strings.TrimSpace(o.Dir) == "" {
		return errors.New("dir cannot be empty")
	}
	return nil
}

// Validate validates SQL generation settings. The table name is templated
// into generated scripts, so only a conservative identifier charset is
// accepted.
func (s SQLConfig) Validate() error {
	name := strings.TrimSpace(s.TableName)
	if name == "" {
		return errors.New("table_name cannot be empty")
	}
	for _, r := range name {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			continue
		}
		return fmt.Errorf("table_name %q contains invalid character %q", name, r)
	}
	return nil
}

// Validate validates chart settings.
func (c ChartConfig) Validate() error {
	var errs []string
	if c.Width <= 0 {
		errs = append(errs, "width must be positive")
	}
	if c.Height <= 0 {
		errs = append(errs, "height must be positive")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Validate validates logging settings.
func (l LoggingConfig) Validate() error {
	var errs []string
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("unknown log level %q", l.Level))
	}
	switch l.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("unknown log format %q", l.Format))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// String returns a JSON representation of the config.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
