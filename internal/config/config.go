// Package config holds mathcli configuration loaded from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all mathcli configuration.
type Config struct {
	// DataDir is where durable state lives (default ~/.mathcli).
	DataDir string `yaml:"data_dir"`

	// DatabasePath is the sqlite database file (default <data_dir>/mathcli.db).
	DatabasePath string `yaml:"database_path"`

	// Limits are the engine safety ceilings.
	Limits LimitsConfig `yaml:"limits"`

	// Logging configures the zap logger.
	Logging LoggingConfig `yaml:"logging"`
}

// LimitsConfig bounds operations that would otherwise loop or allocate
// without limit. These ceilings are the engine's only backpressure mechanism:
// there is no cancellation primitive, so no operation may run unbounded.
type LimitsConfig struct {
	// SeriesMax caps generated sequence length.
	SeriesMax int64 `yaml:"series_max"`

	// ODEMaxSteps caps ODE solver iterations.
	ODEMaxSteps int64 `yaml:"ode_max_steps"`

	// PrimeSearchCeiling bounds next_prime / nth_prime searches.
	PrimeSearchCeiling int64 `yaml:"prime_search_ceiling"`

	// FactorialMax bounds factorial input.
	FactorialMax int64 `yaml:"factorial_max"`

	// FibonacciMax bounds fibonacci index.
	FibonacciMax int64 `yaml:"fibonacci_max"`

	// MaxRecursionDepth bounds user-function call nesting.
	MaxRecursionDepth int `yaml:"max_recursion_depth"`
}

// LoggingConfig configures logging output.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dataDir := filepath.Join(home, ".mathcli")
	return &Config{
		DataDir:      dataDir,
		DatabasePath: filepath.Join(dataDir, "mathcli.db"),
		Limits:       DefaultLimits(),
		Logging:      LoggingConfig{Level: "info"},
	}
}

// DefaultLimits returns the documented safety ceilings.
func DefaultLimits() LimitsConfig {
	return LimitsConfig{
		SeriesMax:          10000,
		ODEMaxSteps:        1000,
		PrimeSearchCeiling: 1000000,
		FactorialMax:       170,
		FibonacciMax:       1000,
		MaxRecursionDepth:  64,
	}
}

// Load reads a YAML config file, filling unset fields from defaults and then
// applying environment overrides. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.fillDefaults()
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.DataDir, "mathcli.db")
	}
	dl := DefaultLimits()
	if c.Limits.SeriesMax <= 0 {
		c.Limits.SeriesMax = dl.SeriesMax
	}
	if c.Limits.ODEMaxSteps <= 0 {
		c.Limits.ODEMaxSteps = dl.ODEMaxSteps
	}
	if c.Limits.PrimeSearchCeiling <= 0 {
		c.Limits.PrimeSearchCeiling = dl.PrimeSearchCeiling
	}
	if c.Limits.FactorialMax <= 0 {
		c.Limits.FactorialMax = dl.FactorialMax
	}
	if c.Limits.FibonacciMax <= 0 {
		c.Limits.FibonacciMax = dl.FibonacciMax
	}
	if c.Limits.MaxRecursionDepth <= 0 {
		c.Limits.MaxRecursionDepth = dl.MaxRecursionDepth
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// applyEnvOverrides lets the environment win over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MATHCLI_DATA_DIR"); v != "" {
		c.DataDir = v
		c.DatabasePath = filepath.Join(v, "mathcli.db")
	}
	if v := os.Getenv("MATHCLI_DB_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("MATHCLI_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MATHCLI_SERIES_MAX"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.Limits.SeriesMax = n
		}
	}
}
