// Package config provides configuration loading for the patrol tool.
package config

import (
	"fmt"
	"runtime"

	"github.com/Garsondee/guard-patrol/internal/logging"
)

// Config is the complete tool configuration.
type Config struct {
	Scan    ScanConfig    `koanf:"scan"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// ScanConfig controls the obstruction scan.
type ScanConfig struct {
	// Workers is the number of parallel trials; 0 means one per CPU.
	Workers     int  `koanf:"workers"`
	PruneToPath bool `koanf:"prune_to_path"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`

	// Caller annotates each entry with the calling file and line.
	Caller bool `koanf:"caller"`

	// Fields are extra static fields added to every entry.
	Fields map[string]string `koanf:"fields"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// File is where metrics are written after a run. Empty disables export.
	File string `koanf:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Workers: runtime.GOMAXPROCS(0),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// applyDefaults fills zero values left by the file and environment.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = def.Scan.Workers
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}

// Validate checks config for errors.
func (c *Config) Validate() error {
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must be >= 0, got %d", c.Scan.Workers)
	}
	if _, err := logging.LevelFromString(c.Log.Level); err != nil {
		return fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be 'json' or 'console', got %q", c.Log.Format)
	}
	return nil
}

// Logging converts the log section into a logging.Config.
func (c *Config) Logging() (*logging.Config, error) {
	level, err := logging.LevelFromString(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	lc := logging.NewDefaultConfig()
	lc.Level = level
	lc.Format = c.Log.Format
	lc.Caller = c.Log.Caller
	for k, v := range c.Log.Fields {
		lc.Fields[k] = v
	}
	if err := lc.Validate(); err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	return lc, nil
}
