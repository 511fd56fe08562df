// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	DBPath   string        `toml:"db_path"`
	LogLevel string        `toml:"log_level"`
	Indexer  IndexerConfig `toml:"indexer"`
}

// IndexerConfig holds indexing settings.
type IndexerConfig struct {
	Workers   int `toml:"workers"`
	BatchSize int `toml:"batch_size"`
}

// WorkersOrDefault returns the configured worker count or 0 (auto) if unset.
func (i IndexerConfig) WorkersOrDefault() int {
	if i.Workers < 0 {
		return 0
	}
	return i.Workers
}

// BatchSizeOrDefault returns the configured batch size or 20 if unset.
func (i IndexerConfig) BatchSizeOrDefault() int {
	if i.BatchSize <= 0 {
		return 20
	}
	return i.BatchSize
}

// LogLevelOrDefault returns the configured log level or "info" if unset.
func (c *Config) LogLevelOrDefault() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// Load reads configuration from a TOML file and applies environment variable
// overrides. A missing path yields defaults with overrides applied.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	switch c.LogLevelOrDefault() {
	case "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level=%q must be one of trace, debug, info, warn, error", c.LogLevel))
	}

	if c.Indexer.Workers < 0 {
		errs = append(errs, fmt.Errorf("indexer.workers=%d must not be negative", c.Indexer.Workers))
	}

	if c.Indexer.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("indexer.batch_size=%d must not be negative", c.Indexer.BatchSize))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"MIBCONTEXT_DB_PATH", func(v string) {
			if v != "" {
				cfg.DBPath = v
			}
		}},
		{"MIBCONTEXT_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.LogLevel = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the mibcontext data directory (~/.mibcontext).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mibcontext"), nil
}
