// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and DEXKEEPER_* env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageBadger = "badger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Storage selects the collection backend: memory or badger.
	Storage string `koanf:"storage"`

	// DataPath is the badger data directory.
	DataPath string `koanf:"data_path"`

	// RefdataDir optionally overrides the embedded species and move tables.
	RefdataDir string `koanf:"refdata_dir"`

	// CORSOrigins lists allowed browser origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitRPM caps requests per minute per client IP. Zero disables it.
	RateLimitRPM int `koanf:"rate_limit_rpm"`

	// MaxPageSize caps GET /collection?limit.
	MaxPageSize int `koanf:"max_page_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Addr:         ":9080",
		Storage:      StorageMemory,
		DataPath:     "./data/dexkeeper",
		CORSOrigins:  []string{"*"},
		RateLimitRPM: 600,
		MaxPageSize:  200,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.Storage {
	case StorageMemory:
	case StorageBadger:
		if strings.TrimSpace(c.DataPath) == "" {
			return fmt.Errorf("%w: data_path is required for badger storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage %q", ErrInvalidConfig, c.Storage)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.RateLimitRPM < 0 {
		return fmt.Errorf("%w: rate_limit_rpm must not be negative", ErrInvalidConfig)
	}
	if c.MaxPageSize <= 0 {
		return fmt.Errorf("%w: max_page_size must be positive", ErrInvalidConfig)
	}
	return nil
}
