// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ShadowGrid Contributors

// Package config loads the service configuration. Layering, lowest to
// highest precedence: built-in defaults, a YAML config file (validated
// against the generated JSON Schema), command-line flags, and the
// DATABASE_URL environment variable.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/shadowgrid/shadowgrid/internal/world"
)

// Config is the root service configuration.
type Config struct {
	Database      DatabaseConfig      `koanf:"database" json:"database,omitempty"`
	Log           LogConfig           `koanf:"log" json:"log,omitempty"`
	Observability ObservabilityConfig `koanf:"observability" json:"observability,omitempty"`
	Generation    GenerationConfig    `koanf:"generation" json:"generation,omitempty"`
}

// DatabaseConfig configures the PostgreSQL connection.
type DatabaseConfig struct {
	// URL is the connection string. The DATABASE_URL environment variable
	// overrides it.
	URL string `koanf:"url" json:"url,omitempty"`
	// AutoMigrate runs pending schema migrations at startup.
	AutoMigrate bool `koanf:"auto_migrate" json:"auto_migrate,omitempty"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level" json:"level,omitempty"`
	// Format is text or json.
	Format string `koanf:"format" json:"format,omitempty"`
}

// ObservabilityConfig configures the metrics/health endpoint.
type ObservabilityConfig struct {
	Enabled bool   `koanf:"enabled" json:"enabled,omitempty"`
	Addr    string `koanf:"addr" json:"addr,omitempty"`
}

// GenerationConfig configures world generation defaults.
type GenerationConfig struct {
	// DefaultComplexity is used when the generate command gets no
	// --complexity flag. Must be within [1,5].
	DefaultComplexity int `koanf:"default_complexity" json:"default_complexity,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			AutoMigrate: false,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Observability: ObservabilityConfig{
			Enabled: false,
			Addr:    "localhost:9090",
		},
		Generation: GenerationConfig{
			DefaultComplexity: 3,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path, and the given flag set. Flags use dotted names matching the config
// keys, e.g. --log.level.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
		}
		if err := ValidateSchema(data); err != nil {
			return nil, oops.Code("CONFIG_INVALID").With("path", path).Wrap(err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").With("path", path).Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
		}
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("CONFIG_LOAD_FAILED").Wrap(err)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}

	// Unset override flags arrive as zero values; fall back to defaults.
	def := Default()
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.Observability.Addr == "" {
		cfg.Observability.Addr = def.Observability.Addr
	}
	if cfg.Generation.DefaultComplexity == 0 {
		cfg.Generation.DefaultComplexity = def.Generation.DefaultComplexity
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints the schema cannot express across layers.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return oops.Code("CONFIG_INVALID").
			With("log_level", c.Log.Level).
			Errorf("log level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return oops.Code("CONFIG_INVALID").
			With("log_format", c.Log.Format).
			Errorf("log format must be text or json")
	}
	if c.Generation.DefaultComplexity < world.MinComplexity || c.Generation.DefaultComplexity > world.MaxComplexity {
		return oops.Code("CONFIG_INVALID").
			With("default_complexity", c.Generation.DefaultComplexity).
			Errorf("default complexity must be between %d and %d", world.MinComplexity, world.MaxComplexity)
	}
	if c.Observability.Enabled && c.Observability.Addr == "" {
		return oops.Code("CONFIG_INVALID").
			Errorf("observability addr is required when enabled")
	}
	return nil
}
