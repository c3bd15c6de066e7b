package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/gretago/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Paths are model files or directories of them.
	Paths []string

	LogFormat string
	LogLevel  string

	// Overrides of the model block. Nil keeps the file setting.
	Precision *string
	Cores     *int
	Compile   *bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one model path is required")
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	if cfg.Precision != nil {
		if _, err := config.ParsePrecision(*cfg.Precision); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// options applies the overrides on top of the file settings.
func (c *Config) options(base config.Options) config.Options {
	out := base
	if c.Precision != nil {
		out.Precision = config.Precision(*c.Precision)
	}
	if c.Cores != nil {
		out.CoreCount = *c.Cores
	}
	if c.Compile != nil {
		out.Compile = *c.Compile
	}
	return out
}
