// Package config holds the settings of the quantum chess CLI: engine
// parameters, output, filtering, duplicate suppression and logging. Values
// come from defaults, an optional YAML file and command-line flags, in that
// order of precedence.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lgbarn/quantum-chess-go/internal/errors"
)

// EngineConfig holds the parameters of each game instance.
type EngineConfig struct {
	// Seed for the measurement generator. 0 means time based; a non-zero
	// seed makes every game reproducible.
	Seed int64 `yaml:"seed"`

	// Epsilon is the tolerance on branch weight sums.
	Epsilon float64 `yaml:"epsilon"`

	// StartFEN is the position scripts without a fen line start from.
	// Empty means the standard start.
	StartFEN string `yaml:"start_fen"`
}

// NewEngineConfig creates an EngineConfig with default values.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{Epsilon: 1e-9}
}

// Config holds all program configuration.
type Config struct {
	Engine    *EngineConfig    `yaml:"engine"`
	Output    *OutputConfig    `yaml:"output"`
	Filter    *FilterConfig    `yaml:"filter"`
	Duplicate *DuplicateConfig `yaml:"duplicate"`

	// Workers is the number of scripts replayed in parallel.
	Workers int `yaml:"workers"`
	// BufferSize is the worker pool channel size.
	BufferSize int `yaml:"buffer_size"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // console or json

	Verbosity int `yaml:"verbosity"` // 0=nothing, 1=summary, 2=running commentary

	// Output streams
	OutputFile io.Writer `yaml:"-"`
	LogFile    io.Writer `yaml:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Engine:     NewEngineConfig(),
		Output:     NewOutputConfig(),
		Filter:     NewFilterConfig(),
		Duplicate:  NewDuplicateConfig(),
		Workers:    1,
		BufferSize: 16,
		LogLevel:   "warn",
		LogFormat:  "console",
		Verbosity:  1,
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "%s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SetOutput sets the output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Engine == nil || c.Output == nil || c.Filter == nil || c.Duplicate == nil {
		return errors.Wrap(errors.ErrInvalidConfig, "missing section")
	}
	if c.Engine.Epsilon <= 0 || c.Engine.Epsilon >= 1e-3 {
		return errors.Wrapf(errors.ErrInvalidConfig, "epsilon %g out of range (0, 1e-3)", c.Engine.Epsilon)
	}
	if c.Workers < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "workers must be at least 1, got %d", c.Workers)
	}
	if c.BufferSize < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "buffer size must be at least 1, got %d", c.BufferSize)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown log format %q", c.LogFormat)
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	return c.Filter.Validate()
}
