package config

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/lgbarn/quantum-chess-go/internal/errors"
)

// NewLogger builds the logger described by LogLevel and LogFormat, writing
// to LogFile.
func (c *Config) NewLogger() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(errors.ErrInvalidConfig, "log level %q", c.LogLevel)
	}
	if level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}

	var w io.Writer = c.LogFile
	if w == nil {
		return zerolog.Nop(), nil
	}
	switch c.LogFormat {
	case "json":
	case "console", "":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	default:
		return zerolog.Nop(), errors.Wrapf(errors.ErrInvalidConfig, "log format %q", c.LogFormat)
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
