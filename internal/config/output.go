package config

import "github.com/lgbarn/quantum-chess-go/internal/errors"

// OutputFormat selects how replayed games are written.
type OutputFormat string

const (
	TextFormat OutputFormat = "text"
	JSONFormat OutputFormat = "json"
)

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format is text or json.
	Format OutputFormat `yaml:"format"`

	// MaxLineLength wraps the text move record.
	MaxLineLength uint `yaml:"max_line_length"`

	// ShowBoard prints the classical board diagram after each game.
	ShowBoard bool `yaml:"show_board"`

	// ShowProbabilities lists every branch with its weight.
	ShowProbabilities bool `yaml:"show_probabilities"`

	// ShowEntanglements lists the ledger records.
	ShowEntanglements bool `yaml:"show_entanglements"`

	// ShowMeasurements lists every collapse a move caused.
	ShowMeasurements bool `yaml:"show_measurements"`
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:            TextFormat,
		MaxLineLength:     80,
		ShowBoard:         true,
		ShowProbabilities: true,
	}
}

// Validate checks the output settings.
func (o *OutputConfig) Validate() error {
	switch o.Format {
	case TextFormat, JSONFormat:
	default:
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown output format %q", o.Format)
	}
	return nil
}
