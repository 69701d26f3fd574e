package config

import (
	"fmt"

	"github.com/lgbarn/quantum-chess-go/internal/errors"
)

// FilterConfig selects which replayed games are written.
type FilterConfig struct {
	// Ply bounds on the finished game (0 upper bound means no limit)
	CheckPlyBounds bool `yaml:"check_ply_bounds"`
	LowerPlyBound  uint `yaml:"lower_ply_bound"`
	UpperPlyBound  uint `yaml:"upper_ply_bound"`

	// Match conditions on the side to move at the end
	MatchCheck     bool `yaml:"match_check"`
	MatchCheckmate bool `yaml:"match_checkmate"`

	// MatchSuperposed keeps games ending with at least one superposed piece.
	MatchSuperposed bool `yaml:"match_superposed"`

	// KeepBrokenGames writes games whose replay ended in a corrupt state.
	KeepBrokenGames bool `yaml:"keep_broken_games"`

	// MaxMatches stops after this many games are written (0 = unlimited).
	MaxMatches uint `yaml:"max_matches"`
}

// NewFilterConfig creates a FilterConfig with default values.
// All fields use Go zero values (false, 0) - filters are disabled by default.
func NewFilterConfig() *FilterConfig {
	return &FilterConfig{}
}

// Validate checks that the filter configuration is valid.
func (f *FilterConfig) Validate() error {
	if f.CheckPlyBounds && f.UpperPlyBound > 0 && f.LowerPlyBound > f.UpperPlyBound {
		return fmt.Errorf("lower ply bound (%d) > upper ply bound (%d): %w",
			f.LowerPlyBound, f.UpperPlyBound, errors.ErrInvalidConfig)
	}
	return nil
}
