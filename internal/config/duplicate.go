package config

import "io"

// DuplicateConfig holds settings for duplicate final-state detection.
type DuplicateConfig struct {
	// Suppress drops games whose final state was already written.
	Suppress bool `yaml:"suppress"`

	// SuppressOriginals writes only the duplicates.
	SuppressOriginals bool `yaml:"suppress_originals"`

	// ExactMatch also requires equal ply counts.
	ExactMatch bool `yaml:"exact_match"`

	// MaxCapacity bounds the number of stored states (0 = unlimited).
	MaxCapacity int `yaml:"max_capacity"`

	// DuplicateFile receives duplicate games when set.
	DuplicateFile io.Writer `yaml:"-"`
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{}
}
