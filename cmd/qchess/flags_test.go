package main

import (
	"testing"

	"github.com/lgbarn/quantum-chess-go/internal/config"
)

func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt64(ptr *int64, val int64) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestApplyEngineFlags(t *testing.T) {
	t.Run("given flags override the file", func(t *testing.T) {
		defer saveRestoreInt64(seed, 99)()
		defer saveRestoreString(startFEN, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")()
		cfg := config.NewConfig()
		cfg.Engine.Seed = 5
		applyEngineFlags(cfg, map[string]bool{"seed": true, "fen": true})
		if cfg.Engine.Seed != 99 {
			t.Errorf("Seed = %d; want 99", cfg.Engine.Seed)
		}
		if cfg.Engine.StartFEN != "4k3/8/8/8/8/8/8/4K3 w - - 0 1" {
			t.Errorf("StartFEN = %q", cfg.Engine.StartFEN)
		}
	})

	t.Run("unset flags keep file values", func(t *testing.T) {
		defer saveRestoreInt64(seed, 0)()
		cfg := config.NewConfig()
		cfg.Engine.Seed = 5
		applyEngineFlags(cfg, map[string]bool{})
		if cfg.Engine.Seed != 5 {
			t.Errorf("Seed = %d; want 5", cfg.Engine.Seed)
		}
	})
}

func TestApplyOutputFlags(t *testing.T) {
	defer saveRestoreBool(jsonOutput, true)()
	defer saveRestoreBool(noBoard, true)()
	defer saveRestoreBool(noProbabilities, true)()
	defer saveRestoreBool(showEntanglements, true)()
	defer saveRestoreInt(lineLength, 120)()

	cfg := config.NewConfig()
	applyOutputFlags(cfg, map[string]bool{"w": true})

	if cfg.Output.Format != config.JSONFormat {
		t.Errorf("Format = %v; want json", cfg.Output.Format)
	}
	if cfg.Output.MaxLineLength != 120 {
		t.Errorf("MaxLineLength = %d; want 120", cfg.Output.MaxLineLength)
	}
	if cfg.Output.ShowBoard || cfg.Output.ShowProbabilities {
		t.Errorf("board and probabilities should be off: %+v", cfg.Output)
	}
	if !cfg.Output.ShowEntanglements {
		t.Error("ShowEntanglements should be on")
	}
}

func TestApplyFilterFlags(t *testing.T) {
	tests := []struct {
		name      string
		min, max  int
		wantCheck bool
		wantLower uint
		wantUpper uint
	}{
		{"no bounds", 0, 0, false, 0, 0},
		{"lower only", 10, 0, true, 10, 0},
		{"both", 4, 8, true, 4, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreInt(minPly, tt.min)()
			defer saveRestoreInt(maxPly, tt.max)()
			cfg := config.NewConfig()
			applyFilterFlags(cfg, map[string]bool{})
			f := cfg.Filter
			if f.CheckPlyBounds != tt.wantCheck || f.LowerPlyBound != tt.wantLower || f.UpperPlyBound != tt.wantUpper {
				t.Errorf("filter = %+v", f)
			}
		})
	}

	t.Run("match flags", func(t *testing.T) {
		defer saveRestoreBool(checkmateFilter, true)()
		defer saveRestoreBool(superposedFilter, true)()
		defer saveRestoreInt(stopAfter, 3)()
		cfg := config.NewConfig()
		applyFilterFlags(cfg, map[string]bool{"stopafter": true})
		if !cfg.Filter.MatchCheckmate || !cfg.Filter.MatchSuperposed || cfg.Filter.MaxMatches != 3 {
			t.Errorf("filter = %+v", cfg.Filter)
		}
	})
}

func TestApplyDuplicateFlags(t *testing.T) {
	defer saveRestoreBool(suppressDuplicates, true)()
	defer saveRestoreBool(exactDuplicates, true)()
	defer saveRestoreInt(duplicateCapacity, 50)()

	cfg := config.NewConfig()
	applyDuplicateFlags(cfg, map[string]bool{"duplicate-capacity": true})
	if !cfg.Duplicate.Suppress || !cfg.Duplicate.ExactMatch || cfg.Duplicate.MaxCapacity != 50 {
		t.Errorf("duplicate = %+v", cfg.Duplicate)
	}
}

func TestApplyFlags(t *testing.T) {
	defer saveRestoreInt(workers, 6)()
	defer saveRestoreString(logLevel, "debug")()
	defer saveRestoreBool(logJSON, true)()
	defer saveRestoreBool(quiet, true)()

	cfg := config.NewConfig()
	applyFlags(cfg, map[string]bool{"j": true, "loglevel": true})
	if cfg.Workers != 6 || cfg.LogLevel != "debug" || cfg.LogFormat != "json" || cfg.Verbosity != 0 {
		t.Errorf("cfg = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
