// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/quantum-chess-go/internal/config"
)

var (
	// Configuration
	configFile = flag.String("config", "", "YAML configuration file (flags override its values)")
	seed       = flag.Int64("seed", 0, "Measurement seed; game i uses seed+i (0 = time based)")
	startFEN   = flag.String("fen", "", "Start position for scripts without a fen line")

	// Output options
	outputFile        = flag.String("o", "", "Output file (default: stdout)")
	appendOutput      = flag.Bool("a", false, "Append to output file instead of overwrite")
	lineLength        = flag.Int("w", 80, "Maximum line length of the move record")
	jsonOutput        = flag.Bool("J", false, "Output in JSON format")
	noBoard           = flag.Bool("noboard", false, "Don't draw the classical board")
	noProbabilities   = flag.Bool("noprobs", false, "Don't list branch probabilities")
	showEntanglements = flag.Bool("entanglements", false, "List entanglement records")
	showMeasurements  = flag.Bool("measurements", false, "List collapses caused by moves")

	// Duplicate detection
	suppressDuplicates = flag.Bool("D", false, "Suppress games ending in an already seen state")
	duplicateFile      = flag.String("d", "", "Output duplicates to this file")
	outputDupsOnly     = flag.Bool("U", false, "Output only duplicates (suppress unique games)")
	exactDuplicates    = flag.Bool("exactdups", false, "Duplicates must also have the same ply count")
	duplicateCapacity  = flag.Int("duplicate-capacity", 0, "Maximum duplicate hash table entries (0 = unlimited)")

	// Filtering options
	minPly           = flag.Int("minply", 0, "Minimum ply count")
	maxPly           = flag.Int("maxply", 0, "Maximum ply count (0 = no limit)")
	checkFilter      = flag.Bool("check", false, "Only output games ending with the side to move in check")
	checkmateFilter  = flag.Bool("checkmate", false, "Only output games ending in checkmate")
	superposedFilter = flag.Bool("superposed", false, "Only output games ending with a superposed piece")
	keepBroken       = flag.Bool("keepbroken", false, "Output games whose replay hit a corrupt state")
	stopAfter        = flag.Int("stopafter", 0, "Stop after outputting N games")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	logLevel  = flag.String("loglevel", "", "Log level: debug, info, warn, error")
	logJSON   = flag.Bool("logjson", false, "Write logs as JSON")

	// Other options
	quiet   = flag.Bool("s", false, "Silent mode (no game count)")
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")

	// Performance options
	workers = flag.Int("j", 0, "Number of scripts replayed in parallel (0 = from config)")
)

// setFlags returns the names of the flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFlags applies command-line flags over the configuration. Only flags
// that were given override values from the config file.
func applyFlags(cfg *config.Config, set map[string]bool) {
	applyEngineFlags(cfg, set)
	applyOutputFlags(cfg, set)
	applyFilterFlags(cfg, set)
	applyDuplicateFlags(cfg, set)

	if set["j"] && *workers > 0 {
		cfg.Workers = *workers
	}
	if set["loglevel"] {
		cfg.LogLevel = *logLevel
	}
	if *logJSON {
		cfg.LogFormat = "json"
	}
	if *quiet {
		cfg.Verbosity = 0
	}
}

// applyEngineFlags configures game construction.
func applyEngineFlags(cfg *config.Config, set map[string]bool) {
	if set["seed"] {
		cfg.Engine.Seed = *seed
	}
	if set["fen"] {
		cfg.Engine.StartFEN = *startFEN
	}
}

// applyOutputFlags configures output settings.
func applyOutputFlags(cfg *config.Config, set map[string]bool) {
	if *jsonOutput {
		cfg.Output.Format = config.JSONFormat
	}
	if set["w"] && *lineLength > 0 {
		cfg.Output.MaxLineLength = uint(*lineLength)
	}
	if *noBoard {
		cfg.Output.ShowBoard = false
	}
	if *noProbabilities {
		cfg.Output.ShowProbabilities = false
	}
	if *showEntanglements {
		cfg.Output.ShowEntanglements = true
	}
	if *showMeasurements {
		cfg.Output.ShowMeasurements = true
	}
}

// applyFilterFlags configures game filter settings.
func applyFilterFlags(cfg *config.Config, set map[string]bool) {
	if *minPly > 0 || *maxPly > 0 {
		cfg.Filter.CheckPlyBounds = true
		cfg.Filter.LowerPlyBound = uint(max(*minPly, 0))
		cfg.Filter.UpperPlyBound = uint(max(*maxPly, 0))
	}
	if *checkFilter {
		cfg.Filter.MatchCheck = true
	}
	if *checkmateFilter {
		cfg.Filter.MatchCheckmate = true
	}
	if *superposedFilter {
		cfg.Filter.MatchSuperposed = true
	}
	if *keepBroken {
		cfg.Filter.KeepBrokenGames = true
	}
	if set["stopafter"] && *stopAfter > 0 {
		cfg.Filter.MaxMatches = uint(*stopAfter)
	}
}

// applyDuplicateFlags configures duplicate detection settings.
func applyDuplicateFlags(cfg *config.Config, set map[string]bool) {
	if *suppressDuplicates {
		cfg.Duplicate.Suppress = true
	}
	if *outputDupsOnly {
		cfg.Duplicate.SuppressOriginals = true
	}
	if *exactDuplicates {
		cfg.Duplicate.ExactMatch = true
	}
	if set["duplicate-capacity"] {
		cfg.Duplicate.MaxCapacity = *duplicateCapacity
	}
}
