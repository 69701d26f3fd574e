// qchess replays quantum chess command scripts and reports the resulting
// superposed positions.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lgbarn/quantum-chess-go/internal/config"
	"github.com/lgbarn/quantum-chess-go/internal/script"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("qchess version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := loadConfig()
	applyFlags(cfg, setFlags())
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Set up logging and output files
	setupLogFile(cfg)
	setupOutputFile(cfg)
	setupDuplicateFile(cfg)

	log, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	scripts := loadScripts(flag.Args())
	ctx := newProcessingContext(cfg, log)
	log.Info().Int("scripts", len(scripts)).Int("workers", cfg.Workers).Msg("replay started")
	stats := processScripts(scripts, ctx)
	log.Info().Int("output", stats.Output).Int("duplicates", stats.Duplicates).Msg("replay finished")

	if cfg.Verbosity > 0 && !*quiet {
		reportStatistics(ctx, stats)
	}
	if stats.Failed > 0 {
		os.Exit(1)
	}
}

// loadConfig reads the -config file, or returns defaults.
func loadConfig() *config.Config {
	if *configFile == "" {
		return config.NewConfig()
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}

	var file *os.File
	var err error

	if *appendOutput {
		file, err = os.OpenFile(*outputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created output files
	} else {
		file, err = os.Create(*outputFile)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.OutputFile = file
}

// setupDuplicateFile configures the duplicate output file.
func setupDuplicateFile(cfg *config.Config) {
	if *duplicateFile == "" {
		return
	}

	file, err := os.Create(*duplicateFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating duplicate file %s: %v\n", *duplicateFile, err)
		os.Exit(1)
	}
	cfg.Duplicate.DuplicateFile = file
}

// loadScripts parses every named file, or stdin when there are none.
// Scripts that fail to parse are reported and skipped.
func loadScripts(args []string) []*script.Script {
	if len(args) == 0 {
		s, err := loadScript(os.Stdin, "stdin")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing stdin: %v\n", err)
			return nil
		}
		return []*script.Script{s}
	}

	var scripts []*script.Script
	for _, filename := range args {
		file, err := os.Open(filename) //nolint:gosec // G304: CLI tool opens user-specified files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening file %s: %v\n", filename, err)
			continue
		}
		s, err := loadScript(file, filename)
		file.Close() //nolint:errcheck,gosec // G104: read-only file
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %v\n", err)
			continue
		}
		scripts = append(scripts, s)
	}
	return scripts
}

// reportStatistics prints the final statistics to stderr.
func reportStatistics(ctx *ProcessingContext, stats Stats) {
	if ctx.detector != nil {
		fmt.Fprintf(os.Stderr, "%d game(s) output, %d duplicate(s) out of %d.\n",
			stats.Output, stats.Duplicates, stats.Total)
	} else {
		fmt.Fprintf(os.Stderr, "%d game(s) output out of %d.\n", stats.Output, stats.Total)
	}
	if stats.Rejected > 0 {
		fmt.Fprintf(os.Stderr, "%d command(s) rejected.\n", stats.Rejected)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: qchess [options] [script-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Replays quantum chess command scripts.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nScript commands:\n")
	fmt.Fprintf(os.Stderr, "  fen <fen>                   start position (first line only)\n")
	fmt.Fprintf(os.Stderr, "  split <piece> <sq> <sq>     split a definite piece\n")
	fmt.Fprintf(os.Stderr, "  move <piece> <from> <to>    declare and resolve a move\n")
	fmt.Fprintf(os.Stderr, "  measure <piece>             collapse a piece\n")
	fmt.Fprintf(os.Stderr, "  entangle <piece> <from> <sq>...\n")
	fmt.Fprintf(os.Stderr, "  status [w|b]                check status\n")
	fmt.Fprintf(os.Stderr, "  undo                        take back the last action\n")
	fmt.Fprintf(os.Stderr, "  show                        snapshot FEN and probabilities\n")
}
