// processor.go - Script replay, filtering and output
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/lgbarn/quantum-chess-go/internal/config"
	"github.com/lgbarn/quantum-chess-go/internal/errors"
	"github.com/lgbarn/quantum-chess-go/internal/hashing"
	"github.com/lgbarn/quantum-chess-go/internal/output"
	"github.com/lgbarn/quantum-chess-go/internal/quantum"
	"github.com/lgbarn/quantum-chess-go/internal/script"
	"github.com/lgbarn/quantum-chess-go/internal/worker"
)

// ProcessingContext holds all processing state
type ProcessingContext struct {
	cfg       *config.Config
	log       zerolog.Logger
	detector  *hashing.ThreadSafeDuplicateDetector
	writer    output.ResultWriter
	dupWriter output.ResultWriter
}

// newProcessingContext builds writers and the duplicate detector from cfg.
func newProcessingContext(cfg *config.Config, log zerolog.Logger) *ProcessingContext {
	ctx := &ProcessingContext{
		cfg:    cfg,
		log:    log,
		writer: output.NewResultWriter(cfg.OutputFile, cfg),
	}
	dup := cfg.Duplicate
	if dup.Suppress || dup.SuppressOriginals || dup.DuplicateFile != nil {
		ctx.detector = hashing.NewThreadSafeDuplicateDetector(dup.ExactMatch, dup.MaxCapacity)
	}
	if dup.DuplicateFile != nil {
		ctx.dupWriter = output.NewResultWriter(dup.DuplicateFile, cfg)
	}
	return ctx
}

// Stats counts what happened to the replayed scripts.
type Stats struct {
	Total      int
	Output     int
	Duplicates int
	Rejected   int // commands rejected across all scripts
	Failed     int // scripts that could not be replayed
}

// gameOptions returns the options for the game replaying script index.
func gameOptions(cfg *config.Config, log zerolog.Logger, index int) []quantum.Option {
	opts := []quantum.Option{
		quantum.WithLogger(log),
		quantum.WithEpsilon(cfg.Engine.Epsilon),
	}
	if cfg.Engine.Seed != 0 {
		opts = append(opts, quantum.WithSeed(cfg.Engine.Seed+int64(index)))
	}
	return opts
}

// processScriptWorker replays one script in a worker goroutine and applies
// the output filters.
func processScriptWorker(item worker.WorkItem, ctx *ProcessingContext) worker.ProcessResult {
	s := item.Script
	if s.FEN == "" && ctx.cfg.Engine.StartFEN != "" {
		s.FEN = ctx.cfg.Engine.StartFEN
	}

	res, err := script.Run(s, ctx.log, gameOptions(ctx.cfg, ctx.log, item.Index)...)
	result := worker.ProcessResult{Index: item.Index, Result: res, Error: err}
	if res == nil {
		return result
	}
	result.Matched = applyFilters(res, err, ctx.cfg.Filter)
	result.ShouldOutput = result.Matched
	return result
}

// applyFilters reports whether a replayed game passes the output filters.
func applyFilters(res *script.Result, err error, f *config.FilterConfig) bool {
	if err != nil && !f.KeepBrokenGames {
		return false
	}
	g := res.Game
	ply := uint(g.Ply())
	if f.CheckPlyBounds {
		if ply < f.LowerPlyBound || (f.UpperPlyBound > 0 && ply > f.UpperPlyBound) {
			return false
		}
	}
	if f.MatchCheck || f.MatchCheckmate {
		status := g.CheckStatus(g.ToMove())
		if f.MatchCheckmate && status != quantum.StatusCheckmate {
			return false
		}
		if f.MatchCheck && status == quantum.StatusNone {
			return false
		}
	}
	if f.MatchSuperposed && !hasSuperposedPiece(g) {
		return false
	}
	return true
}

func hasSuperposedPiece(g *quantum.Game) bool {
	for _, p := range g.Pieces() {
		if !p.Definite() {
			return true
		}
	}
	return false
}

// processScripts replays scripts on the worker pool and writes the results
// in input order. Duplicate detection runs in input order too, so the first
// game reaching a state is the original regardless of worker timing.
func processScripts(scripts []*script.Script, ctx *ProcessingContext) Stats {
	processFunc := func(item worker.WorkItem) worker.ProcessResult {
		return processScriptWorker(item, ctx)
	}
	results := worker.RunAll(scripts, processFunc,
		worker.WithWorkers(ctx.cfg.Workers), worker.WithBufferSize(ctx.cfg.BufferSize))

	stats := Stats{Total: len(scripts)}
	for _, r := range results {
		if r.Result == nil {
			stats.Failed++
			reportScriptError(ctx, r)
			continue
		}
		stats.Rejected += r.Result.Rejected()
		if r.Error != nil {
			stats.Failed++
			reportScriptError(ctx, r)
		}
		if !r.ShouldOutput {
			continue
		}
		if limit := ctx.cfg.Filter.MaxMatches; limit > 0 && uint(stats.Output) >= limit {
			break
		}
		out, dup := handleResultOutput(r.Result, ctx)
		stats.Output += out
		stats.Duplicates += dup
	}

	closeWriter(ctx.writer)
	if ctx.dupWriter != nil {
		closeWriter(ctx.dupWriter)
	}
	return stats
}

// handleResultOutput handles duplicate detection and output.
// Returns (output count, duplicate count).
func handleResultOutput(res *script.Result, ctx *ProcessingContext) (int, int) {
	cfg := ctx.cfg
	if ctx.detector == nil {
		writeResult(ctx.writer, res)
		return 1, 0
	}

	if ctx.detector.CheckAndAdd(res.Game) {
		ctx.log.Info().Str("script", res.Script.Name).Msg("duplicate final state")
		if ctx.dupWriter != nil {
			writeResult(ctx.dupWriter, res)
		}
		if cfg.Duplicate.SuppressOriginals {
			writeResult(ctx.writer, res)
			return 1, 1
		}
		return 0, 1
	}

	if shouldOutputUnique(cfg) {
		writeResult(ctx.writer, res)
		return 1, 0
	}
	return 0, 0
}

// shouldOutputUnique returns true if unique (non-duplicate) games should be output.
func shouldOutputUnique(cfg *config.Config) bool {
	return !cfg.Duplicate.SuppressOriginals
}

func writeResult(w output.ResultWriter, res *script.Result) {
	if err := w.WriteResult(res); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", res.Script.Name, err)
	}
}

func closeWriter(w output.ResultWriter) {
	if err := w.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
	}
}

func reportScriptError(ctx *ProcessingContext, r worker.ProcessResult) {
	name := ""
	if r.Result != nil {
		name = r.Result.Script.Name
	}
	if errors.Is(r.Error, errors.ErrCorruptState) {
		ctx.log.Error().Err(r.Error).Str("script", name).Msg("replay stopped")
	}
	if ctx.cfg.Verbosity > 0 {
		fmt.Fprintf(ctx.cfg.LogFile, "%v\n", r.Error)
	}
}

// loadScript parses one script from r.
func loadScript(r io.Reader, name string) (*script.Script, error) {
	return script.Parse(r, name)
}
