// Package worker replays independent command scripts in parallel. Games
// share no state, so each script runs on its own goroutine with its own
// game instance.
package worker

import (
	"sync"

	"github.com/lgbarn/quantum-chess-go/internal/script"
)

// WorkItem is a script waiting to be replayed.
type WorkItem struct {
	Script *script.Script
	Index  int // position in the input, for ordering results
}

// ProcessResult is a replayed script and its disposition.
type ProcessResult struct {
	Index        int
	Result       *script.Result // nil when the game could not be created
	Matched      bool           // passed the output filters
	ShouldOutput bool
	OutputToDup  bool // duplicate final state
	Error        error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers replaying scripts.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a worker pool. Defaults: 1 worker, buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	// Create channels after options are applied
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker replays items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		r := p.processFunc(item)
		r.Index = item.Index
		p.resultChan <- r
	}
}

// TrySubmit attempts to submit a work item without blocking.
// Returns false if the work channel is full.
func (p *Pool) TrySubmit(item WorkItem) bool {
	select {
	case p.workChan <- item:
		return true
	default:
		return false
	}
}

// Close closes the work channel and waits for all workers to finish.
// After calling Close, the result channel will be closed when all workers are done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// RunAll replays every script on a fresh pool built with opts and returns
// the results in input order. Submission and collection share the calling
// goroutine: while the work channel is full, one result is collected before
// the next submission is tried.
func RunAll(scripts []*script.Script, processFunc ProcessFunc, opts ...PoolOption) []ProcessResult {
	p := NewPool(processFunc, opts...)
	p.Start()

	results := make([]ProcessResult, len(scripts))
	for i, s := range scripts {
		item := WorkItem{Script: s, Index: i}
		for !p.TrySubmit(item) {
			r := <-p.resultChan
			results[r.Index] = r
		}
	}
	go p.Close()

	for r := range p.Results() {
		results[r.Index] = r
	}
	return results
}
