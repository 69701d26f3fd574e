package hashing

import (
	"sync"

	"github.com/lgbarn/quantum-chess-go/internal/quantum"
)

// ThreadSafeDuplicateDetector wraps DuplicateDetector with mutex protection
// so worker goroutines can share one detector.
type ThreadSafeDuplicateDetector struct {
	detector *DuplicateDetector
	mu       sync.RWMutex
}

// NewThreadSafeDuplicateDetector creates a new thread-safe detector.
// maxCapacity of 0 means unlimited capacity.
func NewThreadSafeDuplicateDetector(exactMatch bool, maxCapacity int) *ThreadSafeDuplicateDetector {
	return &ThreadSafeDuplicateDetector{
		detector: NewDuplicateDetector(exactMatch, maxCapacity),
	}
}

// CheckAndAdd atomically checks whether the game's state is a duplicate and
// records it. The signature is computed outside the lock.
func (d *ThreadSafeDuplicateDetector) CheckAndAdd(g *quantum.Game) bool {
	sig := Sign(g)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detector.CheckAndAddSignature(sig)
}

// DuplicateCount returns the number of duplicates detected.
func (d *ThreadSafeDuplicateDetector) DuplicateCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.DuplicateCount()
}

// UniqueCount returns the number of unique states.
func (d *ThreadSafeDuplicateDetector) UniqueCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.UniqueCount()
}

// IsFull returns true if the detector has reached its capacity limit.
func (d *ThreadSafeDuplicateDetector) IsFull() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.detector.IsFull()
}
