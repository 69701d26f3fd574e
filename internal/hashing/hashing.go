// Package hashing fingerprints quantum game states and detects games that
// end in the same state.
package hashing

import (
	"github.com/lgbarn/quantum-chess-go/internal/quantum"
)

// Signature identifies a game's final state.
type Signature struct {
	// Hash covers every branch with its weight and the side to move.
	Hash uint64
	// Ledger covers the entanglement records.
	Ledger uint64
	// Ply is the number of turns played.
	Ply int
	// WeakHash covers only the classical snapshot.
	WeakHash HashCode
}

// Sign computes the signature of a game.
func Sign(g *quantum.Game) Signature {
	return Signature{
		Hash:     StateHash(g.Pieces(), g.ToMove()),
		Ledger:   LedgerHash(g.Entanglements()),
		Ply:      g.Ply(),
		WeakHash: WeakHash(g.Snapshot()),
	}
}

// DuplicateDetector tracks seen final states.
type DuplicateDetector struct {
	hashTable map[uint64][]Signature
	// useExactMatch also requires equal ply counts
	useExactMatch  bool
	maxCapacity    int
	duplicateCount int
	size           int
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]Signature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// CheckAndAdd checks whether the game's final state was seen before and
// records it. Returns true for a duplicate. Once full, new states are still
// checked but no longer stored.
func (d *DuplicateDetector) CheckAndAdd(g *quantum.Game) bool {
	return d.CheckAndAddSignature(Sign(g))
}

// CheckAndAddSignature is CheckAndAdd for a precomputed signature.
func (d *DuplicateDetector) CheckAndAddSignature(sig Signature) bool {
	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}
	if d.IsFull() {
		return false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.size++
	return false
}

func (d *DuplicateDetector) signaturesMatch(a, b Signature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash || a.Ledger != b.Ledger {
		return false
	}
	if d.useExactMatch && a.Ply != b.Ply {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of stored states.
func (d *DuplicateDetector) UniqueCount() int {
	return d.size
}

// IsFull reports whether the capacity limit has been reached.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.size >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]Signature)
	d.duplicateCount = 0
	d.size = 0
}
