package quantum

import "fmt"

// Record correlates two pieces: while A lies under Prefix, B cannot lie
// under Conflict. Prefix is a label of A, Conflict a label of B, and both
// name the branches that met on one square.
type Record struct {
	A        PieceID
	B        PieceID
	Prefix   Label
	Conflict Label
}

func (r Record) String() string {
	return fmt.Sprintf("%s~%s", r.Prefix, r.Conflict)
}

// References reports whether the record mentions id.
func (r Record) References(id PieceID) bool {
	return r.A == id || r.B == id
}

// Ledger is the set of entanglement records, kept in insertion order.
type Ledger struct {
	records []Record
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add inserts rec. Adding a record that already exists is a no-op and
// returns false.
func (l *Ledger) Add(rec Record) bool {
	for _, existing := range l.records {
		if existing == rec {
			return false
		}
	}
	l.records = append(l.records, rec)
	return true
}

// Records returns a copy of all records.
func (l *Ledger) Records() []Record {
	return append([]Record(nil), l.records...)
}

// ForPiece returns the records that mention id.
func (l *Ledger) ForPiece(id PieceID) []Record {
	var out []Record
	for _, rec := range l.records {
		if rec.References(id) {
			out = append(out, rec)
		}
	}
	return out
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Delete removes rec if present.
func (l *Ledger) Delete(rec Record) {
	l.RemoveIf(func(r Record) bool { return r == rec })
}

// RemoveIf deletes every record for which drop returns true and reports
// how many were removed.
func (l *Ledger) RemoveIf(drop func(Record) bool) int {
	kept := l.records[:0]
	removed := 0
	for _, rec := range l.records {
		if drop(rec) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	l.records = kept
	return removed
}

// Clone returns a deep copy.
func (l *Ledger) Clone() *Ledger {
	return &Ledger{records: l.Records()}
}

func (l *Ledger) restore(from *Ledger) {
	l.records = from.Records()
}
