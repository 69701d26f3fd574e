package quantum

import (
	"testing"

	"github.com/lgbarn/quantum-chess-go/internal/testutil"
)

func newTestGame(t *testing.T, fen string, draws ...float64) *Game {
	t.Helper()
	g, err := NewGameFromFEN(fen, WithRand(testutil.NewSequence(draws...)), WithID("test"))
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q) error: %v", fen, err)
	}
	return g
}

func mustSplit(t *testing.T, g *Game, id PieceID, t1, t2 string) *SplitResult {
	t.Helper()
	res, err := g.Split(id, sq(t1), sq(t2))
	if err != nil {
		t.Fatalf("Split(%s, %s, %s) error: %v", id, t1, t2, err)
	}
	return res
}

func mustMove(t *testing.T, g *Game, id PieceID, from, to string) *MoveOutcome {
	t.Helper()
	out, err := g.MakeMove(id, sq(from), sq(to))
	if err != nil {
		t.Fatalf("MakeMove(%s, %s, %s) error: %v", id, from, to, err)
	}
	return out
}

func setBranches(t *testing.T, g *Game, id PieceID, branches ...Branch) {
	t.Helper()
	if err := g.registry.SetBranches(id, branches); err != nil {
		t.Fatalf("SetBranches(%s) error: %v", id, err)
	}
}

func halves(id PieceID, first, second string) []Branch {
	root := RootLabel(id)
	return []Branch{
		{Label: root.Child(0), Square: sq(first), Weight: 0.5},
		{Label: root.Child(1), Square: sq(second), Weight: 0.5},
	}
}

// assertInvariants checks every piece's branch set and that every ledger
// record joins two live superposed branches.
func assertInvariants(t *testing.T, g *Game) {
	t.Helper()
	for _, id := range g.registry.IDs() {
		p, _ := g.registry.Piece(id)
		if err := g.registry.validate(id, p.Branches); err != nil {
			t.Fatalf("piece %s violates invariants: %v", id, err)
		}
	}
	for _, rec := range g.ledger.Records() {
		a, okA := g.registry.Piece(rec.A)
		b, okB := g.registry.Piece(rec.B)
		if !okA || !okB || a.Definite() || b.Definite() {
			t.Fatalf("record %s references a missing or definite piece", rec)
		}
		if !hasBranchUnder(a, rec.Prefix) || !hasBranchUnder(b, rec.Conflict) {
			t.Fatalf("record %s is stale", rec)
		}
	}
}

// entangledKnights builds the scenario of a knight split onto a square
// another superposed knight may occupy. wNe2 sits on c3 (wNe2A) or d4
// (wNe2B); wNb1 on a3 (wNb1A) or c3 (wNb1B); wNb1B is entangled with wNe2A.
func entangledKnights(t *testing.T, draws ...float64) *Game {
	t.Helper()
	g := newTestGame(t, "4k3/8/8/8/8/8/4N3/1N2K3 w - - 0 1", draws...)
	mustSplit(t, g, "wNe2", "c3", "d4")
	mustMove(t, g, "bKe8", "e8", "d8")
	res := mustSplit(t, g, "wNb1", "a3", "c3")
	testutil.AssertEqual(t, res.Entangled, []Record{{
		A:        "wNb1",
		B:        "wNe2",
		Prefix:   RootLabel("wNb1").Child(1),
		Conflict: RootLabel("wNe2").Child(0),
	}})
	return g
}
