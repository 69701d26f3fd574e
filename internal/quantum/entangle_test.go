package quantum

import (
	"testing"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/errors"
	"github.com/lgbarn/quantum-chess-go/internal/testutil"
)

// superposedRookAndKnight leaves wRa1 on a1 or a2 and wNg1 on c3 or h3.
func superposedRookAndKnight(t *testing.T) *Game {
	t.Helper()
	g := newTestGame(t, "4k3/8/8/8/8/8/8/R3K1N1 w - - 0 1")
	setBranches(t, g, "wRa1", halves("wRa1", "a1", "a2")...)
	setBranches(t, g, "wNg1", halves("wNg1", "c3", "h3")...)
	return g
}

func TestAttemptEntangle(t *testing.T) {
	g := superposedRookAndKnight(t)

	got, err := g.AttemptEntangle("wRa1", sq("a1"), []chess.Square{sq("b2"), sq("c3")})
	testutil.AssertNoError(t, err)
	want := []Record{{
		A:        "wRa1",
		B:        "wNg1",
		Prefix:   RootLabel("wRa1").Child(0),
		Conflict: RootLabel("wNg1").Child(0),
	}}
	testutil.AssertEqual(t, got, want)
	testutil.AssertEqual(t, g.Entanglements(), want)
	testutil.AssertEqual(t, g.ToMove(), chess.White, "entangling does not pass the turn")

	t.Run("repeat creates nothing", func(t *testing.T) {
		again, err := g.AttemptEntangle("wRa1", sq("a1"), []chess.Square{sq("c3")})
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, len(again) == 0, "duplicate record returned: %v", again)
		testutil.AssertEqual(t, len(g.Entanglements()), 1)
	})
	assertInvariants(t, g)
}

// rookBehindKnight leaves a definite wRa1 whose way to d1 crosses c1, where
// bNg1 stands with weight onPath (otherwise on h3).
func rookBehindKnight(t *testing.T, onPath float64, draws ...float64) *Game {
	t.Helper()
	g := newTestGame(t, "4k3/8/8/8/8/8/8/R3K1n1 w - - 0 1", draws...)
	knight := RootLabel("bNg1")
	setBranches(t, g, "bNg1",
		Branch{knight.Child(0), sq("c1"), onPath},
		Branch{knight.Child(1), sq("h3"), 1 - onPath})
	return g
}

func TestEntangleMove(t *testing.T) {
	rook, knight := RootLabel("wRa1"), RootLabel("bNg1")
	g := rookBehindKnight(t, 0.25)

	res, err := g.EntangleMove("wRa1", sq("a1"), sq("d1"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, res.Blocker, PieceID("bNg1"))
	testutil.AssertEqual(t, res.Branches, []Branch{
		{rook.Child(0), sq("a1"), 0.25},
		{rook.Child(1), sq("d1"), 0.75},
	})
	testutil.AssertEqual(t, res.Entangled, []Record{
		{A: "wRa1", B: "bNg1", Prefix: rook.Child(1), Conflict: knight.Child(0)},
		{A: "wRa1", B: "bNg1", Prefix: rook.Child(0), Conflict: knight.Child(1)},
	})
	testutil.AssertEqual(t, g.ToMove(), chess.Black, "entangle move ends the turn")
	testutil.AssertEqual(t, g.Ply(), 1)
	testutil.AssertFalse(t, g.Snapshot().Occupied(sq("a1")), "superposed rook leaves the snapshot")
	assertInvariants(t, g)

	testutil.AssertNoError(t, g.Undo())
	branches, _ := g.Branches("wRa1")
	testutil.AssertEqual(t, branches, []Branch{{rook, sq("a1"), 1}})
	testutil.AssertEqual(t, len(g.Entanglements()), 0)
}

func TestEntangleMoveCollapse(t *testing.T) {
	rook, knight := RootLabel("wRa1"), RootLabel("bNg1")

	tests := []struct {
		name       string
		measure    PieceID
		draw       float64
		wantRook   Branch
		wantKnight Branch
	}{
		{"knight on the path keeps the rook home", "bNg1", 0.1, Branch{rook.Child(0), sq("a1"), 1}, Branch{knight.Child(0), sq("c1"), 1}},
		{"knight off the path lets the rook through", "bNg1", 0.9, Branch{rook.Child(1), sq("d1"), 1}, Branch{knight.Child(1), sq("h3"), 1}},
		{"rook found home puts the knight on the path", "wRa1", 0.1, Branch{rook.Child(0), sq("a1"), 1}, Branch{knight.Child(0), sq("c1"), 1}},
		{"rook found through clears the path", "wRa1", 0.9, Branch{rook.Child(1), sq("d1"), 1}, Branch{knight.Child(1), sq("h3"), 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := rookBehindKnight(t, 0.5, tt.draw)
			_, err := g.EntangleMove("wRa1", sq("a1"), sq("d1"))
			testutil.AssertNoError(t, err)

			_, err = g.Measure(tt.measure)
			testutil.AssertNoError(t, err)
			r, _ := g.Branches("wRa1")
			n, _ := g.Branches("bNg1")
			testutil.AssertEqual(t, r, []Branch{tt.wantRook})
			testutil.AssertEqual(t, n, []Branch{tt.wantKnight})
			testutil.AssertEqual(t, len(g.Entanglements()), 0)
			assertInvariants(t, g)
		})
	}
}

func TestAttemptEntangle_DefiniteMoverMovesThrough(t *testing.T) {
	g := rookBehindKnight(t, 0.5)

	got, err := g.AttemptEntangle("wRa1", sq("a1"), []chess.Square{sq("b1"), sq("c1"), sq("d1")})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(got), 2)
	testutil.AssertEqual(t, g.Entanglements(), got)
	testutil.AssertEqual(t, g.ToMove(), chess.Black)
	branches, _ := g.Branches("wRa1")
	testutil.AssertEqual(t, branches, halves("wRa1", "a1", "d1"))
}

func TestEntangleMove_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, g *Game)
		id       PieceID
		from, to string
	}{
		{"nothing on the path", nil, "wRa1", "a1", "a4"},
		{"destination holds a superposed piece", nil, "wRa1", "a1", "c1"},
		{"wrong side", nil, "bNg1", "c1", "e2"},
		{"mover is superposed", func(t *testing.T, g *Game) {
			setBranches(t, g, "wRa1", halves("wRa1", "a1", "a2")...)
		}, "wRa1", "a1", "d1"},
		{"two pieces on the path", func(t *testing.T, g *Game) {
			setBranches(t, g, "bKe8", halves("bKe8", "b1", "e8")...)
		}, "wRa1", "a1", "d1"},
		{"adjacent move has no path", nil, "wKe1", "e1", "d2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := rookBehindKnight(t, 0.5)
			if tt.setup != nil {
				tt.setup(t, g)
			}
			before := g.Pieces()

			_, err := g.EntangleMove(tt.id, sq(tt.from), sq(tt.to))
			testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
			testutil.AssertEqual(t, g.Pieces(), before, "rejected entangle move must not mutate")
			testutil.AssertEqual(t, g.ToMove(), chess.White)
			testutil.AssertTrue(t, len(g.Entanglements()) == 0)
			testutil.AssertErrorIs(t, g.Undo(), errors.ErrNothingToUndo)
		})
	}

	t.Run("explicit path must match the move", func(t *testing.T) {
		g := rookBehindKnight(t, 0.5)
		_, err := g.AttemptEntangle("wRa1", sq("a1"), []chess.Square{sq("b1"), sq("d1")})
		testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
		testutil.AssertEqual(t, g.ToMove(), chess.White)
	})
}

func TestAttemptEntangle_Rejected(t *testing.T) {
	tests := []struct {
		name string
		id   PieceID
		from string
		path []chess.Square
		want error
	}{
		{"unknown piece", "wQd1", "d1", nil, errors.ErrUnknownPiece},
		{"no branch on from", "wRa1", "a5", []chess.Square{sq("c3")}, errors.ErrIllegalMove},
		{"path blocked by a definite piece", "wRa1", "a1", []chess.Square{sq("e1")}, errors.ErrIllegalMove},
		{"off-board path square", "wRa1", "a1", []chess.Square{chess.NoSquare}, errors.ErrInvalidSquare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := superposedRookAndKnight(t)
			_, err := g.AttemptEntangle(tt.id, sq(tt.from), tt.path)
			testutil.AssertErrorIs(t, err, tt.want)

			var moveErr *errors.MoveError
			testutil.AssertTrue(t, errors.As(err, &moveErr), "error %v is not a MoveError", err)
			testutil.AssertEqual(t, moveErr.Op, "entangle")
			testutil.AssertTrue(t, len(g.Entanglements()) == 0, "rejected entangle left records")
			testutil.AssertFalse(t, g.Corrupt())
		})
	}
}
