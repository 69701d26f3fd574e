package quantum

import (
	"math/rand"
	"testing"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/errors"
	"github.com/lgbarn/quantum-chess-go/internal/rules"
	"github.com/lgbarn/quantum-chess-go/internal/testutil"
)

func TestNewGame(t *testing.T) {
	g := NewGame(WithID("fixed"))
	testutil.AssertEqual(t, g.ID(), "fixed")
	testutil.AssertEqual(t, len(g.Pieces()), 32)
	testutil.AssertEqual(t, g.ToMove(), chess.White)
	testutil.AssertEqual(t, g.FEN(), rules.InitialFEN)

	knight, err := g.Piece("wNb1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, knight.Kind, chess.Knight)
	testutil.AssertEqual(t, knight.Owner, chess.White)
	testutil.AssertTrue(t, knight.Definite())

	_, err = g.Piece("wNb2")
	testutil.AssertErrorIs(t, err, errors.ErrUnknownPiece)

	testutil.AssertTrue(t, NewGame().ID() != NewGame().ID(), "generated ids are unique")
}

func TestNewGameFromFEN_Invalid(t *testing.T) {
	_, err := NewGameFromFEN("not a fen")
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
}

func TestStartingID(t *testing.T) {
	testutil.AssertEqual(t, StartingID(chess.W(chess.Knight), sq("b1")), PieceID("wNb1"))
	testutil.AssertEqual(t, StartingID(chess.B(chess.Pawn), sq("e7")), PieceID("bPe7"))
}

func TestSnapshotAndOccupancy(t *testing.T) {
	g := newTestGame(t, rules.InitialFEN)
	mustSplit(t, g, "wNb1", "a3", "c3")

	testutil.AssertEqual(t, g.FEN(), "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/R1BQKBNR b - - 0 1")

	listing := g.Occupancy()
	testutil.AssertEqual(t, len(listing), 33)
	var a3, c3 *SquareOccupancy
	for i := range listing {
		switch listing[i].Square {
		case sq("a3"):
			a3 = &listing[i]
		case sq("c3"):
			c3 = &listing[i]
		}
	}
	if a3 == nil || c3 == nil {
		t.Fatal("split squares missing from occupancy listing")
	}
	testutil.AssertEqual(t, a3.Occupants, []Occupant{{Piece: "wNb1", Kind: chess.W(chess.Knight), Label: RootLabel("wNb1").Child(0), Weight: 0.5}})
	testutil.AssertEqual(t, c3.Occupants[0].Label.String(), "wNb1B")
	testutil.AssertEqual(t, listing[0].Square, sq("a1"))
}

func TestUndo(t *testing.T) {
	g := newTestGame(t, rules.InitialFEN, 0.1)
	mustSplit(t, g, "wNb1", "a3", "c3")
	mustMove(t, g, "bPe7", "e7", "e5")

	testutil.AssertNoError(t, g.Undo())
	testutil.AssertEqual(t, g.ToMove(), chess.Black)
	branches, _ := g.Branches("wNb1")
	testutil.AssertEqual(t, len(branches), 2)

	testutil.AssertNoError(t, g.Undo())
	testutil.AssertEqual(t, g.ToMove(), chess.White)
	testutil.AssertEqual(t, g.Ply(), 0)
	branches, _ = g.Branches("wNb1")
	testutil.AssertEqual(t, branches, []Branch{{Label: RootLabel("wNb1"), Square: sq("b1"), Weight: 1}})

	testutil.AssertErrorIs(t, g.Undo(), errors.ErrNothingToUndo)
}

func TestFailedOperationsAreNotRecorded(t *testing.T) {
	g := newTestGame(t, rules.InitialFEN)
	_, err := g.Split("wNb1", sq("a3"), sq("a3"))
	testutil.AssertErrorIs(t, err, errors.ErrIllegalSplit)
	testutil.AssertErrorIs(t, g.Undo(), errors.ErrNothingToUndo)
}

func TestNoOpMeasureIsNotRecorded(t *testing.T) {
	g := newTestGame(t, rules.InitialFEN)

	won, err := g.Measure("wNb1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, won, sq("b1"))
	testutil.AssertErrorIs(t, g.Undo(), errors.ErrNothingToUndo)

	mustSplit(t, g, "wNg1", "f3", "h3")
	_, err = g.Measure("wNb1")
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, g.Undo())
	branches, _ := g.Branches("wNg1")
	testutil.AssertEqual(t, branches, []Branch{{RootLabel("wNg1"), sq("g1"), 1}}, "undo reverts the split, not the no-op")
	testutil.AssertEqual(t, g.ToMove(), chess.White)
}

func TestCorruptStatePoisonsGame(t *testing.T) {
	g := newTestGame(t, "4k3/8/8/8/8/8/8/1N2K1N1 w - - 0 1", 0.1, 0.1)
	setBranches(t, g, "wNb1", halves("wNb1", "a3", "c3")...)
	setBranches(t, g, "wNg1", halves("wNg1", "f3", "h3")...)
	b1, g1 := RootLabel("wNb1"), RootLabel("wNg1")
	for _, prefix := range []Label{b1.Child(0), b1.Child(1)} {
		for _, conflict := range []Label{g1.Child(0), g1.Child(1)} {
			g.ledger.Add(Record{A: "wNb1", B: "wNg1", Prefix: prefix, Conflict: conflict})
		}
	}

	_, err := g.Measure("wNb1")
	testutil.AssertErrorIs(t, err, errors.ErrCorruptState)

	var moveErr *errors.MoveError
	testutil.AssertTrue(t, errors.As(err, &moveErr))
	testutil.AssertEqual(t, moveErr.Op, "measure")
	testutil.AssertEqual(t, moveErr.GameID, "test")

	testutil.AssertTrue(t, g.Corrupt())
	testutil.AssertEqual(t, g.Entanglements(), g.ledger.Records())
	testutil.AssertEqual(t, len(g.Entanglements()), 4, "ledger rolled back")
	branches, _ := g.Branches("wNb1")
	testutil.AssertEqual(t, branches, halves("wNb1", "a3", "c3"), "branches rolled back")

	_, err = g.MakeMove("wKe1", sq("e1"), sq("e2"))
	testutil.AssertErrorIs(t, err, errors.ErrCorruptState)
	_, err = g.Split("wKe1", sq("d1"), sq("f1"))
	testutil.AssertErrorIs(t, err, errors.ErrCorruptState)
	testutil.AssertErrorIs(t, g.Undo(), errors.ErrCorruptState)
}

func TestMeasureEmptyPieceIsCorrupt(t *testing.T) {
	g := newTestGame(t, "4k3/8/8/8/8/8/8/1N2K3 w - - 0 1")
	p, _ := g.registry.Piece("wNb1")
	p.Branches = nil

	_, err := g.Measure("wNb1")
	testutil.AssertErrorIs(t, err, errors.ErrCorruptState)
	testutil.AssertTrue(t, g.Corrupt())
}

// TestRandomPlayKeepsInvariants drives many random splits and moves and
// checks weight conservation, square uniqueness and ledger hygiene after
// every attempt, accepted or not.
func TestRandomPlayKeepsInvariants(t *testing.T) {
	oracle := rules.NewClassical()

	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := NewGame(WithSeed(seed*31), WithID("random"))

		for step := 0; step < 150 && !g.Corrupt(); step++ {
			side := g.ToMove()
			if _, ok := g.registry.King(side); !ok {
				break
			}

			var own []QuantumPiece
			for _, p := range g.Pieces() {
				if p.Owner == side {
					own = append(own, p)
				}
			}
			p := own[rng.Intn(len(own))]
			b := p.Branches[rng.Intn(len(p.Branches))]

			board := g.Snapshot()
			board.Set(b.Square, p.Coloured())
			dests := oracle.LegalDestinations(p.Coloured(), b.Square, board)
			if len(dests) == 0 {
				continue
			}

			if p.Definite() && len(dests) >= 2 && rng.Intn(2) == 0 {
				i := rng.Intn(len(dests))
				j := (i + 1 + rng.Intn(len(dests)-1)) % len(dests)
				_, _ = g.Split(p.ID, dests[i], dests[j])
			} else {
				_, _ = g.MakeMove(p.ID, b.Square, dests[rng.Intn(len(dests))])
			}
			assertInvariants(t, g)
		}
	}
}
