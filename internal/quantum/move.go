package quantum

import (
	"fmt"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/errors"
)

// Declaration is the capture classification a move is locked into before
// any measurement.
type Declaration int

const (
	NonCapture Declaration = iota
	Capture
)

func (d Declaration) String() string {
	if d == Capture {
		return "capture"
	}
	return "non-capture"
}

// MoveOutcome describes a resolved move attempt.
type MoveOutcome struct {
	Piece     PieceID
	From      chess.Square
	To        chess.Square
	Declared  Declaration
	Succeeded bool
	// Reason explains a failed attempt.
	Reason   string
	Captured PieceID
	Promoted bool
	// Changed lists every piece whose branches changed, ordered by id.
	Changed      []PieceID
	Measurements []Measurement
	// Status is the check status of the side now to move.
	Status Status
}

// MakeMove declares, resolves and applies a move. Validation failures return
// ErrIllegalMove and change nothing. Once declared, the attempt consumes
// the turn even if measurement makes it fail; the outcome then has
// Succeeded false and all collapses stay in force.
func (g *Game) MakeMove(id PieceID, from, to chess.Square) (*MoveOutcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var out *MoveOutcome
	err := g.atomically(func() (bool, error) {
		var err error
		out, err = g.makeMove(id, from, to)
		return true, err
	})
	if err != nil {
		return nil, g.wrap(err, "move", id, from, to.String())
	}
	return out, nil
}

func (g *Game) makeMove(id PieceID, from, to chess.Square) (*MoveOutcome, error) {
	p, ok := g.registry.Piece(id)
	if !ok {
		return nil, fmt.Errorf("%w: %w", errors.ErrIllegalMove, errors.ErrUnknownPiece)
	}
	if p.Owner != g.toMove {
		return nil, errors.Wrapf(errors.ErrIllegalMove, "%s to move", g.toMove)
	}
	if !from.Valid() || !to.Valid() || from == to {
		return nil, errors.Wrapf(errors.ErrIllegalMove, "bad squares %s-%s", from, to)
	}
	if _, ok := p.BranchAt(from); !ok {
		return nil, errors.Wrapf(errors.ErrIllegalMove, "%s has no branch on %s", id, from)
	}

	declared, err := g.declare(p, from, to)
	if err != nil {
		return nil, err
	}

	t := newTx()
	out := &MoveOutcome{Piece: id, From: from, To: to, Declared: declared}
	if err := g.resolve(p, out, t); err != nil {
		return nil, err
	}

	g.endTurn()
	out.Changed = t.changedIDs()
	out.Measurements = t.measurements
	out.Status = g.checkStatus(g.toMove)

	g.log.Debug().Str("game", g.id).Str("piece", string(id)).Str("from", from.String()).
		Str("to", to.String()).Stringer("declared", declared).Bool("succeeded", out.Succeeded).
		Str("reason", out.Reason).Str("captured", string(out.Captured)).Msg("move")
	return out, nil
}

// declare classifies the move from pre-measurement information only. A move
// onto a classical enemy, or onto a superposed enemy it could legally
// capture, is a Capture.
func (g *Game) declare(p *QuantumPiece, from, to chess.Square) (Declaration, error) {
	board := g.snapshot()
	mover := p.Coloured()

	if occupant, ok := g.registry.ClassicalOccupant(to); ok {
		if occupant.Owner == p.Owner {
			return NonCapture, errors.Wrapf(errors.ErrIllegalMove, "%s holds own piece", to)
		}
		if contains(g.oracle.LegalDestinations(mover, from, board), to) {
			return Capture, nil
		}
		return NonCapture, errors.Wrapf(errors.ErrIllegalMove, "%s cannot reach %s", p.ID, to)
	}

	for _, pl := range g.registry.FindPieceAt(to) {
		if pl.Piece.Owner == p.Owner || pl.Piece.ID == p.ID {
			continue
		}
		phantom := board.Copy()
		phantom.Set(to, pl.Piece.Coloured())
		if contains(g.oracle.LegalDestinations(mover, from, phantom), to) {
			return Capture, nil
		}
	}

	if contains(g.oracle.LegalDestinations(mover, from, board), to) {
		return NonCapture, nil
	}
	return NonCapture, errors.Wrapf(errors.ErrIllegalMove, "%s cannot reach %s", p.ID, to)
}

// resolve measures the mover, then anything on its path, then anything on
// the destination, and checks the locked declaration against the result.
func (g *Game) resolve(p *QuantumPiece, out *MoveOutcome, t *tx) error {
	from, to := out.From, out.To

	if !p.Definite() {
		sq, err := g.measure(p.ID, t)
		if err != nil {
			return err
		}
		if sq != from {
			out.Reason = fmt.Sprintf("%s collapsed to %s", p.ID, sq)
			return nil
		}
	}

	for _, sq := range g.oracle.PathSquares(from, to) {
		blocker, err := g.measureSquare(sq, p.ID, t)
		if err != nil {
			return err
		}
		if blocker != nil {
			out.Reason = fmt.Sprintf("path blocked by %s on %s", blocker.ID, sq)
			return nil
		}
	}

	occupant, err := g.measureSquare(to, p.ID, t)
	if err != nil {
		return err
	}
	occupied := occupant != nil
	switch {
	case out.Declared == NonCapture && occupied:
		out.Reason = fmt.Sprintf("%s is occupied by %s", to, occupant.ID)
		return nil
	case out.Declared == Capture && (!occupied || occupant.Owner == p.Owner):
		out.Reason = fmt.Sprintf("no enemy on %s to capture", to)
		return nil
	}

	if occupied {
		out.Captured = occupant.ID
		g.registry.Remove(occupant.ID)
		g.ledger.RemoveIf(func(rec Record) bool { return rec.References(occupant.ID) })
		t.touch(occupant.ID)
	}

	branch := p.Branches[0]
	branch.Square = to
	if err := g.registry.SetBranches(p.ID, []Branch{branch}); err != nil {
		return errors.Wrapf(errors.ErrCorruptState, "moving %s: %v", p.ID, err)
	}
	if p.Kind == chess.Pawn && to.Rank == lastRank(p.Owner) {
		p.Kind = chess.Queen
		out.Promoted = true
	}
	t.touch(p.ID)
	out.Succeeded = true
	return nil
}

// measureSquare measures the other pieces with a branch on sq, in id order,
// until one turns out to be there, and returns that piece.
func (g *Game) measureSquare(sq chess.Square, mover PieceID, t *tx) (*QuantumPiece, error) {
	for _, pl := range g.registry.FindPieceAt(sq) {
		if pl.Piece.ID == mover {
			continue
		}
		if _, still := pl.Piece.BranchAt(sq); !still {
			continue
		}
		landed, err := g.measure(pl.Piece.ID, t)
		if err != nil {
			return nil, err
		}
		if landed == sq {
			return pl.Piece, nil
		}
	}
	return nil, nil
}

func lastRank(colour chess.Colour) chess.Rank {
	if colour == chess.White {
		return chess.LastRank
	}
	return chess.FirstRank
}
