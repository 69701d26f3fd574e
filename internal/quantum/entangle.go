package quantum

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/errors"
)

// EntangleResult describes an accepted entangle move.
type EntangleResult struct {
	Piece PieceID
	// Blocker is the superposed piece the mover passed through.
	Blocker   PieceID
	Branches  []Branch
	Entangled []Record
	// Status is the check status of the side now to move.
	Status Status
}

// AttemptEntangle is the explicit entangle action. For a superposed mover it
// records the interaction of the branch on from with every superposed piece
// lying on path, and the turn does not pass. For a definite mover the last
// square of path is the destination, the rest must be the squares the move
// crosses, and the piece makes an entangle move as in EntangleMove.
func (g *Game) AttemptEntangle(id PieceID, from chess.Square, path []chess.Square) ([]Record, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var created []Record
	err := g.atomically(func() (bool, error) {
		p, ok := g.registry.Piece(id)
		if !ok {
			return false, fmt.Errorf("%w: %w", errors.ErrIllegalMove, errors.ErrUnknownPiece)
		}
		if p.Definite() {
			if len(path) == 0 {
				return false, errors.Wrap(errors.ErrIllegalMove, "no destination")
			}
			to := path[len(path)-1]
			if !slices.Equal(path[:len(path)-1], g.oracle.PathSquares(from, to)) {
				return false, errors.Wrapf(errors.ErrIllegalMove, "path does not lead from %s to %s", from, to)
			}
			res, err := g.entangleMove(id, from, to)
			if err != nil {
				return false, err
			}
			created = res.Entangled
			return true, nil
		}

		branch, ok := p.BranchAt(from)
		if !ok {
			return false, errors.Wrapf(errors.ErrIllegalMove, "no branch on %s", from)
		}
		board := g.snapshot()
		for _, sq := range path {
			if !sq.Valid() {
				return false, errors.Wrapf(errors.ErrInvalidSquare, "path square %s", sq)
			}
			if board.Occupied(sq) {
				return false, errors.Wrapf(errors.ErrIllegalMove, "path blocked on %s", sq)
			}
		}
		created = g.entangle(id, branch, path)
		if bad, ok := g.unrealizable(id, created); ok {
			return false, errors.Wrapf(errors.ErrIllegalMove, "%s would have no consistent outcome", bad)
		}
		return len(created) > 0, nil
	})
	if err != nil {
		return nil, g.wrap(err, "entangle", id, from, "")
	}
	return created, nil
}

// EntangleMove moves a definite piece through the one superposed piece
// standing on its path. The mover splits on the blocker's odds: it stays on
// from with the weight of the blocker being on the path and reaches to with
// the rest. Records tie the moved branch to the blocker being off the path
// and the staying branch to it being on the path. The turn passes.
func (g *Game) EntangleMove(id PieceID, from, to chess.Square) (*EntangleResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var result *EntangleResult
	err := g.atomically(func() (bool, error) {
		var err error
		result, err = g.entangleMove(id, from, to)
		return true, err
	})
	if err != nil {
		return nil, g.wrap(err, "entangle", id, from, to.String())
	}
	return result, nil
}

func (g *Game) entangleMove(id PieceID, from, to chess.Square) (*EntangleResult, error) {
	p, ok := g.registry.Piece(id)
	if !ok {
		return nil, fmt.Errorf("%w: %w", errors.ErrIllegalMove, errors.ErrUnknownPiece)
	}
	if p.Owner != g.toMove {
		return nil, errors.Wrapf(errors.ErrIllegalMove, "%s to move", g.toMove)
	}
	if sq, definite := p.Square(); !definite || sq != from {
		return nil, errors.Wrapf(errors.ErrIllegalMove, "%s is not definite on %s", id, from)
	}
	if !to.Valid() || len(g.registry.FindPieceAt(to)) > 0 {
		return nil, errors.Wrapf(errors.ErrIllegalMove, "%s is not empty", to)
	}
	board := g.snapshot()
	if !contains(g.oracle.LegalDestinations(p.Coloured(), from, board), to) {
		return nil, errors.Wrapf(errors.ErrIllegalMove, "%s cannot reach %s", id, to)
	}

	var blocker *QuantumPiece
	onPath := make(map[Label]bool)
	var blocked float64
	for _, sq := range g.oracle.PathSquares(from, to) {
		for _, pl := range g.registry.FindPieceAt(sq) {
			if blocker != nil && pl.Piece.ID != blocker.ID {
				return nil, errors.Wrapf(errors.ErrIllegalMove, "%s and %s both on the path", blocker.ID, pl.Piece.ID)
			}
			blocker = pl.Piece
			onPath[pl.Branch.Label] = true
			blocked += pl.Branch.Weight
		}
	}
	if blocker == nil {
		return nil, errors.Wrapf(errors.ErrIllegalMove, "no superposed piece between %s and %s", from, to)
	}
	if blocker.Definite() || blocked >= 1-g.epsilon {
		return nil, errors.Wrapf(errors.ErrIllegalMove, "%s always blocks the path", blocker.ID)
	}

	parent := p.Branches[0].Label
	if parent.Depth >= MaxDepth {
		parent = RootLabel(id)
	}
	stay := Branch{Label: parent.Child(0), Square: from, Weight: blocked}
	moved := Branch{Label: parent.Child(1), Square: to, Weight: 1 - blocked}
	if err := g.registry.SetBranches(id, []Branch{stay, moved}); err != nil {
		return nil, err
	}

	var created []Record
	for _, b := range blocker.Branches {
		rec := Record{A: id, B: blocker.ID, Prefix: stay.Label, Conflict: b.Label}
		if onPath[b.Label] {
			rec.Prefix = moved.Label
		}
		if g.ledger.Add(rec) {
			created = append(created, rec)
		}
	}
	if bad, ok := g.unrealizable(id, created); ok {
		return nil, errors.Wrapf(errors.ErrIllegalMove, "%s would have no consistent outcome", bad)
	}

	g.log.Debug().Str("game", g.id).Str("piece", string(id)).Str("from", from.String()).
		Str("to", to.String()).Str("blocker", string(blocker.ID)).Float64("stay", blocked).
		Int("entangled", len(created)).Msg("entangle move")

	g.endTurn()
	return &EntangleResult{
		Piece:     id,
		Blocker:   blocker.ID,
		Branches:  []Branch{stay, moved},
		Entangled: created,
		Status:    g.checkStatus(g.toMove),
	}, nil
}

// entangle links the mover's branch with every other superposed piece
// holding a branch on one of squares. Existing records are not duplicated.
func (g *Game) entangle(mover PieceID, branch Branch, squares []chess.Square) []Record {
	p, ok := g.registry.Piece(mover)
	if !ok || p.Definite() {
		return nil
	}

	var created []Record
	for _, sq := range squares {
		for _, pl := range g.registry.FindPieceAt(sq) {
			if pl.Piece.ID == mover || pl.Piece.Definite() {
				continue
			}
			rec := Record{A: mover, B: pl.Piece.ID, Prefix: branch.Label, Conflict: pl.Branch.Label}
			if g.ledger.Add(rec) {
				created = append(created, rec)
				g.log.Debug().Str("game", g.id).Str("prefix", rec.Prefix.String()).
					Str("conflict", rec.Conflict.String()).Str("square", sq.String()).Msg("entangled")
			}
		}
	}
	return created
}
