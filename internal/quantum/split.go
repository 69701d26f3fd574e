package quantum

import (
	"fmt"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/errors"
)

// SplitResult describes an accepted split.
type SplitResult struct {
	Piece     PieceID
	Branches  []Branch
	Entangled []Record
	// Status is the check status of the side now to move.
	Status Status
}

// Split puts a definite piece into an equal superposition of two legal,
// classically empty destinations. The turn passes on success.
func (g *Game) Split(id PieceID, t1, t2 chess.Square) (*SplitResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var result *SplitResult
	var from chess.Square
	err := g.atomically(func() (bool, error) {
		var err error
		from, result, err = g.split(id, t1, t2)
		return true, err
	})
	if err != nil {
		return nil, g.wrap(err, "split", id, from, t1.String()+"/"+t2.String())
	}
	return result, nil
}

func (g *Game) split(id PieceID, t1, t2 chess.Square) (chess.Square, *SplitResult, error) {
	p, ok := g.registry.Piece(id)
	if !ok {
		return chess.NoSquare, nil, fmt.Errorf("%w: %w", errors.ErrIllegalSplit, errors.ErrUnknownPiece)
	}
	from, definite := p.Square()
	if !definite {
		return chess.NoSquare, nil, errors.Wrap(errors.ErrIllegalSplit, "piece is superposed")
	}
	if p.Owner != g.toMove {
		return from, nil, errors.Wrapf(errors.ErrIllegalSplit, "%s to move", g.toMove)
	}
	if t1 == t2 {
		return from, nil, errors.Wrap(errors.ErrIllegalSplit, "targets coincide")
	}

	board := g.snapshot()
	dests := g.oracle.LegalDestinations(p.Coloured(), from, board)
	for _, target := range []chess.Square{t1, t2} {
		if !contains(dests, target) {
			return from, nil, errors.Wrapf(errors.ErrIllegalSplit, "%s not reachable", target)
		}
		if board.Occupied(target) {
			return from, nil, errors.Wrapf(errors.ErrIllegalSplit, "%s is occupied", target)
		}
	}

	parent := p.Branches[0].Label
	if parent.Depth >= MaxDepth {
		parent = RootLabel(id)
	}
	branches := []Branch{
		{Label: parent.Child(0), Square: t1, Weight: 0.5},
		{Label: parent.Child(1), Square: t2, Weight: 0.5},
	}
	if err := g.registry.SetBranches(id, branches); err != nil {
		return from, nil, err
	}

	var entangled []Record
	for _, b := range branches {
		squares := append(g.oracle.PathSquares(from, b.Square), b.Square)
		entangled = append(entangled, g.entangle(id, b, squares)...)
	}
	if bad, ok := g.unrealizable(id, entangled); ok {
		return from, nil, errors.Wrapf(errors.ErrIllegalSplit, "%s would have no consistent outcome", bad)
	}

	g.log.Debug().Str("game", g.id).Str("piece", string(id)).Str("from", from.String()).
		Str("a", t1.String()).Str("b", t2.String()).Int("entangled", len(entangled)).Msg("split")

	g.endTurn()
	return from, &SplitResult{
		Piece:     id,
		Branches:  branches,
		Entangled: entangled,
		Status:    g.checkStatus(g.toMove),
	}, nil
}
