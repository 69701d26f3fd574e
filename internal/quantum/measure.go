package quantum

import (
	"github.com/rs/zerolog"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/errors"
)

// Measurement records a piece becoming definite, either by direct
// measurement or through ledger propagation.
type Measurement struct {
	Piece  PieceID
	Square chess.Square
	Label  Label
}

// tx collects the side effects of one operation.
type tx struct {
	changed      map[PieceID]bool
	measurements []Measurement
}

func newTx() *tx {
	return &tx{changed: make(map[PieceID]bool)}
}

func (t *tx) touch(id PieceID) {
	t.changed[id] = true
}

// txMark is a rewind point within a tx.
type txMark struct {
	changed      map[PieceID]bool
	measurements int
}

func (t *tx) mark() txMark {
	return txMark{changed: maps.Clone(t.changed), measurements: len(t.measurements)}
}

func (t *tx) rewind(m txMark) {
	t.changed = m.changed
	t.measurements = t.measurements[:m.measurements]
}

func (t *tx) changedIDs() []PieceID {
	ids := maps.Keys(t.changed)
	slices.Sort(ids)
	return ids
}

// Measure collapses a piece to one square, propagating through the ledger.
// Measuring a definite piece returns its square and changes nothing.
func (g *Game) Measure(id PieceID) (chess.Square, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var sq chess.Square
	err := g.atomically(func() (bool, error) {
		t := newTx()
		var err error
		sq, err = g.measure(id, t)
		return len(t.changed) > 0, err
	})
	if err != nil {
		return chess.NoSquare, g.wrap(err, "measure", id, chess.NoSquare, "")
	}
	return sq, nil
}

func (g *Game) measure(id PieceID, t *tx) (chess.Square, error) {
	p, ok := g.registry.Piece(id)
	if !ok {
		return chess.NoSquare, errors.Wrap(errors.ErrUnknownPiece, string(id))
	}
	switch len(p.Branches) {
	case 0:
		return chess.NoSquare, errors.Wrapf(errors.ErrCorruptState, "%s has no branches", id)
	case 1:
		return p.Branches[0].Square, nil
	}

	// An outcome whose propagation empties some partner is impossible given
	// the ledger; it is dropped and the draw repeated among the rest.
	candidates := append([]Branch(nil), p.Branches...)
	for len(candidates) > 0 {
		winner := g.choose(candidates)
		registry, ledger, mark := g.registry.Clone(), g.ledger.Clone(), t.mark()

		err := g.collapse(id, winner, t)
		if err == nil {
			g.log.Debug().Str("game", g.id).Str("piece", string(id)).
				Str("label", winner.Label.String()).Str("square", winner.Square.String()).
				Float64("weight", winner.Weight).Msg("measured")
			return winner.Square, nil
		}
		if !errors.Is(err, errors.ErrCorruptState) {
			return chess.NoSquare, err
		}

		g.registry.restore(registry)
		g.ledger.restore(ledger)
		t.rewind(mark)
		g.log.Debug().Str("game", g.id).Str("piece", string(id)).
			Str("label", winner.Label.String()).Err(err).Msg("outcome contradicts ledger")
		candidates = withoutLabel(candidates, winner.Label)
	}
	return chess.NoSquare, errors.Wrapf(errors.ErrCorruptState, "%s has no outcome consistent with the ledger", id)
}

func withoutLabel(branches []Branch, label Label) []Branch {
	out := branches[:0]
	for _, b := range branches {
		if b.Label != label {
			out = append(out, b)
		}
	}
	return out
}

// choose picks a branch with probability proportional to its weight.
func (g *Game) choose(branches []Branch) Branch {
	var total float64
	for _, b := range branches {
		total += b.Weight
	}
	r := g.rng.Float64() * total
	var cumulative float64
	for _, b := range branches {
		cumulative += b.Weight
		if r < cumulative {
			return b
		}
	}
	return branches[len(branches)-1]
}

// collapse fixes id on the winning branch and propagates the outcome through
// the ledger until no more pieces become definite.
func (g *Game) collapse(id PieceID, winner Branch, t *tx) error {
	winner.Weight = 1
	if err := g.registry.SetBranches(id, []Branch{winner}); err != nil {
		return errors.Wrapf(errors.ErrCorruptState, "collapsing %s: %v", id, err)
	}
	t.touch(id)
	t.measurements = append(t.measurements, Measurement{Piece: id, Square: winner.Square, Label: winner.Label})

	queue := []PieceID{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		p, _ := g.registry.Piece(current)
		won := p.Branches[0].Label

		for _, rec := range g.ledger.ForPiece(current) {
			g.ledger.Delete(rec)

			var partner PieceID
			var excluded Label
			switch {
			case rec.A == current && won.IsDescendantOf(rec.Prefix):
				partner, excluded = rec.B, rec.Conflict
			case rec.B == current && won.IsDescendantOf(rec.Conflict):
				partner, excluded = rec.A, rec.Prefix
			default:
				continue
			}

			became, err := g.exclude(partner, excluded, t)
			if err != nil {
				return err
			}
			if became {
				queue = append(queue, partner)
			}
		}
	}

	g.detangle()
	return nil
}

// realizable reports whether collapsing id onto b propagates through the
// ledger without emptying any piece. The live state is left as it was.
func (g *Game) realizable(id PieceID, b Branch) bool {
	registry, ledger, log := g.registry.Clone(), g.ledger.Clone(), g.log
	g.log = zerolog.Nop()
	defer func() {
		g.registry.restore(registry)
		g.ledger.restore(ledger)
		g.log = log
	}()
	return g.collapse(id, b, newTx()) == nil
}

// unrealizable checks the superposition left by new records. Every branch
// of the mover must have a consistent collapse, and every partner named in
// records must keep at least one. It returns the first piece that fails.
func (g *Game) unrealizable(mover PieceID, records []Record) (PieceID, bool) {
	if len(records) == 0 {
		return "", false
	}
	p, _ := g.registry.Piece(mover)
	for _, b := range p.Branches {
		if !g.realizable(mover, b) {
			return mover, true
		}
	}

	checked := map[PieceID]bool{mover: true}
	for _, rec := range records {
		for _, id := range []PieceID{rec.A, rec.B} {
			if checked[id] {
				continue
			}
			checked[id] = true
			q, ok := g.registry.Piece(id)
			if !ok {
				continue
			}
			if slices.IndexFunc(q.Branches, func(b Branch) bool { return g.realizable(id, b) }) < 0 {
				return id, true
			}
		}
	}
	return "", false
}

// exclude drops the partner's branches under label and renormalizes the
// rest. It reports whether the partner became definite.
func (g *Game) exclude(id PieceID, label Label, t *tx) (bool, error) {
	p, ok := g.registry.Piece(id)
	if !ok {
		return false, nil
	}

	kept := make([]Branch, 0, len(p.Branches))
	for _, b := range p.Branches {
		if !b.Label.IsDescendantOf(label) {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(p.Branches) {
		return false, nil
	}
	if len(kept) == 0 || !normalize(kept) {
		return false, errors.Wrapf(errors.ErrCorruptState, "%s has no branch left outside %s", id, label)
	}
	if len(kept) == 1 {
		kept[0].Weight = 1
	}
	if err := g.registry.SetBranches(id, kept); err != nil {
		return false, errors.Wrapf(errors.ErrCorruptState, "filtering %s: %v", id, err)
	}
	t.touch(id)

	if len(kept) > 1 {
		return false, nil
	}
	t.measurements = append(t.measurements, Measurement{Piece: id, Square: kept[0].Square, Label: kept[0].Label})
	g.log.Debug().Str("game", g.id).Str("piece", string(id)).Str("square", kept[0].Square.String()).Msg("collapsed by entanglement")
	return true, nil
}

// detangle purges records that can no longer fire: those naming a missing or
// definite piece, and those whose prefix or conflict no longer matches any
// live branch.
func (g *Game) detangle() {
	removed := g.ledger.RemoveIf(func(rec Record) bool {
		a, okA := g.registry.Piece(rec.A)
		b, okB := g.registry.Piece(rec.B)
		if !okA || !okB || a.Definite() || b.Definite() {
			return true
		}
		return !hasBranchUnder(a, rec.Prefix) || !hasBranchUnder(b, rec.Conflict)
	})
	if removed > 0 {
		g.log.Debug().Str("game", g.id).Int("records", removed).Msg("detangled")
	}
}

func hasBranchUnder(p *QuantumPiece, label Label) bool {
	for _, b := range p.Branches {
		if b.Label.IsDescendantOf(label) {
			return true
		}
	}
	return false
}
