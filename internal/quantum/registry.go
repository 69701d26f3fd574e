package quantum

import (
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/errors"
)

// DefaultEpsilon is the tolerance on the branch weight sum.
const DefaultEpsilon = 1e-9

// Placement pairs a piece with one of its branches.
type Placement struct {
	Piece  *QuantumPiece
	Branch Branch
}

// Registry owns every piece and its branches, keyed by piece id.
type Registry struct {
	pieces  map[PieceID]*QuantumPiece
	epsilon float64
}

// NewRegistry creates an empty registry with the given weight tolerance.
func NewRegistry(epsilon float64) *Registry {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Registry{pieces: make(map[PieceID]*QuantumPiece), epsilon: epsilon}
}

// Add registers a definite piece on sq.
func (r *Registry) Add(id PieceID, kind chess.Piece, owner chess.Colour, sq chess.Square) error {
	if _, exists := r.pieces[id]; exists {
		return errors.Wrapf(errors.ErrInvariantViolation, "duplicate piece %s", id)
	}
	if !sq.Valid() {
		return errors.Wrapf(errors.ErrInvalidSquare, "piece %s", id)
	}
	r.pieces[id] = &QuantumPiece{
		ID:       id,
		Kind:     kind,
		Owner:    owner,
		Branches: []Branch{{Label: RootLabel(id), Square: sq, Weight: 1}},
	}
	return nil
}

// Remove deletes a piece, e.g. after a confirmed capture.
func (r *Registry) Remove(id PieceID) {
	delete(r.pieces, id)
}

// Piece returns the live piece record. Callers must not modify Branches
// directly; use SetBranches.
func (r *Registry) Piece(id PieceID) (*QuantumPiece, bool) {
	p, ok := r.pieces[id]
	return p, ok
}

// IDs returns all piece ids in sorted order.
func (r *Registry) IDs() []PieceID {
	ids := maps.Keys(r.pieces)
	slices.Sort(ids)
	return ids
}

// Len returns the number of pieces.
func (r *Registry) Len() int {
	return len(r.pieces)
}

// GetBranches returns a copy of the piece's branches.
func (r *Registry) GetBranches(id PieceID) ([]Branch, error) {
	p, ok := r.pieces[id]
	if !ok {
		return nil, errors.Wrap(errors.ErrUnknownPiece, string(id))
	}
	return append([]Branch(nil), p.Branches...), nil
}

// SetBranches replaces the piece's branches after validating them. Nothing
// is written when validation fails.
func (r *Registry) SetBranches(id PieceID, branches []Branch) error {
	p, ok := r.pieces[id]
	if !ok {
		return errors.Wrap(errors.ErrUnknownPiece, string(id))
	}
	if err := r.validate(id, branches); err != nil {
		return err
	}
	p.Branches = append([]Branch(nil), branches...)
	return nil
}

func (r *Registry) validate(id PieceID, branches []Branch) error {
	if len(branches) == 0 {
		return errors.Wrapf(errors.ErrInvariantViolation, "%s: empty branch set", id)
	}

	var total float64
	squares := make(map[chess.Square]bool, len(branches))
	labels := make(map[Label]bool, len(branches))
	for _, b := range branches {
		if b.Weight <= 0 || b.Weight > 1+r.epsilon {
			return errors.Wrapf(errors.ErrInvariantViolation, "%s: weight %g out of range", id, b.Weight)
		}
		if !b.Square.Valid() {
			return errors.Wrapf(errors.ErrInvariantViolation, "%s: branch %s off board", id, b.Label)
		}
		if squares[b.Square] {
			return errors.Wrapf(errors.ErrInvariantViolation, "%s: two branches on %s", id, b.Square)
		}
		if labels[b.Label] || b.Label.Piece != id {
			return errors.Wrapf(errors.ErrInvariantViolation, "%s: bad label %s", id, b.Label)
		}
		squares[b.Square] = true
		labels[b.Label] = true
		total += b.Weight
	}
	if math.Abs(total-1) > r.epsilon {
		return errors.Wrapf(errors.ErrInvariantViolation, "%s: weights sum to %g", id, total)
	}
	return nil
}

// FindPieceAt returns every branch, of any piece, that lies on sq, ordered
// by piece id.
func (r *Registry) FindPieceAt(sq chess.Square) []Placement {
	var found []Placement
	for _, id := range r.IDs() {
		p := r.pieces[id]
		if b, ok := p.BranchAt(sq); ok {
			found = append(found, Placement{Piece: p, Branch: b})
		}
	}
	return found
}

// ClassicalOccupant returns the piece classically occupying sq: the only
// claimant of the square, holding a definite branch there.
func (r *Registry) ClassicalOccupant(sq chess.Square) (*QuantumPiece, bool) {
	found := r.FindPieceAt(sq)
	if len(found) != 1 || !found[0].Piece.Definite() {
		return nil, false
	}
	return found[0].Piece, true
}

// King returns the king of the given colour.
func (r *Registry) King(colour chess.Colour) (*QuantumPiece, bool) {
	for _, id := range r.IDs() {
		p := r.pieces[id]
		if p.Kind == chess.King && p.Owner == colour {
			return p, true
		}
	}
	return nil, false
}

// Snapshot derives the classical board: only classically occupied squares
// carry a piece.
func (r *Registry) Snapshot() *chess.Board {
	board := chess.NewBoard()
	for _, p := range r.pieces {
		sq, ok := p.Square()
		if !ok {
			continue
		}
		if _, classical := r.ClassicalOccupant(sq); classical {
			board.Set(sq, p.Coloured())
		}
	}
	return board
}

// Clone returns a deep copy.
func (r *Registry) Clone() *Registry {
	c := &Registry{pieces: make(map[PieceID]*QuantumPiece, len(r.pieces)), epsilon: r.epsilon}
	for id, p := range r.pieces {
		c.pieces[id] = p.clone()
	}
	return c
}

// restore overwrites r with the contents of a clone taken earlier. Piece
// records are updated in place so outstanding pointers stay valid.
func (r *Registry) restore(from *Registry) {
	for id := range r.pieces {
		if _, ok := from.pieces[id]; !ok {
			delete(r.pieces, id)
		}
	}
	for id, saved := range from.pieces {
		if live, ok := r.pieces[id]; ok {
			*live = *saved.clone()
		} else {
			r.pieces[id] = saved.clone()
		}
	}
}
