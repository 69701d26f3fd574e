package quantum

import (
	"fmt"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
)

// Branch is one possible location of a piece.
type Branch struct {
	Label  Label
	Square chess.Square
	Weight float64
}

func (b Branch) String() string {
	return fmt.Sprintf("%s@%s:%.4g", b.Label, b.Square, b.Weight)
}

// QuantumPiece is a piece and its active branches.
type QuantumPiece struct {
	ID       PieceID
	Kind     chess.Piece // uncoloured piece type
	Owner    chess.Colour
	Branches []Branch
}

// Definite reports whether the piece has exactly one branch.
func (p *QuantumPiece) Definite() bool {
	return len(p.Branches) == 1
}

// Coloured returns the coloured piece value used on classical boards.
func (p *QuantumPiece) Coloured() chess.Piece {
	return chess.MakeColouredPiece(p.Owner, p.Kind)
}

// BranchAt returns the branch on sq, if any.
func (p *QuantumPiece) BranchAt(sq chess.Square) (Branch, bool) {
	for _, b := range p.Branches {
		if b.Square == sq {
			return b, true
		}
	}
	return Branch{}, false
}

// Square returns the square of a definite piece.
func (p *QuantumPiece) Square() (chess.Square, bool) {
	if !p.Definite() {
		return chess.NoSquare, false
	}
	return p.Branches[0].Square, true
}

func (p *QuantumPiece) clone() *QuantumPiece {
	c := *p
	c.Branches = append([]Branch(nil), p.Branches...)
	return &c
}

// normalize rescales weights to sum to one. It returns false when the
// total is not positive.
func normalize(branches []Branch) bool {
	var total float64
	for _, b := range branches {
		total += b.Weight
	}
	if total <= 0 {
		return false
	}
	for i := range branches {
		branches[i].Weight /= total
	}
	return true
}
