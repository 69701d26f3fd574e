package quantum

import (
	"github.com/lgbarn/quantum-chess-go/internal/chess"
)

// Occupant is one piece that may stand on a square.
type Occupant struct {
	Piece  PieceID
	Kind   chess.Piece // coloured piece
	Label  Label
	Weight float64
}

// SquareOccupancy lists the possible occupants of one square.
type SquareOccupancy struct {
	Square    chess.Square
	Occupants []Occupant
}

// Occupancy returns, for every square any branch touches, the pieces that
// may stand there with their weights. Squares are ordered a1..h8 and
// occupants by piece id.
func (g *Game) Occupancy() []SquareOccupancy {
	g.mu.Lock()
	defer g.mu.Unlock()

	bySquare := make(map[chess.Square][]Occupant)
	for _, id := range g.registry.IDs() {
		p, _ := g.registry.Piece(id)
		for _, b := range p.Branches {
			bySquare[b.Square] = append(bySquare[b.Square], Occupant{
				Piece:  id,
				Kind:   p.Coloured(),
				Label:  b.Label,
				Weight: b.Weight,
			})
		}
	}

	listing := make([]SquareOccupancy, 0, len(bySquare))
	for i := 0; i < chess.BoardSize*chess.BoardSize; i++ {
		sq := chess.SquareFromIndex(i)
		if occupants, ok := bySquare[sq]; ok {
			listing = append(listing, SquareOccupancy{Square: sq, Occupants: occupants})
		}
	}
	return listing
}
