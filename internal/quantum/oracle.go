package quantum

import "github.com/lgbarn/quantum-chess-go/internal/chess"

// Oracle answers classical chess questions about a board snapshot.
// rules.Classical is the standard implementation.
type Oracle interface {
	// LegalDestinations lists the squares the coloured piece may move to
	// from the given square.
	LegalDestinations(piece chess.Piece, from chess.Square, board *chess.Board) []chess.Square
	// PathSquares lists the squares strictly between from and to.
	PathSquares(from, to chess.Square) []chess.Square
	// IsAttacked reports whether sq is attacked by colour by.
	IsAttacked(sq chess.Square, by chess.Colour, board *chess.Board) bool
}

// RandSource supplies uniform values in [0, 1) for measurement.
type RandSource interface {
	Float64() float64
}

func contains(squares []chess.Square, sq chess.Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}
