// Package rules implements the classical chess rules the quantum engine
// consults: reachable destinations, the squares a move passes over, and
// attack detection on a classical board.
package rules

import (
	"github.com/lgbarn/quantum-chess-go/internal/chess"
)

// Classical answers rule questions about a classical board. It holds no
// state and is safe for concurrent use.
type Classical struct{}

// NewClassical returns the standard rules oracle.
func NewClassical() *Classical {
	return &Classical{}
}

// LegalDestinations returns every square the coloured piece could move to
// from the given square on board, sorted a1..h8. The board need not hold the
// piece on from. Moves that leave the mover's own king (if one stands on the
// board) attacked are excluded.
func (c *Classical) LegalDestinations(piece chess.Piece, from chess.Square, board *chess.Board) []chess.Square {
	if !from.Valid() || !chess.IsPiece(piece) {
		return nil
	}
	colour := chess.ExtractColour(piece)

	work := board.Copy()
	work.Set(from, chess.Empty)

	var legal uint64
	for _, to := range pseudoDestinations(work, piece, from) {
		if c.leavesKingSafe(work, piece, to, colour) {
			legal |= 1 << uint(to.Index())
		}
	}
	return bitboardSquares(legal)
}

// CanMove reports whether to is among the legal destinations of piece from from.
func (c *Classical) CanMove(piece chess.Piece, from, to chess.Square, board *chess.Board) bool {
	for _, d := range c.LegalDestinations(piece, from, board) {
		if d == to {
			return true
		}
	}
	return false
}

// leavesKingSafe makes the move on a copied board and checks the mover's
// king. Boards without a king for the mover pass unconditionally.
func (c *Classical) leavesKingSafe(board *chess.Board, piece chess.Piece, to chess.Square, colour chess.Colour) bool {
	testBoard := board.Copy()
	testBoard.Set(to, piece)

	kingSq := testBoard.FindKing(colour)
	if kingSq == chess.NoSquare {
		return true
	}
	return !c.IsAttacked(kingSq, colour.Opposite(), testBoard)
}

// pseudoDestinations lists the squares reachable by piece geometry alone.
func pseudoDestinations(board *chess.Board, piece chess.Piece, from chess.Square) []chess.Square {
	colour := chess.ExtractColour(piece)

	switch chess.ExtractPiece(piece) {
	case chess.Pawn:
		return pawnDestinations(board, from, colour)
	case chess.Knight:
		return stepDestinations(board, from, colour, knightOffsets)
	case chess.King:
		return stepDestinations(board, from, colour, kingOffsets)
	case chess.Bishop:
		return sliderDestinations(board, from, colour, true, false)
	case chess.Rook:
		return sliderDestinations(board, from, colour, false, true)
	case chess.Queen:
		return sliderDestinations(board, from, colour, true, true)
	}
	return nil
}

var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// stepDestinations handles knights and kings.
func stepDestinations(board *chess.Board, from chess.Square, colour chess.Colour, offsets [][2]int) []chess.Square {
	var dests []chess.Square
	for _, offset := range offsets {
		to := from.Offset(offset[0], offset[1])
		if !to.Valid() {
			continue
		}
		target := board.Get(to)
		if target == chess.Empty || chess.ExtractColour(target) != colour {
			dests = append(dests, to)
		}
	}
	return dests
}

// pawnDestinations handles pushes, the double push from the starting rank
// and diagonal captures. En passant is not part of this variant.
func pawnDestinations(board *chess.Board, from chess.Square, colour chess.Colour) []chess.Square {
	var dests []chess.Square
	dir := chess.ColourOffset(colour)

	one := from.Offset(0, dir)
	if one.Valid() && board.Get(one) == chess.Empty {
		dests = append(dests, one)

		startRank := chess.Rank('2')
		if colour == chess.Black {
			startRank = '7'
		}
		two := from.Offset(0, 2*dir)
		if from.Rank == startRank && board.Get(two) == chess.Empty {
			dests = append(dests, two)
		}
	}

	for dc := -1; dc <= 1; dc += 2 {
		to := from.Offset(dc, dir)
		if !to.Valid() {
			continue
		}
		target := board.Get(to)
		if chess.IsPiece(target) && chess.ExtractColour(target) != colour {
			dests = append(dests, to)
		}
	}
	return dests
}
