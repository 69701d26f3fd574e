package rules

import (
	"github.com/dylhunn/dragontoothmg"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
)

// sliderDestinations computes bishop, rook and queen reach with magic
// bitboards. The attack sets include the first blocker in each direction;
// own pieces are masked out afterwards.
func sliderDestinations(board *chess.Board, from chess.Square, colour chess.Colour, diagonal, straight bool) []chess.Square {
	occ := board.Occupancy()
	sq := uint8(from.Index())

	var reach uint64
	if diagonal {
		reach |= dragontoothmg.CalculateBishopMoveBitboard(sq, occ)
	}
	if straight {
		reach |= dragontoothmg.CalculateRookMoveBitboard(sq, occ)
	}
	reach &^= board.ColourOccupancy(colour)

	return bitboardSquares(reach)
}

// bitboardSquares expands a bitboard into squares in index order.
func bitboardSquares(bb uint64) []chess.Square {
	var squares []chess.Square
	for i := 0; i < chess.BoardSize*chess.BoardSize; i++ {
		if bb&(1<<uint(i)) != 0 {
			squares = append(squares, chess.SquareFromIndex(i))
		}
	}
	return squares
}
