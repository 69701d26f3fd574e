package rules

import "github.com/lgbarn/quantum-chess-go/internal/chess"

// PathSquares returns the squares strictly between from and to along a rank,
// file or diagonal, in travel order. Knight jumps and non-line moves have
// no path.
func (c *Classical) PathSquares(from, to chess.Square) []chess.Square {
	colDiff := int(to.Col) - int(from.Col)
	rankDiff := int(to.Rank) - int(from.Rank)

	if colDiff == 0 && rankDiff == 0 {
		return nil
	}
	if colDiff != 0 && rankDiff != 0 && abs(colDiff) != abs(rankDiff) {
		return nil
	}

	colDir := sign(colDiff)
	rankDir := sign(rankDiff)

	var path []chess.Square
	sq := from.Offset(colDir, rankDir)
	for sq != to {
		path = append(path, sq)
		sq = sq.Offset(colDir, rankDir)
	}
	return path
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
