package rules

import (
	"github.com/Oliverans/GooseEngineMG/goosemg"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
)

const emptyFEN = "8/8/8/8/8/8/8/8 w - - 0 1"

var goosePieces = map[chess.Piece]goosemg.Piece{
	chess.W(chess.Pawn):   goosemg.WhitePawn,
	chess.W(chess.Knight): goosemg.WhiteKnight,
	chess.W(chess.Bishop): goosemg.WhiteBishop,
	chess.W(chess.Rook):   goosemg.WhiteRook,
	chess.W(chess.Queen):  goosemg.WhiteQueen,
	chess.W(chess.King):   goosemg.WhiteKing,
	chess.B(chess.Pawn):   goosemg.BlackPawn,
	chess.B(chess.Knight): goosemg.BlackKnight,
	chess.B(chess.Bishop): goosemg.BlackBishop,
	chess.B(chess.Rook):   goosemg.BlackRook,
	chess.B(chess.Queen):  goosemg.BlackQueen,
	chess.B(chess.King):   goosemg.BlackKing,
}

// IsAttacked reports whether any piece of colour by attacks sq on board.
func (c *Classical) IsAttacked(sq chess.Square, by chess.Colour, board *chess.Board) bool {
	if !sq.Valid() {
		return false
	}
	gb, err := mirror(board)
	if err != nil {
		return false
	}
	side := goosemg.White
	if by == chess.Black {
		side = goosemg.Black
	}
	return gb.IsSquareAttacked(goosemg.Square(sq.Index()), side)
}

// mirror copies the classical placement onto a goosemg board. Side to move
// and castling state are irrelevant to attack queries.
func mirror(board *chess.Board) (*goosemg.Board, error) {
	gb, err := goosemg.ParseFEN(emptyFEN)
	if err != nil {
		return nil, err
	}
	for i := 0; i < chess.BoardSize*chess.BoardSize; i++ {
		if p, ok := goosePieces[board.Get(chess.SquareFromIndex(i))]; ok {
			gb.SetPiece(goosemg.Square(i), p)
		}
	}
	return gb, nil
}
