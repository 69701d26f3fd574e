package rules

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/errors"
)

// InitialFEN is the standard starting position. Castling and en passant are
// not part of the variant, so those fields are always "-".
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// PieceLetter returns the FEN letter of a coloured piece: upper case for
// White, lower case for Black.
func PieceLetter(colouredPiece chess.Piece) byte {
	letter := chess.ExtractPiece(colouredPiece).Letter()
	if chess.ExtractColour(colouredPiece) == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// NewBoardFromFEN creates a board from a FEN string. Only the placement
// field is required; castling and en passant fields are accepted and ignored.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, errors.Wrap(errors.ErrInvalidFEN, "empty FEN string")
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(board, parts); err != nil {
		return nil, err
	}
	if len(parts) >= 6 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return nil, errors.Wrapf(errors.ErrInvalidFEN, "invalid move number %q", parts[5])
		}
		board.MoveNumber = uint(n)
	}
	return board, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return errors.Wrapf(errors.ErrInvalidFEN, "expected 8 ranks, got %d", len(ranks))
	}

	for i, row := range ranks {
		rank := chess.Rank(chess.LastRank - i)
		col := chess.Col('a')
		for _, c := range row {
			switch {
			case c >= '1' && c <= '8':
				col += chess.Col(c - '0')
			default:
				piece := chess.PieceFromLetter(byte(c))
				if piece == chess.Empty {
					return errors.Wrapf(errors.ErrInvalidFEN, "invalid piece character: %c", c)
				}
				if col > chess.LastCol {
					return errors.Wrapf(errors.ErrInvalidFEN, "rank %c overflows", rank)
				}
				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				board.Set(chess.Sq(col, rank), chess.MakeColouredPiece(colour, piece))
				col++
			}
		}
		if col != chess.LastCol+1 {
			return errors.Wrapf(errors.ErrInvalidFEN, "rank %c does not cover 8 files", rank)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return errors.Wrapf(errors.ErrInvalidFEN, "invalid side to move: %s", parts[1])
	}
	return nil
}

// BoardToFEN converts a board to a FEN string.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	sb.WriteByte(board.ToMove.Letter())
	fmt.Fprintf(&sb, " - - 0 %d", board.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.Rank(chess.LastRank); rank >= chess.FirstRank; rank-- {
		emptyCount := 0
		for col := chess.Col(chess.FirstCol); col <= chess.LastCol; col++ {
			piece := board.Get(chess.Sq(col, rank))
			if !chess.IsPiece(piece) {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(PieceLetter(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > chess.FirstRank {
			sb.WriteByte('/')
		}
	}
}
