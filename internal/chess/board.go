package chess

// Board is the classical occupancy of the chessboard. The quantum engine
// derives one from its registry on demand; only definite pieces appear on it.
type Board struct {
	// The board squares with a hedge of 2 around for knight move calculation.
	// board[col][rank] where col and rank are 0-11 (with hedge).
	Squares [Hedge + BoardSize + Hedge][Hedge + BoardSize + Hedge]Piece

	// Who has the next move.
	ToMove Colour

	// The current move number.
	MoveNumber uint
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	b := &Board{
		ToMove:     White,
		MoveNumber: 1,
	}
	// Initialize all squares to Off (hedge) or Empty
	for col := 0; col < Hedge+BoardSize+Hedge; col++ {
		for rank := 0; rank < Hedge+BoardSize+Hedge; rank++ {
			if col >= Hedge && col < Hedge+BoardSize &&
				rank >= Hedge && rank < Hedge+BoardSize {
				b.Squares[col][rank] = Empty
			} else {
				b.Squares[col][rank] = Off
			}
		}
	}
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	for col := Hedge; col < Hedge+BoardSize; col++ {
		for rank := Hedge; rank < Hedge+BoardSize; rank++ {
			b.Squares[col][rank] = Empty
		}
	}

	backRank := []Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b.Squares[col+Hedge][Hedge] = W(backRank[col])
		b.Squares[col+Hedge][Hedge+1] = W(Pawn)
		b.Squares[col+Hedge][Hedge+6] = B(Pawn)
		b.Squares[col+Hedge][Hedge+7] = B(backRank[col])
	}

	b.ToMove = White
	b.MoveNumber = 1
}

// Get returns the piece on the square, or Off for squares outside the board.
func (b *Board) Get(sq Square) Piece {
	c := ColConvert(sq.Col)
	r := RankConvert(sq.Rank)
	if c == 0 || r == 0 {
		return Off
	}
	return b.Squares[c][r]
}

// Set places a piece on the square. Squares outside the board are ignored.
func (b *Board) Set(sq Square, piece Piece) {
	c := ColConvert(sq.Col)
	r := RankConvert(sq.Rank)
	if c != 0 && r != 0 {
		b.Squares[c][r] = piece
	}
}

// Occupied reports whether a piece stands on the square.
func (b *Board) Occupied(sq Square) bool {
	return IsPiece(b.Get(sq))
}

// Move relocates whatever stands on from to to, overwriting to.
func (b *Board) Move(from, to Square) {
	piece := b.Get(from)
	b.Set(from, Empty)
	b.Set(to, piece)
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// FindKing returns the square of colour's king, or NoSquare.
func (b *Board) FindKing(colour Colour) Square {
	king := MakeColouredPiece(colour, King)
	for col := Col(FirstCol); col <= LastCol; col++ {
		for rank := Rank(FirstRank); rank <= LastRank; rank++ {
			if b.Get(Sq(col, rank)) == king {
				return Sq(col, rank)
			}
		}
	}
	return NoSquare
}

// Occupancy returns a bitboard of every occupied square, indexed by
// Square.Index.
func (b *Board) Occupancy() uint64 {
	var occ uint64
	for i := 0; i < BoardSize*BoardSize; i++ {
		if b.Occupied(SquareFromIndex(i)) {
			occ |= 1 << uint(i)
		}
	}
	return occ
}

// ColourOccupancy returns a bitboard of the squares holding colour's pieces.
func (b *Board) ColourOccupancy(colour Colour) uint64 {
	var occ uint64
	for i := 0; i < BoardSize*BoardSize; i++ {
		p := b.Get(SquareFromIndex(i))
		if IsPiece(p) && ExtractColour(p) == colour {
			occ |= 1 << uint(i)
		}
	}
	return occ
}
