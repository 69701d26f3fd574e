package chess

import (
	"testing"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	t.Run("initial state", func(t *testing.T) {
		if b.ToMove != White {
			t.Errorf("ToMove = %v; want White", b.ToMove)
		}
		if b.MoveNumber != 1 {
			t.Errorf("MoveNumber = %d; want 1", b.MoveNumber)
		}
	})

	t.Run("all squares empty", func(t *testing.T) {
		for col := Col('a'); col <= 'h'; col++ {
			for rank := Rank('1'); rank <= '8'; rank++ {
				if got := b.Get(Sq(col, rank)); got != Empty {
					t.Errorf("Get(%c%c) = %v; want Empty", col, rank, got)
				}
			}
		}
	})

	t.Run("hedge squares are Off", func(t *testing.T) {
		if b.Squares[0][0] != Off {
			t.Error("Hedge corner (0,0) is not Off")
		}
		if b.Squares[Hedge+BoardSize][Hedge+BoardSize] != Off {
			t.Error("Hedge corner at far edge is not Off")
		}
	})
}

func TestSetupInitialPosition(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()

	tests := []struct {
		name  string
		sq    string
		piece Piece
	}{
		{"white rook a1", "a1", W(Rook)},
		{"white knight b1", "b1", W(Knight)},
		{"white queen d1", "d1", W(Queen)},
		{"white king e1", "e1", W(King)},
		{"white pawn e2", "e2", W(Pawn)},
		{"black pawn e7", "e7", B(Pawn)},
		{"black king e8", "e8", B(King)},
		{"black knight g8", "g8", B(Knight)},
		{"empty e4", "e4", Empty},
		{"empty c6", "c6", Empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Get(MustSquare(tt.sq)); got != tt.piece {
				t.Errorf("Get(%s) = %v; want %v", tt.sq, got, tt.piece)
			}
		})
	}

	t.Run("king lookup", func(t *testing.T) {
		if got := b.FindKing(White); got != MustSquare("e1") {
			t.Errorf("FindKing(White) = %v; want e1", got)
		}
		if got := b.FindKing(Black); got != MustSquare("e8") {
			t.Errorf("FindKing(Black) = %v; want e8", got)
		}
	})
}

func TestBoardGetSetMove(t *testing.T) {
	b := NewBoard()
	e2, e4 := MustSquare("e2"), MustSquare("e4")
	b.Set(e2, W(Pawn))
	b.Move(e2, e4)

	if b.Occupied(e2) {
		t.Error("e2 still occupied after Move")
	}
	if got := b.Get(e4); got != W(Pawn) {
		t.Errorf("Get(e4) = %v; want white pawn", got)
	}

	t.Run("off-board access", func(t *testing.T) {
		if got := b.Get(Sq('i', '1')); got != Off {
			t.Errorf("Get(i1) = %v; want Off", got)
		}
		b.Set(Sq('z', '9'), W(Queen))
		if got := b.Get(e4); got != W(Pawn) {
			t.Errorf("Get(e4) = %v after invalid Set; want white pawn", got)
		}
	})
}

func TestBoardCopyIsIndependent(t *testing.T) {
	original := NewBoard()
	original.SetupInitialPosition()
	original.ToMove = Black

	copied := original.Copy()
	copied.Set(MustSquare("e4"), W(Pawn))
	copied.ToMove = White

	if original.Occupied(MustSquare("e4")) {
		t.Error("original e4 occupied after copy modification")
	}
	if original.ToMove != Black {
		t.Errorf("original ToMove = %v; want Black", original.ToMove)
	}
}

func TestOccupancyBitboards(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()

	if got := b.Occupancy(); got != 0xFFFF00000000FFFF {
		t.Errorf("Occupancy() = %#x; want 0xffff00000000ffff", got)
	}
	if got := b.ColourOccupancy(White); got != 0xFFFF {
		t.Errorf("ColourOccupancy(White) = %#x; want 0xffff", got)
	}
}

func TestSquares(t *testing.T) {
	tests := []struct {
		in    string
		index int
		light bool
	}{
		{"a1", 0, false},
		{"h1", 7, true},
		{"a8", 56, true},
		{"h8", 63, false},
		{"e4", 28, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sq, err := ParseSquare(tt.in)
			if err != nil {
				t.Fatalf("ParseSquare(%q) error: %v", tt.in, err)
			}
			if sq.Index() != tt.index {
				t.Errorf("Index() = %d; want %d", sq.Index(), tt.index)
			}
			if SquareFromIndex(tt.index) != sq {
				t.Errorf("SquareFromIndex(%d) = %v; want %v", tt.index, SquareFromIndex(tt.index), sq)
			}
			if sq.IsLight() != tt.light {
				t.Errorf("IsLight() = %v; want %v", sq.IsLight(), tt.light)
			}
			if sq.String() != tt.in {
				t.Errorf("String() = %q; want %q", sq.String(), tt.in)
			}
		})
	}

	for _, bad := range []string{"", "e", "i1", "a9", "e44"} {
		if _, err := ParseSquare(bad); err == nil {
			t.Errorf("ParseSquare(%q) succeeded; want error", bad)
		}
	}
}

func TestColouredPieces(t *testing.T) {
	p := B(Knight)
	if ExtractColour(p) != Black || ExtractPiece(p) != Knight {
		t.Errorf("B(Knight) decodes to %v %v", ExtractColour(p), ExtractPiece(p))
	}
	if PieceFromLetter('q') != Queen || PieceFromLetter('x') != Empty {
		t.Error("PieceFromLetter mismatch")
	}
	if White.Opposite() != Black || Black.Letter() != 'b' {
		t.Error("Colour helpers mismatch")
	}
}
