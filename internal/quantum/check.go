package quantum

import "github.com/lgbarn/quantum-chess-go/internal/chess"

// Status is the check state of one side.
type Status int

const (
	StatusNone Status = iota
	StatusCheck
	StatusCheckmate
)

func (s Status) String() string {
	switch s {
	case StatusCheck:
		return "check"
	case StatusCheckmate:
		return "checkmate"
	}
	return "none"
}

// CheckStatus evaluates side's king over all of its branches. The king is in
// check when any branch square is attacked and checkmated when every branch
// is attacked with no escaping reply. A side without a king is checkmated.
// Only definite enemy pieces attack.
func (g *Game) CheckStatus(side chess.Colour) Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.checkStatus(side)
}

func (g *Game) checkStatus(side chess.Colour) Status {
	king, ok := g.registry.King(side)
	if !ok {
		return StatusCheckmate
	}

	base := g.snapshot()
	base.ToMove = side
	for _, b := range king.Branches {
		base.Set(b.Square, chess.Empty)
	}

	inCheck := false
	trapped := true
	for _, b := range king.Branches {
		board := base.Copy()
		board.Set(b.Square, king.Coloured())
		if !g.oracle.IsAttacked(b.Square, side.Opposite(), board) {
			trapped = false
			continue
		}
		inCheck = true
		if trapped && g.hasEscape(side, king.ID, board) {
			trapped = false
		}
	}

	switch {
	case !inCheck:
		return StatusNone
	case trapped:
		return StatusCheckmate
	}
	return StatusCheck
}

// hasEscape reports whether side has any legal reply on board, which holds
// the king on one branch square. Superposed friendly pieces are tried on
// each of their empty branch squares.
func (g *Game) hasEscape(side chess.Colour, king PieceID, board *chess.Board) bool {
	for i := 0; i < chess.BoardSize*chess.BoardSize; i++ {
		sq := chess.SquareFromIndex(i)
		p := board.Get(sq)
		if !chess.IsPiece(p) || chess.ExtractColour(p) != side {
			continue
		}
		if len(g.oracle.LegalDestinations(p, sq, board)) > 0 {
			return true
		}
	}

	for _, id := range g.registry.IDs() {
		p, _ := g.registry.Piece(id)
		if p.Owner != side || p.ID == king || p.Definite() {
			continue
		}
		for _, b := range p.Branches {
			if board.Occupied(b.Square) {
				continue
			}
			trial := board.Copy()
			trial.Set(b.Square, p.Coloured())
			if len(g.oracle.LegalDestinations(p.Coloured(), b.Square, trial)) > 0 {
				return true
			}
		}
	}
	return false
}
