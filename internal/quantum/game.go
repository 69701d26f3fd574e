// Package quantum implements the quantum chess state engine: superposed
// pieces, the entanglement ledger, measurement with collapse propagation,
// move resolution and check evaluation.
//
// A Game is safe for concurrent use; operations on one game are serialized
// and each runs to completion or leaves the game unchanged.
package quantum

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/errors"
	"github.com/lgbarn/quantum-chess-go/internal/rules"
)

// Game is one quantum chess game instance.
type Game struct {
	mu sync.Mutex

	id      string
	oracle  Oracle
	rng     RandSource
	log     zerolog.Logger
	epsilon float64

	registry   *Registry
	ledger     *Ledger
	toMove     chess.Colour
	moveNumber uint
	ply        int

	history []savedState
	corrupt bool
}

// savedState is a deep copy of everything an operation may change.
type savedState struct {
	registry   *Registry
	ledger     *Ledger
	toMove     chess.Colour
	moveNumber uint
	ply        int
}

// NewGame creates a game in the standard starting position.
func NewGame(opts ...Option) *Game {
	g, _ := NewGameFromFEN(rules.InitialFEN, opts...)
	return g
}

// NewGameFromFEN creates a game whose pieces are all definite on the squares
// given by fen. Piece ids are colour, piece letter and starting square, e.g.
// "wNb1".
func NewGameFromFEN(fen string, opts ...Option) (*Game, error) {
	board, err := rules.NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}

	g := &Game{
		id:      uuid.NewString(),
		oracle:  rules.NewClassical(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     zerolog.Nop(),
		epsilon: DefaultEpsilon,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.registry = NewRegistry(g.epsilon)
	g.ledger = NewLedger()
	g.toMove = board.ToMove
	g.moveNumber = board.MoveNumber

	for i := 0; i < chess.BoardSize*chess.BoardSize; i++ {
		sq := chess.SquareFromIndex(i)
		p := board.Get(sq)
		if !chess.IsPiece(p) {
			continue
		}
		if err := g.registry.Add(StartingID(p, sq), chess.ExtractPiece(p), chess.ExtractColour(p), sq); err != nil {
			return nil, err
		}
	}

	g.log.Debug().Str("game", g.id).Str("fen", fen).Int("pieces", g.registry.Len()).Msg("game created")
	return g, nil
}

// StartingID builds the id of a coloured piece first seen on sq.
func StartingID(colouredPiece chess.Piece, sq chess.Square) PieceID {
	kind := chess.ExtractPiece(colouredPiece)
	return PieceID(fmt.Sprintf("%c%c%s", chess.ExtractColour(colouredPiece).Letter(), kind.Letter(), sq))
}

// ID returns the game instance identifier.
func (g *Game) ID() string {
	return g.id
}

// ToMove returns the side whose turn it is.
func (g *Game) ToMove() chess.Colour {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.toMove
}

// Ply returns the number of turns played.
func (g *Game) Ply() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ply
}

// Corrupt reports whether the game hit an internal consistency failure.
func (g *Game) Corrupt() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.corrupt
}

// Piece returns a copy of the piece record.
func (g *Game) Piece(id PieceID) (QuantumPiece, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.registry.Piece(id)
	if !ok {
		return QuantumPiece{}, errors.Wrap(errors.ErrUnknownPiece, string(id))
	}
	return *p.clone(), nil
}

// Pieces returns copies of all pieces ordered by id.
func (g *Game) Pieces() []QuantumPiece {
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := g.registry.IDs()
	pieces := make([]QuantumPiece, 0, len(ids))
	for _, id := range ids {
		p, _ := g.registry.Piece(id)
		pieces = append(pieces, *p.clone())
	}
	return pieces
}

// Branches returns the active branches of a piece.
func (g *Game) Branches(id PieceID) ([]Branch, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.registry.GetBranches(id)
}

// Entanglements returns the current ledger records.
func (g *Game) Entanglements() []Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ledger.Records()
}

// Snapshot returns the classical board: definite pieces only.
func (g *Game) Snapshot() *chess.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// FEN renders the classical snapshot.
func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return rules.BoardToFEN(g.snapshot())
}

// Undo restores the state before the last accepted action.
func (g *Game) Undo() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.corrupt {
		return g.wrap(errors.ErrCorruptState, "undo", "", chess.NoSquare, "")
	}
	if len(g.history) == 0 {
		return g.wrap(errors.ErrNothingToUndo, "undo", "", chess.NoSquare, "")
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.restoreState(last)
	g.log.Debug().Str("game", g.id).Int("ply", g.ply).Msg("undo")
	return nil
}

func (g *Game) snapshot() *chess.Board {
	board := g.registry.Snapshot()
	board.ToMove = g.toMove
	board.MoveNumber = g.moveNumber
	return board
}

func (g *Game) saveState() savedState {
	return savedState{
		registry:   g.registry.Clone(),
		ledger:     g.ledger.Clone(),
		toMove:     g.toMove,
		moveNumber: g.moveNumber,
		ply:        g.ply,
	}
}

func (g *Game) restoreState(s savedState) {
	g.registry = s.registry
	g.ledger = s.ledger
	g.toMove = s.toMove
	g.moveNumber = s.moveNumber
	g.ply = s.ply
}

// atomically runs fn against the live state. fn reports whether it changed
// anything. On error the state is rolled back; ErrCorruptState additionally
// poisons the game. On a successful change the prior state is pushed for
// Undo.
func (g *Game) atomically(fn func() (bool, error)) error {
	if g.corrupt {
		return errors.ErrCorruptState
	}
	saved := g.saveState()
	changed, err := fn()
	if err != nil {
		g.restoreState(saved)
		if errors.Is(err, errors.ErrCorruptState) {
			g.corrupt = true
			g.log.Error().Err(err).Str("game", g.id).Int("ply", g.ply).Msg("game state corrupt")
		}
		return err
	}
	if changed {
		g.history = append(g.history, saved)
	}
	return nil
}

// endTurn passes the move to the other side.
func (g *Game) endTurn() {
	if g.toMove == chess.Black {
		g.moveNumber++
	}
	g.toMove = g.toMove.Opposite()
	g.ply++
}

func (g *Game) wrap(err error, op string, id PieceID, from chess.Square, to string) error {
	moveErr := &errors.MoveError{
		Err:    err,
		GameID: g.id,
		Ply:    g.ply + 1,
		Op:     op,
		Piece:  string(id),
		To:     to,
	}
	if from.Valid() {
		moveErr.From = from.String()
	}
	return moveErr
}
