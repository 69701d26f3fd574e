package script

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/errors"
	"github.com/lgbarn/quantum-chess-go/internal/quantum"
	"github.com/lgbarn/quantum-chess-go/internal/rules"
)

// Event is the result of executing one command.
type Event struct {
	Command   Command
	Split     *quantum.SplitResult
	Move      *quantum.MoveOutcome
	Measured  chess.Square
	Entangled []quantum.Record
	Status    quantum.Status
	// FEN and Occupancy are captured for show commands.
	FEN       string
	Occupancy []quantum.SquareOccupancy
	// Err holds a rejected command. The game is unchanged by it.
	Err error
}

// Result is a replayed script.
type Result struct {
	Script *Script
	Game   *quantum.Game
	Events []Event
}

// Rejected counts the commands that returned an error.
func (r *Result) Rejected() int {
	n := 0
	for _, ev := range r.Events {
		if ev.Err != nil {
			n++
		}
	}
	return n
}

// Run replays s on a new game built with opts. Rejected commands are
// recorded and skipped. A corrupt state ends the replay with an error;
// the partial result is still returned.
func Run(s *Script, log zerolog.Logger, opts ...quantum.Option) (*Result, error) {
	fen := s.FEN
	if fen == "" {
		fen = rules.InitialFEN
	}
	g, err := quantum.NewGameFromFEN(fen, opts...)
	if err != nil {
		return nil, &errors.ParseError{Err: err, File: s.Name, Text: fen}
	}

	res := &Result{Script: s, Game: g}
	for _, cmd := range s.Commands {
		ev := Exec(g, cmd)
		res.Events = append(res.Events, ev)
		if ev.Err == nil {
			continue
		}
		log.Debug().Str("script", s.Name).Int("line", cmd.Line).Err(ev.Err).Msg("command rejected")
		if errors.Is(ev.Err, errors.ErrCorruptState) {
			return res, fmt.Errorf("%s:%d: %w", s.Name, cmd.Line, ev.Err)
		}
	}
	return res, nil
}

// Exec executes one command on g.
func Exec(g *quantum.Game, cmd Command) Event {
	ev := Event{Command: cmd}
	switch cmd.Op {
	case OpSplit:
		ev.Split, ev.Err = g.Split(cmd.Piece, cmd.Squares[0], cmd.Squares[1])
		if ev.Err == nil {
			ev.Status = ev.Split.Status
		}
	case OpMove:
		ev.Move, ev.Err = g.MakeMove(cmd.Piece, cmd.Squares[0], cmd.Squares[1])
		if ev.Err == nil {
			ev.Status = ev.Move.Status
		}
	case OpMeasure:
		ev.Measured, ev.Err = g.Measure(cmd.Piece)
	case OpEntangle:
		ev.Entangled, ev.Err = g.AttemptEntangle(cmd.Piece, cmd.Squares[0], cmd.Squares[1:])
	case OpStatus:
		side := g.ToMove()
		if cmd.HasSide {
			side = cmd.Side
		}
		ev.Status = g.CheckStatus(side)
	case OpUndo:
		ev.Err = g.Undo()
	case OpShow:
		ev.FEN = g.FEN()
		ev.Occupancy = g.Occupancy()
	default:
		ev.Err = errors.Wrapf(errors.ErrScriptSyntax, "op %d", cmd.Op)
	}
	return ev
}
