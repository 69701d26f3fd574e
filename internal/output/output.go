// Package output renders replayed quantum chess games as text or JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/config"
	"github.com/lgbarn/quantum-chess-go/internal/quantum"
	"github.com/lgbarn/quantum-chess-go/internal/rules"
	"github.com/lgbarn/quantum-chess-go/internal/script"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a word, preceded by a space or a line break as needed.
func (o *OutputWriter) Write(s string) {
	if s == "" {
		return
	}
	if o.needsSpace {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}
	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine ends the current line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// OutputResult writes a replayed script as text to cfg.OutputFile.
func OutputResult(res *script.Result, cfg *config.Config) {
	writeResult(res, cfg, cfg.OutputFile)
}

func writeResult(res *script.Result, cfg *config.Config, w io.Writer) {
	g := res.Game
	fmt.Fprintf(w, "[Script %q]\n", res.Script.Name)
	fmt.Fprintf(w, "[Game %q]\n", g.ID())
	if res.Script.FEN != "" {
		fmt.Fprintf(w, "[StartFEN %q]\n", res.Script.FEN)
	}
	fmt.Fprintf(w, "[FinalFEN %q]\n", g.FEN())
	fmt.Fprintf(w, "[Ply \"%d\"]\n", g.Ply())
	fmt.Fprintf(w, "[Status %q]\n", g.CheckStatus(g.ToMove()))
	if g.Corrupt() {
		fmt.Fprintln(w, `[Corrupt "true"]`)
	}
	fmt.Fprintln(w)

	ow := NewOutputWriter(w, int(cfg.Output.MaxLineLength))
	for _, ev := range res.Events {
		ow.Write(EventNotation(ev))
	}
	ow.NewLine()

	for _, ev := range res.Events {
		if ev.Err != nil {
			fmt.Fprintf(w, "; line %d: %v\n", ev.Command.Line, ev.Err)
		}
		if cfg.Output.ShowMeasurements && ev.Move != nil {
			for _, m := range ev.Move.Measurements {
				fmt.Fprintf(w, "; line %d: %s collapsed to %s\n", ev.Command.Line, m.Label, m.Square)
			}
		}
	}

	if cfg.Output.ShowBoard {
		fmt.Fprintln(w)
		fmt.Fprint(w, BoardDiagram(g.Snapshot()))
	}
	if cfg.Output.ShowProbabilities {
		fmt.Fprintln(w)
		fmt.Fprint(w, ProbabilityListing(g.Occupancy()))
	}
	if cfg.Output.ShowEntanglements {
		records := g.Entanglements()
		if len(records) > 0 {
			fmt.Fprintln(w)
			for _, rec := range records {
				fmt.Fprintln(w, EntanglementLine(rec))
			}
		}
	}
	fmt.Fprintln(w)
}

// EventNotation renders one executed command compactly:
//
//	wNb1^a3/c3    split
//	wPe2:e2-e4    move; x for a capture declaration, ? when it failed
//	wNb1=a3       measure
//	wNb1~b5,c7    entangle
//
// A trailing + or # gives the check status after a split or move.
func EventNotation(ev script.Event) string {
	cmd := ev.Command
	var s string
	switch cmd.Op {
	case script.OpSplit:
		s = fmt.Sprintf("%s^%s/%s", cmd.Piece, cmd.Squares[0], cmd.Squares[1])
	case script.OpMove:
		sep := "-"
		if ev.Move != nil && ev.Move.Declared == quantum.Capture {
			sep = "x"
		}
		s = fmt.Sprintf("%s:%s%s%s", cmd.Piece, cmd.Squares[0], sep, cmd.Squares[1])
		if ev.Move != nil {
			if !ev.Move.Succeeded {
				s += "?"
			} else if ev.Move.Promoted {
				s += "=Q"
			}
		}
	case script.OpMeasure:
		s = fmt.Sprintf("%s=%s", cmd.Piece, ev.Measured)
		if ev.Err != nil {
			s = fmt.Sprintf("%s=?", cmd.Piece)
		}
	case script.OpEntangle:
		names := make([]string, 0, len(cmd.Squares)-1)
		for _, sq := range cmd.Squares[1:] {
			names = append(names, sq.String())
		}
		s = fmt.Sprintf("%s~%s", cmd.Piece, strings.Join(names, ","))
	case script.OpStatus:
		s = "status:" + ev.Status.String()
	default:
		s = cmd.Op.String()
	}
	if ev.Err != nil {
		return "{" + s + "}"
	}
	switch ev.Status {
	case quantum.StatusCheck:
		if cmd.Op != script.OpStatus {
			s += "+"
		}
	case quantum.StatusCheckmate:
		if cmd.Op != script.OpStatus {
			s += "#"
		}
	}
	return s
}

// BoardDiagram draws the classical snapshot with rank 8 at the top.
func BoardDiagram(board *chess.Board) string {
	var sb strings.Builder
	for rank := chess.Rank(chess.LastRank); rank >= chess.FirstRank; rank-- {
		sb.WriteByte(byte(rank))
		for col := chess.Col(chess.FirstCol); col <= chess.LastCol; col++ {
			sb.WriteByte(' ')
			p := board.Get(chess.Sq(col, rank))
			if chess.IsPiece(p) {
				sb.WriteByte(rules.PieceLetter(p))
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// ProbabilityListing writes one line per square that any branch touches:
//
//	c3 wNb1B 0.5000
func ProbabilityListing(listing []quantum.SquareOccupancy) string {
	var sb strings.Builder
	for _, sq := range listing {
		sb.WriteString(sq.Square.String())
		for i, occ := range sq.Occupants {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, " %s %.4f", occ.Label, occ.Weight)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// EntanglementLine describes one ledger record.
func EntanglementLine(rec quantum.Record) string {
	return fmt.Sprintf("%s excludes %s", rec.Prefix, rec.Conflict)
}
