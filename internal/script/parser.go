package script

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/errors"
	"github.com/lgbarn/quantum-chess-go/internal/quantum"
)

// Op names a script command.
type Op int

const (
	OpSplit Op = iota + 1
	OpMove
	OpMeasure
	OpEntangle
	OpStatus
	OpUndo
	OpShow
)

var opNames = map[string]Op{
	"split":    OpSplit,
	"move":     OpMove,
	"measure":  OpMeasure,
	"entangle": OpEntangle,
	"status":   OpStatus,
	"undo":     OpUndo,
	"show":     OpShow,
}

// String returns the keyword for the op.
func (o Op) String() string {
	for name, op := range opNames {
		if op == o {
			return name
		}
	}
	return "unknown"
}

// Command is one parsed script line.
type Command struct {
	Op      Op
	Piece   quantum.PieceID
	Squares []chess.Square
	// Side is set for status commands; HasSide is false when the line
	// names no side, meaning the side to move.
	Side    chess.Colour
	HasSide bool
	Line    int
	Text    string
}

// Script is a parsed command script.
type Script struct {
	Name     string
	FEN      string // empty means the standard start
	Commands []Command
	Comments []string
}

// Parser builds a Script from a token stream.
type Parser struct {
	lexer    *Lexer
	name     string
	tok      Token
	comments []string
}

// NewParser creates a parser reading from r. name labels errors.
func NewParser(r io.Reader, name string) *Parser {
	return &Parser{lexer: NewLexer(r), name: name}
}

// Parse reads a whole script from r.
func Parse(r io.Reader, name string) (*Script, error) {
	return NewParser(r, name).Parse()
}

// ParseString parses a script held in memory.
func ParseString(src, name string) (*Script, error) {
	return Parse(strings.NewReader(src), name)
}

func (p *Parser) nextToken() {
	p.tok = p.lexer.NextToken()
}

func (p *Parser) fail(format string, args ...interface{}) error {
	return &errors.ParseError{
		Err:  fmt.Errorf("%w: %s", errors.ErrScriptSyntax, fmt.Sprintf(format, args...)),
		File: p.name,
		Line: p.lexer.Line(),
		Text: strings.TrimSpace(p.lexer.LineText()),
	}
}

// Parse reads commands until EOF. The first error stops parsing.
func (p *Parser) Parse() (*Script, error) {
	s := &Script{Name: p.name}
	for {
		p.nextToken()
		switch p.tok.Type {
		case EOFToken:
			s.Comments = p.comments
			return s, nil
		case EOLToken:
			continue
		case CommentToken:
			p.comments = append(p.comments, p.tok.Text)
			continue
		case ErrorToken:
			return nil, p.fail("unexpected character %q", p.tok.Text)
		}

		keyword := strings.ToLower(p.tok.Text)
		if keyword == "fen" {
			if len(s.Commands) > 0 || s.FEN != "" {
				return nil, p.fail("fen must precede all commands")
			}
			s.FEN = p.lexer.Rest()
			if s.FEN == "" {
				return nil, p.fail("fen needs a position")
			}
			p.nextToken()
			continue
		}

		op, ok := opNames[keyword]
		if !ok {
			return nil, p.fail("unknown command %q", p.tok.Text)
		}
		cmd, err := p.parseCommand(op)
		if err != nil {
			return nil, err
		}
		s.Commands = append(s.Commands, cmd)
	}
}

// parseCommand collects the arguments of op up to the end of the line.
func (p *Parser) parseCommand(op Op) (Command, error) {
	cmd := Command{Op: op, Line: p.lexer.Line(), Text: strings.TrimSpace(p.lexer.LineText())}

	var args []string
	for {
		p.nextToken()
		if p.tok.Type == EOLToken || p.tok.Type == EOFToken {
			break
		}
		if p.tok.Type == CommentToken {
			p.comments = append(p.comments, p.tok.Text)
			continue
		}
		if p.tok.Type == ErrorToken {
			return cmd, p.fail("unexpected character %q", p.tok.Text)
		}
		args = append(args, p.tok.Text)
	}

	switch op {
	case OpSplit, OpMove:
		if len(args) != 3 {
			return cmd, p.fail("%s takes a piece and two squares", op)
		}
	case OpMeasure:
		if len(args) != 1 {
			return cmd, p.fail("measure takes a piece")
		}
	case OpEntangle:
		if len(args) < 3 {
			return cmd, p.fail("entangle takes a piece, a source square and at least one path square")
		}
	case OpStatus:
		if len(args) > 1 {
			return cmd, p.fail("status takes at most a side")
		}
		if len(args) == 1 {
			switch strings.ToLower(args[0]) {
			case "w", "white":
				cmd.Side = chess.White
			case "b", "black":
				cmd.Side = chess.Black
			default:
				return cmd, p.fail("unknown side %q", args[0])
			}
			cmd.HasSide = true
		}
		return cmd, nil
	case OpUndo, OpShow:
		if len(args) != 0 {
			return cmd, p.fail("%s takes no arguments", op)
		}
		return cmd, nil
	}

	cmd.Piece = quantum.PieceID(args[0])
	for _, a := range args[1:] {
		sq, err := chess.ParseSquare(a)
		if err != nil {
			return cmd, p.fail("%v", err)
		}
		cmd.Squares = append(cmd.Squares, sq)
	}
	return cmd, nil
}
