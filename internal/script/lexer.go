package script

import (
	"bufio"
	"io"
	"strings"
)

// Lexer tokenizes script input one line at a time.
type Lexer struct {
	reader  *bufio.Reader
	line    string
	pos     int
	lineNum int
	eof     bool
	pending bool // a line is loaded and its EOL not yet returned
}

// NewLexer creates a lexer over r.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{reader: bufio.NewReader(r)}
}

// Line returns the current 1-based line number.
func (l *Lexer) Line() int {
	return l.lineNum
}

// LineText returns the current line without its terminator.
func (l *Lexer) LineText() string {
	return strings.TrimRight(l.line, "\r\n")
}

// Rest consumes and returns the remainder of the current line, trimmed and
// with any comment removed.
func (l *Lexer) Rest() string {
	rest := l.line[l.pos:]
	if i := strings.IndexAny(rest, "#;"); i >= 0 {
		rest = rest[:i]
	}
	l.pos = len(l.line)
	return strings.TrimSpace(rest)
}

func (l *Lexer) nextLine() bool {
	if l.eof {
		return false
	}
	line, err := l.reader.ReadString('\n')
	if err != nil {
		l.eof = true
		if line == "" {
			return false
		}
	}
	l.line = line
	l.pos = 0
	l.lineNum++
	l.pending = true
	return true
}

// NextToken returns the next token. Every loaded line ends with an EOL
// token, including the last one when it has no newline.
func (l *Lexer) NextToken() Token {
	for {
		if !l.pending && !l.nextLine() {
			return Token{Type: EOFToken, Line: l.lineNum}
		}

		for l.pos < len(l.line) && isSpace(l.line[l.pos]) {
			l.pos++
		}
		if l.pos >= len(l.line) {
			l.pending = false
			return Token{Type: EOLToken, Line: l.lineNum}
		}

		c := l.line[l.pos]
		switch {
		case c == '#' || c == ';':
			text := strings.TrimSpace(l.line[l.pos+1:])
			l.pos = len(l.line)
			return Token{Type: CommentToken, Text: text, Line: l.lineNum}
		case isWordChar(c):
			start := l.pos
			for l.pos < len(l.line) && isWordChar(l.line[l.pos]) {
				l.pos++
			}
			return Token{Type: WordToken, Text: l.line[start:l.pos], Line: l.lineNum}
		default:
			l.pos++
			return Token{Type: ErrorToken, Text: string(c), Line: l.lineNum}
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// isWordChar accepts piece ids, squares, keywords and FEN placement text.
func isWordChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '/' || c == '-' || c == '_' || c == ',':
		return true
	}
	return false
}
