// Package script lexes and parses quantum chess command scripts.
//
// A script is line oriented. Each non-blank line holds one command:
//
//	fen <placement> <side> ...      starting position, first command only
//	split <piece> <sq> <sq>
//	move <piece> <from> <to>
//	measure <piece>
//	entangle <piece> <from> <sq>...  a definite piece moves to the last square
//	status [w|b]
//	undo
//	show
//
// Text from '#' or ';' to the end of the line is a comment.
package script

// TokenType represents the type of a lexical token.
type TokenType int

const (
	EOFToken TokenType = iota
	WordToken
	CommentToken
	EOLToken
	ErrorToken
)

var tokenTypeNames = [...]string{
	EOFToken:     "EOF",
	WordToken:    "WORD",
	CommentToken: "COMMENT",
	EOLToken:     "EOL",
	ErrorToken:   "ERROR",
}

// String returns the string representation of a token type.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "UNKNOWN"
}

// Token is one lexical unit with its source line.
type Token struct {
	Type TokenType
	Text string
	Line int
}
