// Package errors provides sentinel errors and error types for the quantum
// chess engine. Validation failures are recoverable and leave game state
// untouched; ErrCorruptState is fatal for the game that produced it.
// Inspect with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrIllegalSplit indicates a rejected split (bad targets, superposed piece).
	ErrIllegalSplit = errors.New("illegal split")

	// ErrIllegalMove indicates a move that violates the rules or the turn order.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvariantViolation indicates a branch-set update that would break
	// weight normalization or square uniqueness.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrCorruptState indicates an internal consistency failure.
	ErrCorruptState = errors.New("corrupt state")

	// ErrUnknownPiece indicates a piece id that is not in the registry.
	ErrUnknownPiece = errors.New("unknown piece")

	// ErrInvalidSquare indicates malformed or off-board square notation.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrScriptSyntax indicates a malformed command script line.
	ErrScriptSyntax = errors.New("script syntax error")

	// ErrNothingToUndo indicates an undo request on a game with no history.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// MoveError wraps errors with game context: which game, at which ply, which
// operation on which piece. It implements the error interface and supports
// unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err    error  // The underlying error
	GameID string // Game instance identifier (if known)
	Ply    int    // 1-based ply at which the operation was attempted (0 if not applicable)
	Op     string // Operation name: split, move, measure, entangle
	Piece  string // Piece id (if applicable)
	From   string // Source square (if applicable)
	To     string // Destination square(s) (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.GameID != "" {
		parts = append(parts, "game "+e.GameID)
	}
	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Op != "" {
		op := e.Op
		if e.Piece != "" {
			op += " " + e.Piece
		}
		if e.From != "" || e.To != "" {
			op += fmt.Sprintf(" %s->%s", e.From, e.To)
		}
		parts = append(parts, op)
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a script parsing error with file location context.
type ParseError struct {
	Err  error  // The underlying error
	File string // Source file name
	Line int    // Line number (1-based)
	Text string // The offending line
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	loc := e.File
	if loc == "" {
		loc = "<input>"
	}
	if e.Line > 0 {
		loc += fmt.Sprintf(":%d", e.Line)
	}
	msg := loc
	if e.Text != "" {
		msg += fmt.Sprintf(": %q", e.Text)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
