package quantum

import "strings"

// PieceID is the stable identifier of a piece for the whole game, e.g. "wNb1".
type PieceID string

// MaxDepth is the number of splits a label can record.
const MaxDepth = 64

// Label identifies one node of a piece's probability tree. Bit i of Path
// records the side taken at split i: 0 for the first target, 1 for the
// second. Labels of different pieces are never related.
type Label struct {
	Piece PieceID
	Path  uint64
	Depth uint8
}

// RootLabel returns the label of an un-split piece.
func RootLabel(id PieceID) Label {
	return Label{Piece: id}
}

// Child returns the label of one side of a split of l. side is 0 or 1.
// Callers must rebase before Depth reaches MaxDepth.
func (l Label) Child(side int) Label {
	child := Label{Piece: l.Piece, Path: l.Path, Depth: l.Depth + 1}
	if side != 0 {
		child.Path |= 1 << l.Depth
	}
	return child
}

// IsDescendantOf reports whether l lies under a in the probability tree.
// Every label is a descendant of itself.
func (l Label) IsDescendantOf(a Label) bool {
	if l.Piece != a.Piece || l.Depth < a.Depth {
		return false
	}
	return l.Path&depthMask(a.Depth) == a.Path
}

// String renders the label as the piece id followed by one letter per split.
func (l Label) String() string {
	var sb strings.Builder
	sb.WriteString(string(l.Piece))
	for i := uint8(0); i < l.Depth; i++ {
		if l.Path&(1<<i) != 0 {
			sb.WriteByte('B')
		} else {
			sb.WriteByte('A')
		}
	}
	return sb.String()
}

func depthMask(depth uint8) uint64 {
	if depth >= MaxDepth {
		return ^uint64(0)
	}
	return 1<<depth - 1
}
