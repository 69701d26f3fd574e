package output

import (
	"encoding/json"

	"github.com/lgbarn/quantum-chess-go/internal/chess"
	"github.com/lgbarn/quantum-chess-go/internal/config"
	"github.com/lgbarn/quantum-chess-go/internal/quantum"
	"github.com/lgbarn/quantum-chess-go/internal/script"
)

// JSONResult represents a replayed script in JSON format.
type JSONResult struct {
	Script        string         `json:"script"`
	GameID        string         `json:"gameId"`
	StartFEN      string         `json:"startFEN,omitempty"`
	FinalFEN      string         `json:"finalFEN"`
	Ply           int            `json:"ply"`
	ToMove        string         `json:"toMove"`
	Status        string         `json:"status"`
	Corrupt       bool           `json:"corrupt,omitempty"`
	Events        []JSONEvent    `json:"events"`
	Pieces        []JSONPiece    `json:"pieces,omitempty"`
	Entanglements []JSONEntangle `json:"entanglements,omitempty"`
}

// JSONEvent represents one executed command.
type JSONEvent struct {
	Line      int      `json:"line"`
	Op        string   `json:"op"`
	Piece     string   `json:"piece,omitempty"`
	Squares   []string `json:"squares,omitempty"`
	Notation  string   `json:"notation"`
	Error     string   `json:"error,omitempty"`
	Declared  string   `json:"declared,omitempty"`
	Succeeded *bool    `json:"succeeded,omitempty"`
	Reason    string   `json:"reason,omitempty"`
	Captured  string   `json:"captured,omitempty"`
	Promoted  bool     `json:"promoted,omitempty"`
	Measured  string   `json:"measured,omitempty"`
	Changed   []string `json:"changed,omitempty"`
	Status    string   `json:"status,omitempty"`
}

// JSONPiece represents a piece and its branches.
type JSONPiece struct {
	ID       string       `json:"id"`
	Piece    string       `json:"piece"`
	Colour   string       `json:"colour"`
	Branches []JSONBranch `json:"branches"`
}

// JSONBranch represents one branch.
type JSONBranch struct {
	Label  string  `json:"label"`
	Square string  `json:"square"`
	Weight float64 `json:"weight"`
}

// JSONEntangle represents a ledger record.
type JSONEntangle struct {
	A        string `json:"a"`
	B        string `json:"b"`
	Prefix   string `json:"prefix"`
	Conflict string `json:"conflict"`
}

// JSONOutput holds multiple results for array output.
type JSONOutput struct {
	Games []*JSONResult `json:"games"`
}

// OutputResultJSON writes a single result as JSON to cfg.OutputFile.
func OutputResultJSON(res *script.Result, cfg *config.Config) error {
	enc := json.NewEncoder(cfg.OutputFile)
	enc.SetIndent("", "  ")
	return enc.Encode(ResultToJSON(res, cfg))
}

// ResultToJSON converts a replayed script to JSON form. Pieces are
// included when cfg asks for probabilities, records when it asks for
// entanglements.
func ResultToJSON(res *script.Result, cfg *config.Config) *JSONResult {
	g := res.Game
	jr := &JSONResult{
		Script:   res.Script.Name,
		GameID:   g.ID(),
		StartFEN: res.Script.FEN,
		FinalFEN: g.FEN(),
		Ply:      g.Ply(),
		ToMove:   g.ToMove().String(),
		Status:   g.CheckStatus(g.ToMove()).String(),
		Corrupt:  g.Corrupt(),
		Events:   make([]JSONEvent, 0, len(res.Events)),
	}
	for _, ev := range res.Events {
		jr.Events = append(jr.Events, eventToJSON(ev))
	}
	if cfg.Output.ShowProbabilities {
		for _, p := range g.Pieces() {
			jr.Pieces = append(jr.Pieces, pieceToJSON(p))
		}
	}
	if cfg.Output.ShowEntanglements {
		for _, rec := range g.Entanglements() {
			jr.Entanglements = append(jr.Entanglements, JSONEntangle{
				A:        string(rec.A),
				B:        string(rec.B),
				Prefix:   rec.Prefix.String(),
				Conflict: rec.Conflict.String(),
			})
		}
	}
	return jr
}

func eventToJSON(ev script.Event) JSONEvent {
	cmd := ev.Command
	je := JSONEvent{
		Line:     cmd.Line,
		Op:       cmd.Op.String(),
		Piece:    string(cmd.Piece),
		Notation: EventNotation(ev),
	}
	for _, sq := range cmd.Squares {
		je.Squares = append(je.Squares, sq.String())
	}
	if ev.Err != nil {
		je.Error = ev.Err.Error()
		return je
	}

	switch cmd.Op {
	case script.OpSplit, script.OpStatus:
		je.Status = ev.Status.String()
	case script.OpMove:
		m := ev.Move
		succeeded := m.Succeeded
		je.Declared = m.Declared.String()
		je.Succeeded = &succeeded
		je.Reason = m.Reason
		je.Captured = string(m.Captured)
		je.Promoted = m.Promoted
		je.Changed = idStrings(m.Changed)
		je.Status = ev.Status.String()
	case script.OpMeasure:
		je.Measured = ev.Measured.String()
	}
	return je
}

func pieceToJSON(p quantum.QuantumPiece) JSONPiece {
	jp := JSONPiece{
		ID:     string(p.ID),
		Piece:  pieceTypeName(p.Kind),
		Colour: p.Owner.String(),
	}
	for _, b := range p.Branches {
		jp.Branches = append(jp.Branches, JSONBranch{
			Label:  b.Label.String(),
			Square: b.Square.String(),
			Weight: b.Weight,
		})
	}
	return jp
}

func idStrings(ids []quantum.PieceID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// pieceTypeName returns the piece type as a string.
func pieceTypeName(p chess.Piece) string {
	switch p {
	case chess.Pawn:
		return "pawn"
	case chess.Knight:
		return "knight"
	case chess.Bishop:
		return "bishop"
	case chess.Rook:
		return "rook"
	case chess.Queen:
		return "queen"
	case chess.King:
		return "king"
	default:
		return ""
	}
}
