package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/quantum-chess-go/internal/config"
	"github.com/lgbarn/quantum-chess-go/internal/script"
)

// ResultWriter is the interface for writing replayed games.
type ResultWriter interface {
	// WriteResult writes a single replayed script.
	WriteResult(res *script.Result) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer. Batch writers write pending output here.
	Close() error
}

// NewResultWriter returns the writer for cfg.Output.Format.
func NewResultWriter(w io.Writer, cfg *config.Config) ResultWriter {
	if cfg.Output.Format == config.JSONFormat {
		return NewJSONWriter(w, cfg)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes results as text.
type TextWriter struct {
	w   io.Writer
	cfg *config.Config
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{w: w, cfg: cfg}
}

// WriteResult writes a result immediately.
func (tw *TextWriter) WriteResult(res *script.Result) error {
	writeResult(res, tw.cfg, tw.w)
	return nil
}

// Flush is a no-op; text is written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close closes the text writer.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes results in JSON format.
// It buffers results and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w       io.Writer
	cfg     *config.Config
	results []*JSONResult
	single  bool // write each result immediately instead of batching
}

// NewJSONWriter creates a batching JSON writer.
func NewJSONWriter(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{w: w, cfg: cfg}
}

// NewJSONWriterSingle creates a JSON writer that writes each result immediately.
func NewJSONWriterSingle(w io.Writer, cfg *config.Config) *JSONWriter {
	return &JSONWriter{w: w, cfg: cfg, single: true}
}

// WriteResult converts the result now, since the game may change later,
// and buffers or writes it.
func (jw *JSONWriter) WriteResult(res *script.Result) error {
	jr := ResultToJSON(res, jw.cfg)
	if jw.single {
		enc := json.NewEncoder(jw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(jr)
	}
	jw.results = append(jw.results, jr)
	return nil
}

// Flush writes all buffered results as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.results) == 0 {
		return nil
	}
	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Games: jw.results})
	jw.results = jw.results[:0]
	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
