package report

import (
	"encoding/json"
	"io"

	"github.com/njchilds90/gonewton"
)

// JSONWriter writes each outcome as one JSON document.
type JSONWriter struct {
	output io.Writer
	indent string
}

type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint indents output by two spaces.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) { w.indent = "  " }
}

func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{output: output}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *JSONWriter) Show(o gonewton.Outcome) error {
	enc := json.NewEncoder(w.output)
	if w.indent != "" {
		enc.SetIndent("", w.indent)
	}
	return enc.Encode(o)
}
