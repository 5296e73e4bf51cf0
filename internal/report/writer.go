package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/njchilds90/gonewton"
)

// Format names an output format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatText     Format = "text"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("report: unknown format")

// ParseFormat accepts markdown, md, json, text or plain, in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "text", "plain":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// New returns the Display for format writing to output. render is only
// used by the markdown format and may be nil.
func New(format Format, output io.Writer, render RenderFunc) gonewton.Display {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	case FormatText:
		return NewTextWriter(output)
	}
	return NewMarkdownWriter(output, render)
}

// rootText formats a root the way every writer shows it.
func rootText(v float64) string { return fmt.Sprintf("%.10f", v) }

// sciText formats residuals and derivative values.
func sciText(v float64) string { return fmt.Sprintf("%.3e", v) }
