package report

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/nao1215/markdown"

	"github.com/njchilds90/gonewton"
)

// RenderFunc turns markdown into its final form, e.g. ANSI for a terminal.
type RenderFunc func(string) (string, error)

// NewGlamourRenderer returns a RenderFunc backed by glamour. An empty style
// picks light or dark from the terminal background.
func NewGlamourRenderer(style string, width int) (RenderFunc, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

// MarkdownWriter writes a GitHub-flavoured markdown report.
type MarkdownWriter struct {
	output io.Writer
	render RenderFunc
}

// NewMarkdownWriter creates a MarkdownWriter. A nil render writes raw
// markdown.
func NewMarkdownWriter(output io.Writer, render RenderFunc) *MarkdownWriter {
	return &MarkdownWriter{output: output, render: render}
}

func (w *MarkdownWriter) Show(o gonewton.Outcome) error {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1("Newton–Raphson result")
	md.PlainText("")
	w.writeInputs(md, o)

	if !o.OK() {
		md.Cautionf("%s (%s)", escape(o.Err.Error()), o.Kind())
		md.PlainText("")
		return w.flush(md, &buf)
	}

	w.writeConvergence(md, o)
	w.writeResult(md, o)
	w.writeTrace(md, o.Result.Trace)
	return w.flush(md, &buf)
}

func (w *MarkdownWriter) flush(md *markdown.Markdown, buf *bytes.Buffer) error {
	if err := md.Build(); err != nil {
		return err
	}
	out := buf.String()
	if w.render != nil {
		rendered, err := w.render(out)
		if err != nil {
			return fmt.Errorf("report: render markdown: %w", err)
		}
		out = rendered
	}
	_, err := io.WriteString(w.output, out)
	return err
}

func (w *MarkdownWriter) writeInputs(md *markdown.Markdown, o gonewton.Outcome) {
	rows := [][]string{
		{"Input", code(o.Request.Function)},
	}
	if o.Normalized != "" {
		rows = append(rows, []string{"f(x)", code(o.Normalized)})
	}
	rows = append(rows,
		[]string{"x₀", strconv.FormatFloat(o.Request.X0, 'g', -1, 64)},
		[]string{"ε", strconv.FormatFloat(o.Request.Epsilon, 'g', -1, 64)},
	)
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeConvergence(md *markdown.Markdown, o gonewton.Outcome) {
	if o.Convergence == nil {
		return
	}
	if o.Convergence.Holds {
		md.Note(escape(o.Convergence.Message()))
	} else {
		md.Warningf("%s", escape(o.Convergence.Message()))
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeResult(md *markdown.Markdown, o gonewton.Outcome) {
	res := o.Result
	md.H2("Root")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"x", rootText(res.Root)},
			{"f(x)", sciText(res.FAtRoot)},
			{"Iterations", strconv.Itoa(res.Iterations)},
			{"Termination", res.Termination.String()},
		},
	})
	md.PlainText("")
	if res.Termination == gonewton.MaxIterationsReached {
		md.Warningf("Iteration ceiling reached after %d steps; the estimate did not meet ε.", res.Iterations)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeTrace(md *markdown.Markdown, trace []gonewton.IterationPoint) {
	md.H2("Iterations")
	md.PlainText("")
	rows := make([][]string, len(trace))
	for i, p := range trace {
		rows[i] = []string{strconv.Itoa(i), rootText(p.X), sciText(p.FX)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"n", "xₙ", "f(xₙ)"},
		Rows:   rows,
	})
	md.PlainText("")
}

// escape keeps user text from breaking table and alert markup.
func escape(s string) string {
	r := strings.NewReplacer("|", `\|`, "<", "&lt;", ">", "&gt;", "\n", " ")
	return r.Replace(s)
}

func code(s string) string {
	return "`" + strings.ReplaceAll(escape(s), "`", "'") + "`"
}
