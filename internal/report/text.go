package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/njchilds90/gonewton"
)

// TextWriter prints a few status lines. Colour is applied only when the
// output is a terminal that supports it.
type TextWriter struct {
	out *termenv.Output
}

func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{out: termenv.NewOutput(output)}
}

func (w *TextWriter) style(s, color string) string {
	return w.out.String(s).Foreground(w.out.Color(color)).String()
}

func (w *TextWriter) Show(o gonewton.Outcome) error {
	var b strings.Builder
	if !o.OK() {
		fmt.Fprintf(&b, "%s %s (%s)\n", w.style("error:", "1"), o.Err, o.Kind())
		_, err := io.WriteString(w.out, b.String())
		return err
	}

	if c := o.Convergence; c != nil {
		color := "2"
		if !c.Holds {
			color = "3"
		}
		fmt.Fprintln(&b, w.style(c.Message(), color))
	}
	res := o.Result
	fmt.Fprintf(&b, "f(x):        %s\n", o.Normalized)
	fmt.Fprintf(&b, "x0:          %g\n", o.Request.X0)
	fmt.Fprintf(&b, "root:        x ≈ %s\n", w.style(rootText(res.Root), "6"))
	fmt.Fprintf(&b, "f(root):     %s\n", sciText(res.FAtRoot))
	fmt.Fprintf(&b, "iterations:  %d\n", res.Iterations)
	if res.Termination == gonewton.MaxIterationsReached {
		fmt.Fprintln(&b, w.style("warning: iteration ceiling reached before tolerance was met", "3"))
	}
	_, err := io.WriteString(w.out, b.String())
	return err
}
