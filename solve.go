package gonewton

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Version of the gonewton module.
const Version = "0.1.0"

// Request is one user submission.
type Request struct {
	Function string  `json:"function" mapstructure:"function"`
	X0       float64 `json:"x0" mapstructure:"x0"`
	Epsilon  float64 `json:"epsilon" mapstructure:"epsilon"`
}

// Outcome is everything a display needs about one solve. Err is set when
// the solve failed, in which case Result and Plot are nil.
type Outcome struct {
	Request     Request
	Normalized  string
	LaTeX       string
	Convergence *ConvergenceReport
	Result      *RootResult
	Plot        *Plot
	Err         error
}

// OK reports whether the solve produced a result.
func (o Outcome) OK() bool { return o.Err == nil && o.Result != nil }

// Kind returns the failure tag, or KindNone on success.
func (o Outcome) Kind() ErrorKind { return KindOf(o.Err) }

// Draw renders the outcome onto p, retracting previous first. A failed
// outcome leaves p untouched.
func (o Outcome) Draw(p Plotter, previous []string) error {
	if !o.OK() || o.Plot == nil {
		return nil
	}
	return Draw(p, *o.Plot, previous)
}

type outcomeJSON struct {
	Function           string             `json:"function"`
	X0                 *float64           `json:"x0,omitempty"`
	Epsilon            *float64           `json:"epsilon,omitempty"`
	Normalized         string             `json:"normalized,omitempty"`
	LaTeX              string             `json:"latex,omitempty"`
	Convergence        *ConvergenceReport `json:"convergence,omitempty"`
	ConvergenceMessage string             `json:"convergence_message,omitempty"`
	Result             *RootResult        `json:"result,omitempty"`
	Plot               *Plot              `json:"plot,omitempty"`
	Error              string             `json:"error,omitempty"`
	Kind               ErrorKind          `json:"kind,omitempty"`
}

func finitePtr(v float64) *float64 {
	if !isFinite(v) {
		return nil
	}
	return &v
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	out := outcomeJSON{
		Function:    o.Request.Function,
		X0:          finitePtr(o.Request.X0),
		Epsilon:     finitePtr(o.Request.Epsilon),
		Normalized:  o.Normalized,
		LaTeX:       o.LaTeX,
		Convergence: o.Convergence,
		Result:      o.Result,
		Plot:        o.Plot,
	}
	if o.Convergence != nil {
		out.ConvergenceMessage = o.Convergence.Message()
	}
	if o.Err != nil {
		out.Error = o.Err.Error()
		out.Kind = o.Kind()
	}
	return json.Marshal(out)
}

// Display is a sink for finished outcomes. Escaping user text is the
// display's job.
type Display interface {
	Show(o Outcome) error
}

// Solver runs the full pipeline: validation, normalisation, the advisory
// convergence check, Newton iteration and plot building.
type Solver struct {
	logger *slog.Logger
	find   []Option
}

type SolverOption func(*Solver)

func WithLogger(l *slog.Logger) SolverOption {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFindOptions passes opts to every FindRoot call.
func WithFindOptions(opts ...Option) SolverOption {
	return func(s *Solver) { s.find = append(s.find, opts...) }
}

func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve runs one request to completion. Input errors are reported before
// anything is parsed.
func (s *Solver) Solve(req Request) Outcome {
	out := Outcome{Request: req}
	log := s.logger.With("function", req.Function, "x0", req.X0, "epsilon", req.Epsilon)

	fail := func(err error) Outcome {
		out.Err = err
		log.Warn("solve failed", "kind", KindOf(err), "error", err)
		return out
	}

	if strings.TrimSpace(req.Function) == "" {
		return fail(ErrEmptyFunction)
	}
	if err := validateNumeric(req.X0, req.Epsilon); err != nil {
		return fail(err)
	}

	text, err := Normalize(req.Function)
	if err != nil {
		return fail(err)
	}
	out.Normalized = text
	log.Debug("normalized", "text", text)

	f, err := Parse(text)
	if err != nil {
		return fail(err)
	}
	out.LaTeX = f.LaTeX()

	if rep, err := CheckConvergence(f, req.X0); err != nil {
		log.Debug("convergence check skipped", "error", err)
	} else {
		out.Convergence = &rep
		log.Debug("convergence check", "holds", rep.Holds)
	}

	res, err := FindRoot(f, req.X0, req.Epsilon, s.find...)
	if err != nil {
		return fail(err)
	}
	out.Result = &res
	plot := BuildPlot(out.LaTeX, res)
	out.Plot = &plot

	log.Info("solved", "root", res.Root, "iterations", res.Iterations, "termination", res.Termination)
	return out
}

// SolveAndShow solves req and hands the outcome to d.
func (s *Solver) SolveAndShow(req Request, d Display) (Outcome, error) {
	out := s.Solve(req)
	return out, d.Show(out)
}

func validateNumeric(x0, epsilon float64) error {
	if !isFinite(x0) {
		return fmt.Errorf("%w: x0 must be a finite number", ErrInvalidNumericInput)
	}
	if !isFinite(epsilon) || epsilon <= 0 {
		return fmt.Errorf("%w: epsilon must be a positive number", ErrInvalidNumericInput)
	}
	return nil
}

var leadingNumber = regexp.MustCompile(`^[+-]?(?:(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?|Infinity)`)

// parseLeadingFloat reads the longest numeric prefix of s, so "1.5abc" is
// 1.5 and "abc" is not a number.
func parseLeadingFloat(s string) (float64, bool) {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// ParseInputs converts the x0 and epsilon text fields and validates them.
func ParseInputs(x0, epsilon string) (float64, float64, error) {
	x, ok := parseLeadingFloat(x0)
	if !ok {
		return 0, 0, fmt.Errorf("%w: x0 %q is not a number", ErrInvalidNumericInput, x0)
	}
	eps, ok := parseLeadingFloat(epsilon)
	if !ok {
		return 0, 0, fmt.Errorf("%w: epsilon %q is not a number", ErrInvalidNumericInput, epsilon)
	}
	if err := validateNumeric(x, eps); err != nil {
		return 0, 0, err
	}
	return x, eps, nil
}
