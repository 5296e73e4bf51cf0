package gonewton

import (
	"fmt"
	"math"
)

const (
	// DefaultMaxIterations is the iteration ceiling of FindRoot.
	DefaultMaxIterations = 100
	// DefaultDerivativeFloor is the smallest |f'(x)| FindRoot will divide by.
	DefaultDerivativeFloor = 1e-14
)

// Termination says why FindRoot stopped without failing.
type Termination int

const (
	Converged Termination = iota
	MaxIterationsReached
)

func (t Termination) String() string {
	switch t {
	case Converged:
		return "converged"
	case MaxIterationsReached:
		return "max_iterations_reached"
	}
	return fmt.Sprintf("termination(%d)", int(t))
}

func (t Termination) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// IterationPoint is one trace entry. Index 0 of a trace is the initial guess.
type IterationPoint struct {
	X  float64 `json:"x"`
	FX float64 `json:"fx"`
}

// RootResult is a finished Newton run. len(Trace) == Iterations+1 and
// Root == Trace[len(Trace)-1].X.
type RootResult struct {
	Root        float64          `json:"root"`
	FAtRoot     float64          `json:"f_at_root"`
	Iterations  int              `json:"iterations"`
	Trace       []IterationPoint `json:"trace"`
	Termination Termination      `json:"termination"`
}

// Option configures FindRoot.
type Option func(*finder)

// WithMaxIterations sets the iteration ceiling. Values below 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(f *finder) {
		if n > 0 {
			f.maxIter = n
		}
	}
}

// WithDerivativeFloor sets the near-zero derivative threshold. Non-positive
// or non-finite values are ignored.
func WithDerivativeFloor(v float64) Option {
	return func(f *finder) {
		if v > 0 && !math.IsInf(v, 0) {
			f.floor = v
		}
	}
}

// WithObserver registers fn to be called for each trace point once f has
// been evaluated there, in trace order.
func WithObserver(fn func(step int, p IterationPoint)) Option {
	return func(f *finder) { f.observe = fn }
}

type finder struct {
	maxIter int
	floor   float64
	observe func(int, IterationPoint)
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// FindRoot runs Newton–Raphson from x0 until two successive estimates differ
// by less than epsilon or the iteration ceiling is reached. Reaching the
// ceiling is not an error. Failures during iteration are *IterationError
// values wrapping ErrEvaluation, ErrNonFinite or ErrNearZeroDerivative.
func FindRoot(f *Expression, x0, epsilon float64, opts ...Option) (RootResult, error) {
	if !isFinite(epsilon) || epsilon <= 0 {
		return RootResult{}, fmt.Errorf("%w: epsilon must be a positive finite number, got %g", ErrInvalidNumericInput, epsilon)
	}
	if !isFinite(x0) {
		return RootResult{}, fmt.Errorf("%w: x0 must be finite, got %g", ErrInvalidNumericInput, x0)
	}
	cfg := finder{maxIter: DefaultMaxIterations, floor: DefaultDerivativeFloor}
	for _, opt := range opts {
		opt(&cfg)
	}

	df, err := f.Derivative(1)
	if err != nil {
		return RootResult{}, err
	}

	xn := x0
	trace := make([]IterationPoint, 1, 8)
	trace[0] = IterationPoint{X: x0}
	n := 0
	for n < cfg.maxIter {
		fx, err := f.Evaluate(xn)
		if err != nil {
			return RootResult{}, &IterationError{Iteration: n, X: xn, Err: err}
		}
		fpx, err := df.Evaluate(xn)
		if err != nil {
			return RootResult{}, &IterationError{Iteration: n, X: xn, Err: err}
		}
		trace[n].FX = fx
		cfg.notify(n, trace[n])
		if !isFinite(fx) || !isFinite(fpx) {
			return RootResult{}, &IterationError{Iteration: n, X: xn,
				Err: fmt.Errorf("%w: f = %g, f' = %g", ErrNonFinite, fx, fpx)}
		}
		if math.Abs(fpx) < cfg.floor {
			return RootResult{}, &IterationError{Iteration: n, X: xn,
				Err: fmt.Errorf("%w: f'(%g) = %g", ErrNearZeroDerivative, xn, fpx)}
		}

		xn1 := xn - fx/fpx
		trace = append(trace, IterationPoint{X: xn1})
		n++
		if math.Abs(xn1-xn) < epsilon {
			return cfg.finish(f, trace, n, Converged)
		}
		xn = xn1
	}
	return cfg.finish(f, trace, cfg.maxIter, MaxIterationsReached)
}

func (cfg *finder) notify(step int, p IterationPoint) {
	if cfg.observe != nil {
		cfg.observe(step, p)
	}
}

// finish fills f at the final estimate, which the loop never evaluated.
func (cfg *finder) finish(f *Expression, trace []IterationPoint, n int, t Termination) (RootResult, error) {
	last := &trace[len(trace)-1]
	if !isFinite(last.X) {
		return RootResult{}, &IterationError{Iteration: n, X: last.X,
			Err: fmt.Errorf("%w: estimate diverged to %g", ErrNonFinite, last.X)}
	}
	fx, err := f.Evaluate(last.X)
	if err != nil {
		return RootResult{}, &IterationError{Iteration: n, X: last.X, Err: err}
	}
	if !isFinite(fx) {
		return RootResult{}, &IterationError{Iteration: n, X: last.X,
			Err: fmt.Errorf("%w: f = %g at the final estimate", ErrNonFinite, fx)}
	}
	last.FX = fx
	cfg.notify(len(trace)-1, *last)
	return RootResult{
		Root:        last.X,
		FAtRoot:     fx,
		Iterations:  n,
		Trace:       trace,
		Termination: t,
	}, nil
}
