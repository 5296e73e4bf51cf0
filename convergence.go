package gonewton

import (
	"fmt"
	"math"
)

// ConvergenceReport is the outcome of the sufficient condition
// |f(x0)·f''(x0)| < f'(x0)^2. It is advisory and never blocks a solve.
type ConvergenceReport struct {
	Holds bool    `json:"holds"`
	X0    float64 `json:"x0"`
	FX    float64 `json:"fx0"`
	FPX   float64 `json:"fpx0"`
	FPPX  float64 `json:"fppx0"`
}

// CheckConvergence evaluates f, f' and f'' at x0. Evaluation failures and
// non-finite values are returned as errors.
func CheckConvergence(f *Expression, x0 float64) (ConvergenceReport, error) {
	d1, err := f.Derivative(1)
	if err != nil {
		return ConvergenceReport{}, err
	}
	d2, err := f.Derivative(2)
	if err != nil {
		return ConvergenceReport{}, err
	}

	names := []string{"f", "f'", "f''"}
	vals := make([]float64, 3)
	for i, e := range []*Expression{f, d1, d2} {
		v, err := e.Evaluate(x0)
		if err != nil {
			return ConvergenceReport{}, err
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ConvergenceReport{}, fmt.Errorf("%w: %s(%g) = %g", ErrNonFinite, names[i], x0, v)
		}
		vals[i] = v
	}

	fx, fpx, fppx := vals[0], vals[1], vals[2]
	return ConvergenceReport{
		Holds: math.Abs(fx*fppx) < fpx*fpx,
		X0:    x0,
		FX:    fx,
		FPX:   fpx,
		FPPX:  fppx,
	}, nil
}

// Message is the human-readable advisory line.
func (r ConvergenceReport) Message() string {
	if r.Holds {
		return fmt.Sprintf("convergence condition holds: |f(x0)·f''(x0)| < f'(x0)^2 (f = %.3e, f' = %.3e, f'' = %.3e)",
			r.FX, r.FPX, r.FPPX)
	}
	return fmt.Sprintf("convergence condition fails at x0 = %g; Newton's method may not converge (f = %.3e, f' = %.3e, f'' = %.3e)",
		r.X0, r.FX, r.FPX, r.FPPX)
}
