package gonewton

import "fmt"

// Expression is an immutable parsed function of x.
type Expression struct {
	source string
	root   Expr
}

// Parse parses text as a function of x. Malformed input wraps ErrParse.
func Parse(text string) (*Expression, error) {
	root, err := parseExpr(text)
	if err != nil {
		return nil, err
	}
	return &Expression{source: text, root: root}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(text string) *Expression {
	e, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return e
}

// Evaluate returns f(x). Domain errors wrap ErrEvaluation; overflow is
// returned as ±Inf.
func (e *Expression) Evaluate(x float64) (float64, error) {
	return e.root.Eval(x)
}

// Derivative returns the exact first (order 1) or second (order 2)
// derivative with respect to x.
func (e *Expression) Derivative(order int) (*Expression, error) {
	if order != 1 && order != 2 {
		return nil, fmt.Errorf("%w: derivative order %d, want 1 or 2", ErrInvalidNumericInput, order)
	}
	d := DiffN(e.root, Variable, order)
	return &Expression{source: d.String(), root: d}, nil
}

// Source returns the text the expression was parsed from.
func (e *Expression) Source() string { return e.source }

// String returns the simplified canonical form.
func (e *Expression) String() string { return e.root.String() }

func (e *Expression) LaTeX() string { return e.root.LaTeX() }

// Tree returns the JSON tree of the simplified expression.
func (e *Expression) Tree() (string, error) { return ToJSON(e.root) }

// Root exposes the underlying symbolic tree.
func (e *Expression) Root() Expr { return e.root }
