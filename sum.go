package gonewton

import (
	"slices"
	"sort"
	"strings"
)

// Add is a sum of terms.
type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

func openAdd(e Expr) ([]Expr, bool) {
	a, ok := e.(*Add)
	if !ok {
		return nil, false
	}
	return a.terms, true
}

// Simplify flattens nested sums, folds constants and merges repeated bare
// symbols. The canonical order is symbols by name, other terms as given,
// then the constant.
func (a *Add) Simplify() Expr {
	constant := N(0)
	counts := map[string]int64{}
	var names []string
	var rest []Expr
	for _, t := range flatten(a.terms, openAdd) {
		switch v := t.(type) {
		case *Num:
			constant = numAdd(constant, v)
		case *Sym:
			if _, seen := counts[v.name]; !seen {
				names = append(names, v.name)
			}
			counts[v.name]++
		default:
			rest = append(rest, t)
		}
	}

	sort.Strings(names)
	out := make([]Expr, 0, len(names)+len(rest)+1)
	for _, name := range names {
		if k := counts[name]; k == 1 {
			out = append(out, S(name))
		} else {
			out = append(out, MulOf(N(k), S(name)))
		}
	}
	out = append(out, rest...)
	if !constant.IsZero() {
		out = append(out, constant)
	}

	switch len(out) {
	case 0:
		return N(0)
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	return join(a.terms, " + ", Expr.String)
}

func (a *Add) LaTeX() string { return join(a.terms, " + ", Expr.LaTeX) }

func (a *Add) Diff(varName string) Expr {
	d := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		d[i] = t.Diff(varName)
	}
	return AddOf(d...)
}

func (a *Add) Eval(x float64) (float64, error) {
	sum := 0.0
	for _, t := range a.terms {
		v, err := t.Eval(x)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func (a *Add) operands() []Expr { return a.terms }

func (a *Add) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "add", "terms": jsonList(a.terms)}
}

// Mul is a product of factors.
type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

func openMul(e Expr) ([]Expr, bool) {
	m, ok := e.(*Mul)
	if !ok {
		return nil, false
	}
	return m.factors, true
}

// Simplify flattens nested products and folds numeric factors into a
// leading coefficient. The other factors are ordered by their text form.
func (m *Mul) Simplify() Expr {
	coeff := N(1)
	var rest []Expr
	for _, f := range flatten(m.factors, openMul) {
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		rest = append(rest, f)
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(rest) == 0 {
		return coeff
	}

	rest = sortedByText(rest)
	if !coeff.IsOne() {
		rest = append([]Expr{coeff}, rest...)
	}
	if len(rest) == 1 {
		return rest[0]
	}
	return &Mul{factors: rest}
}

func sortedByText(es []Expr) []Expr {
	type keyed struct {
		text string
		e    Expr
	}
	ks := make([]keyed, len(es))
	for i, e := range es {
		ks[i] = keyed{text: e.String(), e: e}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int { return strings.Compare(a.text, b.text) })
	out := make([]Expr, len(ks))
	for i, k := range ks {
		out[i] = k.e
	}
	return out
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	return join(m.factors, "*", func(f Expr) string {
		if _, ok := f.(*Add); ok {
			return "(" + f.String() + ")"
		}
		return f.String()
	})
}

func (m *Mul) LaTeX() string {
	return join(m.factors, ` \cdot `, func(f Expr) string {
		if _, ok := f.(*Add); ok {
			return `\left(` + f.LaTeX() + `\right)`
		}
		return f.LaTeX()
	})
}

// Diff applies the product rule: sum over i of f_i' times the other factors.
func (m *Mul) Diff(varName string) Expr {
	terms := make([]Expr, len(m.factors))
	for i := range m.factors {
		term := make([]Expr, 0, len(m.factors))
		term = append(term, m.factors[i].Diff(varName))
		term = append(term, m.factors[:i]...)
		term = append(term, m.factors[i+1:]...)
		terms[i] = MulOf(term...)
	}
	return AddOf(terms...)
}

func (m *Mul) Eval(x float64) (float64, error) {
	prod := 1.0
	for _, f := range m.factors {
		v, err := f.Eval(x)
		if err != nil {
			return 0, err
		}
		prod *= v
	}
	return prod, nil
}

func (m *Mul) operands() []Expr { return m.factors }

func (m *Mul) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "mul", "factors": jsonList(m.factors)}
}
