package gonewton

import (
	"fmt"
	"math"
)

// maxFoldExponent bounds exact folding of Num^integer.
const maxFoldExponent = 20

// maxFoldBits caps the estimated size of an exactly folded power. Larger
// powers stay symbolic so nested exponents cannot grow without bound.
const maxFoldBits = 4096

// Pow is base^exp.
type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Simplify() Expr {
	base, exp := p.base.Simplify(), p.exp.Simplify()
	bn, baseIsNum := base.(*Num)
	en, expIsNum := exp.(*Num)

	switch {
	case expIsNum && en.IsZero():
		return N(1)
	case expIsNum && en.IsOne():
		return base
	case baseIsNum && bn.IsZero():
		// 0^negative stays symbolic so Eval can report the division.
		if expIsNum && !en.IsNegative() {
			return N(0)
		}
		return &Pow{base: base, exp: exp}
	case baseIsNum && bn.IsOne():
		return N(1)
	case baseIsNum && expIsNum && en.IsInteger():
		if k := en.val.Num(); k.IsInt64() && abs64(k.Int64()) <= maxFoldExponent {
			bits := int64(bn.val.Num().BitLen() + bn.val.Denom().BitLen())
			if bits*abs64(k.Int64()) <= maxFoldBits {
				return numPow(bn, k.Int64())
			}
		}
	}

	// (u^a)^n = u^(a*n) only for integer a and n: (x^2)^(1/2) is |x|, and
	// (x^(1/2))^2 is undefined for x < 0.
	if inner, ok := base.(*Pow); ok && expIsNum && en.IsInteger() {
		if a, ok := inner.exp.(*Num); ok && a.IsInteger() {
			return PowOf(inner.base, MulOf(a, exp))
		}
	}
	return &Pow{base: base, exp: exp}
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func (p *Pow) baseNeedsParens() bool {
	switch b := p.base.(type) {
	case *Add, *Mul, *Pow:
		return true
	case *Num:
		return b.IsNegative() || !b.IsInteger()
	}
	return false
}

func (p *Pow) expNeedsParens() bool {
	switch e := p.exp.(type) {
	case *Add, *Mul, *Pow:
		return true
	case *Num:
		return !e.IsInteger()
	}
	return false
}

func (p *Pow) String() string {
	base, exp := p.base.String(), p.exp.String()
	if p.baseNeedsParens() {
		base = "(" + base + ")"
	}
	if p.expNeedsParens() {
		exp = "(" + exp + ")"
	}
	return base + "^" + exp
}

func (p *Pow) LaTeX() string {
	base := p.base.LaTeX()
	if p.baseNeedsParens() {
		base = `\left(` + base + `\right)`
	}
	return base + "^{" + p.exp.LaTeX() + "}"
}

// Diff covers u^n, a^v and the general u^v = e^(v ln u) form.
func (p *Pow) Diff(varName string) Expr {
	if _, ok := p.exp.(*Num); ok {
		return MulOf(p.exp, PowOf(p.base, AddOf(p.exp, N(-1))), p.base.Diff(varName))
	}
	dv := p.exp.Diff(varName)
	switch p.base.(type) {
	case *Num, *Const:
		return MulOf(p, LnOf(p.base), dv)
	}
	du := p.base.Diff(varName)
	return MulOf(p, AddOf(
		MulOf(dv, LnOf(p.base)),
		MulOf(p.exp, du, PowOf(p.base, N(-1))),
	))
}

func (p *Pow) Eval(x float64) (float64, error) {
	b, err := p.base.Eval(x)
	if err != nil {
		return 0, err
	}
	e, err := p.exp.Eval(x)
	if err != nil {
		return 0, err
	}
	if b == 0 && e < 0 {
		return 0, fmt.Errorf("%w: division by zero", ErrEvaluation)
	}
	v := math.Pow(b, e)
	if math.IsNaN(v) && !math.IsNaN(b) && !math.IsNaN(e) {
		return 0, fmt.Errorf("%w: %g^%g is undefined for real numbers", ErrEvaluation, b, e)
	}
	return v, nil
}

func (p *Pow) operands() []Expr { return []Expr{p.base, p.exp} }

func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
