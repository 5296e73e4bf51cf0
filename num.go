package gonewton

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Num is a rational constant. It is exact unless it came from a decimal
// literal or from folding a float result, in which case it prints in float
// notation.
type Num struct {
	val     *big.Rat
	inexact bool
}

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// F returns the exact fraction p/q. It panics if q is zero.
func F(p, q int64) *Num {
	if q == 0 {
		panic("gonewton: denominator is zero")
	}
	return &Num{val: big.NewRat(p, q)}
}

// NFloat wraps a finite float64. It panics on NaN or ±Inf.
func NFloat(f float64) *Num {
	if !isFinite(f) {
		panic("gonewton: non-finite constant")
	}
	return &Num{val: new(big.Rat).SetFloat64(f), inexact: true}
}

func (n *Num) Float64() float64 { f, _ := n.val.Float64(); return f }
func (n *Num) IsExact() bool    { return !n.inexact }
func (n *Num) IsZero() bool     { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool      { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsInteger() bool  { return n.val.IsInt() }
func (n *Num) IsNegative() bool { return n.val.Sign() < 0 }

func (n *Num) Simplify() Expr                { return n }
func (n *Num) Diff(string) Expr              { return N(0) }
func (n *Num) Eval(float64) (float64, error) { return n.Float64(), nil }
func (n *Num) operands() []Expr              { return nil }

func (n *Num) String() string {
	switch {
	case n.val.IsInt():
		return n.val.Num().String()
	case n.inexact:
		return strconv.FormatFloat(n.Float64(), 'g', -1, 64)
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	switch {
	case n.val.IsInt():
		return n.val.Num().String()
	case n.inexact:
		return strconv.FormatFloat(n.Float64(), 'f', -1, 64)
	}
	abs := new(big.Rat).Abs(n.val)
	sign := ""
	if n.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf(`%s\frac{%s}{%s}`, sign, abs.Num().String(), abs.Denom().String())
}

func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.String()}
}

func numAdd(a, b *Num) *Num {
	return &Num{val: new(big.Rat).Add(a.val, b.val), inexact: a.inexact || b.inexact}
}

func numMul(a, b *Num) *Num {
	return &Num{val: new(big.Rat).Mul(a.val, b.val), inexact: a.inexact || b.inexact}
}

// numPow raises a non-zero a to the integer power k.
func numPow(a *Num, k int64) *Num {
	e := big.NewInt(k)
	if k < 0 {
		e.Neg(e)
	}
	num := new(big.Int).Exp(a.val.Num(), e, nil)
	den := new(big.Int).Exp(a.val.Denom(), e, nil)
	if k < 0 {
		num, den = den, num
	}
	return &Num{val: new(big.Rat).SetFrac(num, den), inexact: a.inexact}
}

// foldFloat turns the float result of constant folding back into a Num,
// keeping integral values below 2^53 exact.
func foldFloat(v float64) *Num {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return N(int64(v))
	}
	return NFloat(v)
}

// Sym is a named variable. Only Variable can be evaluated.
type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

func (s *Sym) Simplify() Expr   { return s }
func (s *Sym) String() string   { return s.name }
func (s *Sym) LaTeX() string    { return s.name }
func (s *Sym) operands() []Expr { return nil }

func (s *Sym) Diff(varName string) Expr {
	if s.name == varName {
		return N(1)
	}
	return N(0)
}

func (s *Sym) Eval(x float64) (float64, error) {
	if s.name != Variable {
		return 0, fmt.Errorf("%w: unbound symbol %q", ErrEvaluation, s.name)
	}
	return x, nil
}

func (s *Sym) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.name}
}

// Const is a named irrational constant (pi or e).
type Const struct {
	name  string
	latex string
	val   float64
}

func Pi() *Const { return &Const{name: "pi", latex: `\pi`, val: math.Pi} }
func E() *Const  { return &Const{name: "e", latex: "e", val: math.E} }

func (c *Const) Simplify() Expr                { return c }
func (c *Const) String() string                { return c.name }
func (c *Const) LaTeX() string                 { return c.latex }
func (c *Const) Diff(string) Expr              { return N(0) }
func (c *Const) Eval(float64) (float64, error) { return c.val, nil }
func (c *Const) operands() []Expr              { return nil }

func (c *Const) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "const", "name": c.name}
}
