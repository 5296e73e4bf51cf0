package gonewton

import (
	"fmt"
	"math"
	"math/big"
)

// builtin describes one named function of a single argument.
type builtin struct {
	eval func(float64) (float64, error)
	// outer returns f'(u); nil marks a piecewise-constant function.
	outer func(u Expr) Expr
	latex func(arg string) string
}

// builtins is filled in init because the derivative rules refer back to
// the constructors, which consult the table.
var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"sin":   {total(math.Sin), func(u Expr) Expr { return CosOf(u) }, command(`\sin`)},
		"cos":   {total(math.Cos), func(u Expr) Expr { return MulOf(N(-1), SinOf(u)) }, command(`\cos`)},
		"tan":   {total(math.Tan), func(u Expr) Expr { return AddOf(N(1), PowOf(TanOf(u), N(2))) }, command(`\tan`)},
		"exp":   {total(math.Exp), func(u Expr) Expr { return ExpOf(u) }, command(`\exp`)},
		"ln":    {logarithm(math.Log), func(u Expr) Expr { return PowOf(u, N(-1)) }, command(`\ln`)},
		"log10": {logarithm(math.Log10), logRule(10), command(`\log_{10}`)},
		"log2":  {logarithm(math.Log2), logRule(2), command(`\log_{2}`)},
		"cbrt": {total(math.Cbrt), func(u Expr) Expr { return MulOf(F(1, 3), PowOf(CbrtOf(u), N(-2))) },
			func(a string) string { return `\sqrt[3]{` + a + "}" }},
		"abs": {total(math.Abs), func(u Expr) Expr { return SignOf(u) },
			func(a string) string { return `\left|` + a + `\right|` }},
		"asin": {unitInterval("asin", math.Asin), asinRule, command(`\arcsin`)},
		"acos": {unitInterval("acos", math.Acos), func(u Expr) Expr { return MulOf(N(-1), asinRule(u)) }, command(`\arccos`)},
		"atan": {total(math.Atan), func(u Expr) Expr { return PowOf(AddOf(N(1), PowOf(u, N(2))), N(-1)) }, command(`\arctan`)},
		"sinh": {total(math.Sinh), func(u Expr) Expr { return CoshOf(u) }, command(`\sinh`)},
		"cosh": {total(math.Cosh), func(u Expr) Expr { return SinhOf(u) }, command(`\cosh`)},
		"tanh": {total(math.Tanh), func(u Expr) Expr { return AddOf(N(1), MulOf(N(-1), PowOf(TanhOf(u), N(2)))) }, command(`\tanh`)},
		"floor": {total(math.Floor), nil,
			func(a string) string { return `\lfloor ` + a + ` \rfloor` }},
		"ceil": {total(math.Ceil), nil,
			func(a string) string { return `\lceil ` + a + ` \rceil` }},
		"sign": {total(signum), nil, command(`\operatorname{sign}`)},
	}
}

func total(f func(float64) float64) func(float64) (float64, error) {
	return func(v float64) (float64, error) { return f(v), nil }
}

// logarithm rejects negative arguments; log(0) is -Inf and left to the caller.
func logarithm(f func(float64) float64) func(float64) (float64, error) {
	return func(v float64) (float64, error) {
		if v < 0 {
			return 0, fmt.Errorf("%w: logarithm of negative number %g", ErrEvaluation, v)
		}
		return f(v), nil
	}
}

func unitInterval(name string, f func(float64) float64) func(float64) (float64, error) {
	return func(v float64) (float64, error) {
		if v < -1 || v > 1 {
			return 0, fmt.Errorf("%w: %s(%g) is outside [-1, 1]", ErrEvaluation, name, v)
		}
		return f(v), nil
	}
}

func signum(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func command(cmd string) func(string) string {
	return func(a string) string { return cmd + `\left(` + a + `\right)` }
}

// logRule is d/du log_b(u) = 1 / (u ln b).
func logRule(b int64) func(Expr) Expr {
	return func(u Expr) Expr { return PowOf(MulOf(u, LnOf(N(b))), N(-1)) }
}

func asinRule(u Expr) Expr {
	return PowOf(AddOf(N(1), MulOf(N(-1), PowOf(u, N(2)))), F(-1, 2))
}

// Func applies a builtin to one argument.
type Func struct {
	name string
	arg  Expr
}

func apply(name string, arg Expr) Expr { return (&Func{name: name, arg: arg}).Simplify() }

func SinOf(arg Expr) Expr   { return apply("sin", arg) }
func CosOf(arg Expr) Expr   { return apply("cos", arg) }
func TanOf(arg Expr) Expr   { return apply("tan", arg) }
func ExpOf(arg Expr) Expr   { return apply("exp", arg) }
func LnOf(arg Expr) Expr    { return apply("ln", arg) }
func Log10Of(arg Expr) Expr { return apply("log10", arg) }
func Log2Of(arg Expr) Expr  { return apply("log2", arg) }
func SqrtOf(arg Expr) Expr  { return PowOf(arg, F(1, 2)) }
func CbrtOf(arg Expr) Expr  { return apply("cbrt", arg) }
func AbsOf(arg Expr) Expr   { return apply("abs", arg) }
func AsinOf(arg Expr) Expr  { return apply("asin", arg) }
func AcosOf(arg Expr) Expr  { return apply("acos", arg) }
func AtanOf(arg Expr) Expr  { return apply("atan", arg) }
func SinhOf(arg Expr) Expr  { return apply("sinh", arg) }
func CoshOf(arg Expr) Expr  { return apply("cosh", arg) }
func TanhOf(arg Expr) Expr  { return apply("tanh", arg) }
func FloorOf(arg Expr) Expr { return apply("floor", arg) }
func CeilOf(arg Expr) Expr  { return apply("ceil", arg) }
func SignOf(arg Expr) Expr  { return apply("sign", arg) }

// Simplify folds numeric arguments to finite values and applies the
// inverse pairs ln(e) = 1 and ln(exp u) = u. exp(ln u) is kept since it is
// undefined for u < 0.
func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	switch a := arg.(type) {
	case *Num:
		if f.name == "abs" {
			return &Num{val: new(big.Rat).Abs(a.val), inexact: a.inexact}
		}
		if v, err := f.builtin().eval(a.Float64()); err == nil && isFinite(v) {
			return foldFloat(v)
		}
	case *Const:
		if f.name == "ln" && a.name == "e" {
			return N(1)
		}
	case *Func:
		if f.name == "ln" && a.name == "exp" {
			return a.arg
		}
	case *Mul:
		// abs(-u) = abs(u)
		if f.name == "abs" {
			if c, ok := a.factors[0].(*Num); ok && c.val.Cmp(big.NewRat(-1, 1)) == 0 {
				return AbsOf(MulOf(a.factors[1:]...))
			}
		}
	}
	return &Func{name: f.name, arg: arg}
}

func (f *Func) builtin() builtin {
	b, ok := builtins[f.name]
	if !ok {
		panic("gonewton: unknown function " + f.name)
	}
	return b
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }
func (f *Func) LaTeX() string  { return f.builtin().latex(f.arg.LaTeX()) }

// Diff applies the chain rule.
func (f *Func) Diff(varName string) Expr {
	outer := f.builtin().outer
	if outer == nil {
		return N(0)
	}
	return MulOf(outer(f.arg), f.arg.Diff(varName))
}

func (f *Func) Eval(x float64) (float64, error) {
	v, err := f.arg.Eval(x)
	if err != nil {
		return 0, err
	}
	return f.builtin().eval(v)
}

func (f *Func) operands() []Expr { return []Expr{f.arg} }

func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}
