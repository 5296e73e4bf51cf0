package gonewton_test

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/njchilds90/gonewton"
)

var x = gonewton.S("x")

// ============================================================
// Num tests
// ============================================================

func TestNum_Integer(t *testing.T) {
	n := gonewton.N(42)
	if n.String() != "42" {
		t.Errorf("want 42, got %s", n.String())
	}
}

func TestNum_Rational(t *testing.T) {
	n := gonewton.F(1, 3)
	if n.String() != "1/3" {
		t.Errorf("want 1/3, got %s", n.String())
	}
}

func TestNum_LaTeX_Rational(t *testing.T) {
	n := gonewton.F(2, 5)
	if n.LaTeX() != `\frac{2}{5}` {
		t.Errorf("want \\frac{2}{5}, got %s", n.LaTeX())
	}
}

func TestNum_Float_String(t *testing.T) {
	n := gonewton.NFloat(0.5)
	if n.String() != "0.5" {
		t.Errorf("want 0.5, got %s", n.String())
	}
	if n.IsExact() {
		t.Errorf("NFloat should be inexact")
	}
}

func TestNum_Diff_IsZero(t *testing.T) {
	result := gonewton.N(5).Diff("x")
	if gonewton.String(result) != "0" {
		t.Errorf("d/dx(5) should be 0, got %s", gonewton.String(result))
	}
}

func TestNum_Eval(t *testing.T) {
	v, err := gonewton.N(7).Eval(123)
	if err != nil || v != 7 {
		t.Errorf("Num.Eval should return 7, got %v (%v)", v, err)
	}
}

// ============================================================
// Sym and Const tests
// ============================================================

func TestSym_Diff_Self(t *testing.T) {
	result := x.Diff("x")
	if gonewton.String(result) != "1" {
		t.Errorf("d/dx(x) should be 1, got %s", gonewton.String(result))
	}
}

func TestSym_Eval_Unbound(t *testing.T) {
	_, err := gonewton.S("y").Eval(1)
	if !errors.Is(err, gonewton.ErrEvaluation) {
		t.Errorf("want ErrEvaluation for unbound symbol, got %v", err)
	}
}

func TestConst_Pi(t *testing.T) {
	pi := gonewton.Pi()
	if pi.LaTeX() != `\pi` {
		t.Errorf("want \\pi, got %s", pi.LaTeX())
	}
	v, _ := pi.Eval(0)
	if v != math.Pi {
		t.Errorf("want %v, got %v", math.Pi, v)
	}
}

// ============================================================
// Add / Mul tests
// ============================================================

func TestAdd_CombineLikeSymbols(t *testing.T) {
	result := gonewton.AddOf(x, x)
	if gonewton.String(result) != "2*x" {
		t.Errorf("want 2*x, got %s", gonewton.String(result))
	}
}

func TestAdd_Numbers(t *testing.T) {
	result := gonewton.AddOf(gonewton.N(2), gonewton.N(3))
	if gonewton.String(result) != "5" {
		t.Errorf("want 5, got %s", gonewton.String(result))
	}
}

func TestAdd_Zero(t *testing.T) {
	result := gonewton.AddOf(x, gonewton.N(0))
	if gonewton.String(result) != "x" {
		t.Errorf("want x, got %s", gonewton.String(result))
	}
}

func TestMul_ZeroAnnihilates(t *testing.T) {
	result := gonewton.MulOf(gonewton.N(0), x)
	if gonewton.String(result) != "0" {
		t.Errorf("want 0, got %s", gonewton.String(result))
	}
}

func TestMul_One(t *testing.T) {
	result := gonewton.MulOf(x, gonewton.N(1))
	if gonewton.String(result) != "x" {
		t.Errorf("want x, got %s", gonewton.String(result))
	}
}

// ============================================================
// Pow tests
// ============================================================

func TestPow_String(t *testing.T) {
	p := gonewton.PowOf(x, gonewton.N(2))
	if p.String() != "x^2" {
		t.Errorf("want x^2, got %s", p.String())
	}
}

func TestPow_LaTeX(t *testing.T) {
	p := gonewton.PowOf(x, gonewton.N(2))
	if p.LaTeX() != "x^{2}" {
		t.Errorf("want x^{2}, got %s", p.LaTeX())
	}
}

func TestPow_NestedIntegerCollapses(t *testing.T) {
	p := gonewton.PowOf(gonewton.PowOf(x, gonewton.N(2)), gonewton.N(3))
	if p.String() != "x^6" {
		t.Errorf("want x^6, got %s", p.String())
	}
}

func TestPow_NestedFractionKept(t *testing.T) {
	// sqrt(x^2) is |x|; collapsing to x would be wrong for x < 0.
	p := gonewton.PowOf(gonewton.PowOf(x, gonewton.N(2)), gonewton.F(1, 2))
	if p.String() != "(x^2)^(1/2)" {
		t.Errorf("want (x^2)^(1/2), got %s", p.String())
	}
	v, err := p.Eval(-3)
	if err != nil || v != 3 {
		t.Errorf("want 3, got %v (%v)", v, err)
	}
}

func TestPow_FractionalInnerKept(t *testing.T) {
	// (x^(1/2))^2 keeps the domain of the square root.
	p := gonewton.PowOf(gonewton.SqrtOf(x), gonewton.N(2))
	if p.String() != "(x^(1/2))^2" {
		t.Errorf("want (x^(1/2))^2, got %s", p.String())
	}
	if _, err := p.Eval(-4); !errors.Is(err, gonewton.ErrEvaluation) {
		t.Errorf("want ErrEvaluation at x = -4, got %v", err)
	}
	v, err := p.Eval(9)
	if err != nil || math.Abs(v-9) > 1e-12 {
		t.Errorf("want 9, got %v (%v)", v, err)
	}
}

func TestPow_LargeFoldStaysSymbolic(t *testing.T) {
	f, err := gonewton.Parse("(((((((2^20)^20)^20)^20)^20)^20)^20) + x")
	if err != nil {
		t.Fatal(err)
	}
	if s := f.String(); len(s) > 200 || !strings.HasSuffix(s, "^3200000") {
		t.Errorf("want a compact symbolic power, got %d bytes", len(s))
	}
	v, err := f.Evaluate(0)
	if err != nil || !math.IsInf(v, 1) {
		t.Errorf("want +Inf, got %v (%v)", v, err)
	}
}

func TestPow_SmallFoldStaysExact(t *testing.T) {
	p := gonewton.PowOf(gonewton.PowOf(gonewton.N(2), gonewton.N(20)), gonewton.N(20))
	n, ok := p.(*gonewton.Num)
	if !ok || !n.IsExact() {
		t.Fatalf("want an exact number, got %s", p)
	}
	if len(n.String()) != 121 {
		t.Errorf("2^400 should have 121 digits, got %d", len(n.String()))
	}
}

func TestPow_NegativeExponentFolds(t *testing.T) {
	p := gonewton.PowOf(gonewton.N(2), gonewton.N(-1))
	if p.String() != "1/2" {
		t.Errorf("want 1/2, got %s", p.String())
	}
}

func TestPow_Eval_DivisionByZero(t *testing.T) {
	_, err := gonewton.PowOf(x, gonewton.N(-1)).Eval(0)
	if !errors.Is(err, gonewton.ErrEvaluation) {
		t.Errorf("want ErrEvaluation, got %v", err)
	}
}

func TestPow_Eval_NegativeBaseFraction(t *testing.T) {
	_, err := gonewton.SqrtOf(x).Eval(-4)
	if !errors.Is(err, gonewton.ErrEvaluation) {
		t.Errorf("want ErrEvaluation for sqrt(-4), got %v", err)
	}
}

// ============================================================
// Func tests
// ============================================================

func TestFunc_Numeric_Fold(t *testing.T) {
	if s := gonewton.String(gonewton.SinOf(gonewton.N(0))); s != "0" {
		t.Errorf("sin(0) want 0, got %s", s)
	}
	if s := gonewton.String(gonewton.CosOf(gonewton.N(0))); s != "1" {
		t.Errorf("cos(0) want 1, got %s", s)
	}
	if s := gonewton.String(gonewton.AbsOf(gonewton.N(-3))); s != "3" {
		t.Errorf("abs(-3) want 3, got %s", s)
	}
}

func TestFunc_LnOfE(t *testing.T) {
	if s := gonewton.String(gonewton.LnOf(gonewton.E())); s != "1" {
		t.Errorf("ln(e) want 1, got %s", s)
	}
}

func TestFunc_LnOfExp(t *testing.T) {
	if s := gonewton.String(gonewton.LnOf(gonewton.ExpOf(x))); s != "x" {
		t.Errorf("ln(exp(x)) want x, got %s", s)
	}
}

func TestFunc_ExpOfLnKept(t *testing.T) {
	// exp(ln(x)) is undefined for x < 0, so it must not reduce to x.
	if s := gonewton.String(gonewton.ExpOf(gonewton.LnOf(x))); s != "exp(ln(x))" {
		t.Errorf("want exp(ln(x)), got %s", s)
	}
}

func TestFunc_Eval_DomainErrors(t *testing.T) {
	if _, err := gonewton.LnOf(x).Eval(-1); !errors.Is(err, gonewton.ErrEvaluation) {
		t.Errorf("ln(-1) want ErrEvaluation, got %v", err)
	}
	if _, err := gonewton.AsinOf(x).Eval(2); !errors.Is(err, gonewton.ErrEvaluation) {
		t.Errorf("asin(2) want ErrEvaluation, got %v", err)
	}
}

func TestFunc_Eval_LnZeroIsInf(t *testing.T) {
	v, err := gonewton.LnOf(x).Eval(0)
	if err != nil || !math.IsInf(v, -1) {
		t.Errorf("ln(0) want -Inf, got %v (%v)", v, err)
	}
}

func TestFunc_LaTeX(t *testing.T) {
	if s := gonewton.SinOf(x).LaTeX(); s != `\sin\left(x\right)` {
		t.Errorf("got %s", s)
	}
	if s := gonewton.AbsOf(x).LaTeX(); s != `\left|x\right|` {
		t.Errorf("got %s", s)
	}
}

// ============================================================
// Differentiation tests
// ============================================================

func TestDiff_Power(t *testing.T) {
	d := gonewton.Diff(gonewton.PowOf(x, gonewton.N(3)), "x")
	if d.String() != "3*x^2" {
		t.Errorf("want 3*x^2, got %s", d.String())
	}
}

func TestDiff2_Power(t *testing.T) {
	d := gonewton.Diff2(gonewton.PowOf(x, gonewton.N(3)), "x")
	if d.String() != "6*x" {
		t.Errorf("want 6*x, got %s", d.String())
	}
}

func TestDiffN(t *testing.T) {
	d := gonewton.DiffN(gonewton.PowOf(x, gonewton.N(4)), "x", 4)
	if d.String() != "24" {
		t.Errorf("want 24, got %s", d.String())
	}
}

func TestDiff_Functions(t *testing.T) {
	cases := []struct {
		in   gonewton.Expr
		want string
	}{
		{gonewton.SinOf(x), "cos(x)"},
		{gonewton.ExpOf(x), "exp(x)"},
		{gonewton.LnOf(x), "x^-1"},
		{gonewton.AbsOf(x), "sign(x)"},
		{gonewton.FloorOf(x), "0"},
	}
	for _, c := range cases {
		if got := gonewton.Diff(c.in, "x").String(); got != c.want {
			t.Errorf("d/dx %s: want %s, got %s", c.in, c.want, got)
		}
	}
}

func TestDiff_ExpBase(t *testing.T) {
	e := gonewton.PowOf(gonewton.E(), x)
	if d := gonewton.Diff(e, "x").String(); d != "e^x" {
		t.Errorf("d/dx e^x want e^x, got %s", d)
	}
}

func TestDiff_ChainRuleNumeric(t *testing.T) {
	// d/dx sin(x^2) = 2x cos(x^2)
	e := gonewton.SinOf(gonewton.PowOf(x, gonewton.N(2)))
	d := gonewton.Diff(e, "x")
	for _, xv := range []float64{-1.3, 0, 0.7, 2} {
		got, err := d.Eval(xv)
		if err != nil {
			t.Fatalf("eval: %v", err)
		}
		want := 2 * xv * math.Cos(xv*xv)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("x=%v: want %v, got %v", xv, want, got)
		}
	}
}

// ============================================================
// Misc
// ============================================================

func TestFreeSymbols(t *testing.T) {
	syms := gonewton.FreeSymbols(gonewton.AddOf(gonewton.SinOf(x), gonewton.Pi()))
	if _, ok := syms["x"]; !ok || len(syms) != 1 {
		t.Errorf("want {x}, got %v", syms)
	}
}

func TestToJSON(t *testing.T) {
	s, err := gonewton.ToJSON(gonewton.PowOf(x, gonewton.N(2)))
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if m["type"] != "pow" {
		t.Errorf("want type pow, got %v", m["type"])
	}
	if !strings.Contains(s, `"name":"x"`) {
		t.Errorf("missing symbol in %s", s)
	}
}

func TestDeterminism(t *testing.T) {
	build := func() string {
		return gonewton.MulOf(gonewton.SinOf(x), x, gonewton.N(3), gonewton.CosOf(x)).String()
	}
	first := build()
	for i := 0; i < 20; i++ {
		if got := build(); got != first {
			t.Fatalf("non-deterministic output: %s vs %s", first, got)
		}
	}
}
