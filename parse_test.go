package gonewton_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gonewton"
)

func TestParse_Evaluate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		x    float64
		want float64
	}{
		{"polynomial", "x^2 - 2", 1.5, 0.25},
		{"unary minus binds looser than power", "-x^2", 3, -9},
		{"power is right associative", "2^3^2", 0, 512},
		{"double star power", "2**3", 0, 8},
		{"implicit number times symbol", "2x", 3, 6},
		{"implicit number times group", "3(x+1)", 1, 6},
		{"implicit symbol times call", "x sin(x)", 2, 2 * math.Sin(2)},
		{"implicit group times group", "(x-1)(x+3)", 2, 5},
		{"brackets", "[x+1]*2", 1, 4},
		{"division", "1/x", 4, 0.25},
		{"negative exponent", "x^-2", 2, 0.25},
		{"decimal literal", "0.5x", 3, 1.5},
		{"scientific literal", "1e3 + x", 1, 1001},
		{"pi constant", "pi", 0, math.Pi},
		{"e constant power", "e^x", 1, math.E},
		{"two e's", "2e", 0, 2 * math.E},
		{"sqrt", "sqrt(x)", 4, 2},
		{"cbrt of negative", "cbrt(x)", -8, -2},
		{"log base", "log(8, 2)", 0, 3},
		{"log is natural", "log(x)", math.E, 1},
		{"log10", "log10(x)", 1000, 3},
		{"nested calls", "exp(sin(x))", 0, 1},
		{"abs", "abs(x - 5)", 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := gonewton.Parse(tt.in)
			require.NoError(t, err)
			got, err := f.Evaluate(tt.x)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"(x+1",
		"x+1)",
		"(x]",
		"2 $ x",
		"foo(x)",
		"y",
		"sin x",
		"sin(x, 2)",
		"log(1, 2, 3)",
		"x^",
		"2 3",
		"x +",
		".",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := gonewton.Parse(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, gonewton.ErrParse)
			assert.Equal(t, gonewton.KindParse, gonewton.KindOf(err))
		})
	}
}

func TestParse_NumberOutOfRange(t *testing.T) {
	for _, in := range []string{"1e999999999", "x + 2e400"} {
		_, err := gonewton.Parse(in)
		require.ErrorIs(t, err, gonewton.ErrParse)
		assert.Contains(t, err.Error(), "number literal out of range")
	}
}

func TestExpression_Derivative(t *testing.T) {
	f := gonewton.MustParse("x^3 - 3x + 1")

	d1, err := f.Derivative(1)
	require.NoError(t, err)
	v, err := d1.Evaluate(2)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, v, 1e-12)

	d2, err := f.Derivative(2)
	require.NoError(t, err)
	v, err = d2.Evaluate(2)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, v, 1e-12)

	_, err = f.Derivative(3)
	assert.ErrorIs(t, err, gonewton.ErrInvalidNumericInput)
}

func TestExpression_Accessors(t *testing.T) {
	f := gonewton.MustParse("x^2 - 2")
	assert.Equal(t, "x^2 - 2", f.Source())
	assert.Equal(t, "x^2 + -2", f.String())
	assert.Equal(t, "x^{2} + -2", f.LaTeX())

	tree, err := f.Tree()
	require.NoError(t, err)
	assert.Contains(t, tree, `"type":"add"`)
}

func TestExpression_EvaluateDomainError(t *testing.T) {
	f := gonewton.MustParse("ln(x)")
	_, err := f.Evaluate(-1)
	assert.ErrorIs(t, err, gonewton.ErrEvaluation)
	assert.Equal(t, gonewton.KindEvaluation, gonewton.KindOf(err))
}
