package gonewton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gonewton"
)

func TestCheckConvergence_Holds(t *testing.T) {
	rep, err := gonewton.CheckConvergence(gonewton.MustParse("x^2 - 2"), 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, rep.FX)
	assert.Equal(t, 4.0, rep.FPX)
	assert.Equal(t, 2.0, rep.FPPX)
	assert.True(t, rep.Holds)
	assert.Contains(t, rep.Message(), "convergence condition holds")
	assert.Contains(t, rep.Message(), "2.000e+00")
}

func TestCheckConvergence_Fails(t *testing.T) {
	rep, err := gonewton.CheckConvergence(gonewton.MustParse("x^2 - 2"), 0.1)
	require.NoError(t, err)
	assert.False(t, rep.Holds)
	assert.Contains(t, rep.Message(), "fails at x0 = 0.1")
}

func TestCheckConvergence_EvaluationError(t *testing.T) {
	_, err := gonewton.CheckConvergence(gonewton.MustParse("ln(x)"), -1)
	assert.ErrorIs(t, err, gonewton.ErrEvaluation)
}

func TestCheckConvergence_NonFinite(t *testing.T) {
	_, err := gonewton.CheckConvergence(gonewton.MustParse("exp(x)"), 1000)
	assert.ErrorIs(t, err, gonewton.ErrNonFinite)
}
