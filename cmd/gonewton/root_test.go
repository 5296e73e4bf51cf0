package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gonewton"
)

// run executes the CLI with an isolated config file.
func run(t *testing.T, configYAML string, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--config", path))
	err := cmd.Execute()
	return out.String(), err
}

func TestSolveCmd_Text(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "solve", "x^2 - 2", "--x0", "1", "--epsilon", "1e-10", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "x ≈ 1.4142135624")
}

func TestSolveCmd_MarkdownDefault(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "solve", "cos(x) = x", "--x0", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "# Newton–Raphson result")
	assert.Contains(t, out, "0.7390851332")
	// not a terminal, so markdown stays raw
	assert.NotContains(t, out, "\x1b[")
}

func TestSolveCmd_ConfigDrivesDefaults(t *testing.T) {
	t.Parallel()

	out, err := run(t, "format: json\nmax_iterations: 2\ntolerance: 1.0e-14\n", "solve", "x^2 - 2", "--x0", "1")
	require.NoError(t, err)

	var doc struct {
		Epsilon float64 `json:"epsilon"`
		Result  struct {
			Iterations  int    `json:"iterations"`
			Termination string `json:"termination"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 1e-14, doc.Epsilon)
	assert.Equal(t, 2, doc.Result.Iterations)
	assert.Equal(t, "max_iterations_reached", doc.Result.Termination)
}

func TestSolveCmd_Failure(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "solve", "x^2 + 1", "--x0", "1", "--format", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "near_zero_derivative")
	assert.Contains(t, out, "error:")

	out, err = run(t, "", "solve", "x", "--x0", "abc", "--format", "text")
	require.Error(t, err)
	assert.Contains(t, out, "invalid_numeric_input")
}

func TestSolveCmd_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := run(t, "max_iterations: 0\n", "solve", "x", "--x0", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")

	_, err = run(t, "", "solve", "x", "--x0", "1", "--format", "html")
	require.Error(t, err)
}

func TestSolveCmd_RequiresX0(t *testing.T) {
	t.Parallel()

	_, err := run(t, "", "solve", "x")
	require.Error(t, err)
}

func TestCheckCmd(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "check", "x^2 - 2", "--x0", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "convergence condition holds")

	out, err = run(t, "", "check", "x^2 - 2", "--x0", "1", "--json")
	require.NoError(t, err)
	var rep gonewton.ConvergenceReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.True(t, rep.Holds)
	assert.Equal(t, -1.0, rep.FX)
}

func TestDiffCmd(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "diff", "x^3")
	require.NoError(t, err)
	assert.Equal(t, "3*x^2\n", out)

	out, err = run(t, "", "diff", "x^3", "--order", "2")
	require.NoError(t, err)
	assert.Equal(t, "6*x\n", out)

	_, err = run(t, "", "diff", "x^3", "--order", "3")
	assert.ErrorIs(t, err, gonewton.ErrInvalidNumericInput)
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "gonewton version "+gonewton.Version+"\n", out)
}
