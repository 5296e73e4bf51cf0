package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gonewton"
	"github.com/njchilds90/gonewton/internal/metrics"
)

func callTool(t *testing.T, s *Server, tool string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = tool
	req.Params.Arguments = args
	res, err := s.handler(tool)(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestFindRoot(t *testing.T) {
	t.Parallel()

	s := New(gonewton.NewSolver())
	res := callTool(t, s, "find_root", map[string]any{"function": "x^2 - 2", "x0": 1.0, "epsilon": 1e-10})
	assert.False(t, res.IsError)

	var resp struct {
		String string `json:"string"`
		Result struct {
			Result struct {
				Root float64 `json:"root"`
			} `json:"result"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &resp))
	assert.InDelta(t, 1.4142135623730951, resp.Result.Result.Root, 1e-10)
	assert.Contains(t, resp.String, "x ≈ 1.4142135624")
}

func TestDomainFailureIsToolError(t *testing.T) {
	t.Parallel()

	rec := metrics.New()
	s := New(gonewton.NewSolver(), WithMetrics(rec))
	res := callTool(t, s, "find_root", map[string]any{"function": "x^2 + 1", "x0": 1.0, "epsilon": 1e-10})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "near_zero_derivative")
	n, err := testutil.GatherAndCount(rec.Registry(), "gonewton_tool_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMissingParam(t *testing.T) {
	t.Parallel()

	s := New(gonewton.NewSolver())
	res := callTool(t, s, "check_convergence", map[string]any{"function": "x"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "invalid_params")
}

func TestDerivative(t *testing.T) {
	t.Parallel()

	s := New(gonewton.NewSolver())
	res := callTool(t, s, "derivative", map[string]any{"function": "x^3", "order": 2})
	require.False(t, res.IsError)
	assert.Contains(t, text(t, res), `"string":"6*x"`)
}

func TestToolsList(t *testing.T) {
	t.Parallel()

	s := New(gonewton.NewSolver())
	msg := s.MCP().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	b, err := json.Marshal(msg)
	require.NoError(t, err)
	for _, name := range []string{"find_root", "plot", "check_convergence", "normalize", "derivative"} {
		assert.Contains(t, string(b), `"`+name+`"`)
	}
}
