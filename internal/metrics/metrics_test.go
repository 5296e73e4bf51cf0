package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gonewton"
)

func TestRecorder_ObserveOutcome(t *testing.T) {
	r := New()
	s := gonewton.NewSolver()

	r.ObserveOutcome(s.Solve(gonewton.Request{Function: "x^2 - 2", X0: 1, Epsilon: 1e-10}))
	r.ObserveOutcome(s.Solve(gonewton.Request{Function: "x^2 + 1", X0: 1, Epsilon: 1e-10}))
	r.ObserveOutcome(s.Solve(gonewton.Request{Function: "(", X0: 1, Epsilon: 1e-10}))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.solves.WithLabelValues("converged")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.solves.WithLabelValues("near_zero_derivative")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.solves.WithLabelValues("parse_error")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.iterations))
}

func TestRecorder_ObserveTool(t *testing.T) {
	r := New()
	r.ObserveTool("normalize", gonewton.ToolResponse{String: "x"})
	r.ObserveTool("normalize", gonewton.ToolResponse{Error: "bad", Kind: gonewton.KindMultipleEquals})

	assert.Equal(t, 1.0, testutil.ToFloat64(r.toolCalls.WithLabelValues("normalize", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.toolCalls.WithLabelValues("normalize", "multiple_equals")))
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.ObserveTool("mcp_spec", gonewton.ToolResponse{})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `gonewton_tool_calls_total{kind="ok",tool="mcp_spec"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
