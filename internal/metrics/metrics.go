// Package metrics exposes Prometheus instrumentation for solves and tool
// calls.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/njchilds90/gonewton"
)

// Recorder owns a private registry so several servers (and tests) can
// coexist in one process.
type Recorder struct {
	registry   *prometheus.Registry
	solves     *prometheus.CounterVec
	iterations *prometheus.HistogramVec
	toolCalls  *prometheus.CounterVec
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gonewton_solves_total",
				Help: "Solve requests by outcome (converged, max_iterations_reached or an error kind).",
			},
			[]string{"outcome"},
		),
		iterations: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gonewton_iterations",
				Help:    "Newton iterations per successful solve.",
				Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 100},
			},
			[]string{"termination"},
		),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gonewton_tool_calls_total",
				Help: "Tool calls by tool name and result kind.",
			},
			[]string{"tool", "kind"},
		),
	}
	r.registry.MustRegister(
		r.solves,
		r.iterations,
		r.toolCalls,
		collectors.NewGoCollector(),
	)
	return r
}

// ObserveOutcome records one finished solve.
func (r *Recorder) ObserveOutcome(o gonewton.Outcome) {
	if !o.OK() {
		r.solves.WithLabelValues(string(o.Kind())).Inc()
		return
	}
	term := o.Result.Termination.String()
	r.solves.WithLabelValues(term).Inc()
	r.iterations.WithLabelValues(term).Observe(float64(o.Result.Iterations))
}

// ObserveTool records one tool call.
func (r *Recorder) ObserveTool(tool string, resp gonewton.ToolResponse) {
	kind := string(resp.Kind)
	if kind == "" {
		kind = "ok"
	}
	r.toolCalls.WithLabelValues(tool, kind).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }
