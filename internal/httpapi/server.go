// Package httpapi serves gonewton over HTTP.
//
// Routes:
//
//	POST   /solve   run one solve and draw it on the shared canvas
//	POST   /tool    execute a tool call
//	GET    /schema  tool schema for agent registration
//	GET    /plot    the canvas as a Desmos state
//	DELETE /plot    clear the canvas
//	GET    /health  liveness check
//	GET    /metrics Prometheus metrics, when enabled
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/njchilds90/gonewton"
	"github.com/njchilds90/gonewton/internal/metrics"
	"github.com/njchilds90/gonewton/internal/plot"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Server holds the handler dependencies.
type Server struct {
	solver  *gonewton.Solver
	canvas  *plot.Canvas
	metrics *metrics.Recorder
	logger  *slog.Logger
}

type Option func(*Server)

func WithCanvas(c *plot.Canvas) Option { return func(s *Server) { s.canvas = c } }

// WithMetrics records solves and tool calls and mounts GET /metrics.
func WithMetrics(r *metrics.Recorder) Option { return func(s *Server) { s.metrics = r } }

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Server. Without WithCanvas it draws on a private canvas.
func New(solver *gonewton.Solver, opts ...Option) *Server {
	s := &Server{
		solver: solver,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.canvas == nil {
		s.canvas = plot.NewCanvas()
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger, middleware.Recoverer)

	r.Post("/solve", s.handleSolve)
	r.Post("/tool", s.handleTool)
	r.Get("/schema", s.handleSchema)
	r.Get("/plot", s.handlePlot)
	r.Delete("/plot", s.handleResetPlot)
	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	return r
}

// solveBody accepts x0 and epsilon as JSON numbers or as text.
type solveBody struct {
	Function string     `json:"function"`
	X0       flexNumber `json:"x0"`
	Epsilon  flexNumber `json:"epsilon"`
}

type flexNumber string

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = flexNumber(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = flexNumber(num)
	return nil
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var body solveBody
	if !s.decode(w, r, &body) {
		return
	}

	var out gonewton.Outcome
	x0, eps, err := gonewton.ParseInputs(string(body.X0), string(body.Epsilon))
	if err != nil && strings.TrimSpace(body.Function) != "" {
		out = gonewton.Outcome{Request: gonewton.Request{Function: body.Function}, Err: err}
	} else {
		out = s.solver.Solve(gonewton.Request{Function: body.Function, X0: x0, Epsilon: eps})
	}

	if s.metrics != nil {
		s.metrics.ObserveOutcome(out)
	}
	if err := s.canvas.Show(out); err != nil {
		s.logger.Error("draw failed", "error", err)
	}

	status := http.StatusOK
	if !out.OK() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, out)
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	var req gonewton.ToolRequest
	if !s.decode(w, r, &req) {
		return
	}
	resp := s.solver.HandleToolCall(req)
	if s.metrics != nil {
		s.metrics.ObserveTool(req.Tool, resp)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, gonewton.MCPToolSpec())
}

func (s *Server) handlePlot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.canvas.Desmos())
}

func (s *Server) handleResetPlot(w http.ResponseWriter, _ *http.Request) {
	if err := s.canvas.Reset(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": gonewton.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// decode reads exactly one JSON value into v, answering 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
			return false
		}
		s.logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	if dec.More() {
		writeError(w, http.StatusBadRequest, "invalid JSON: trailing data")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
