// Package mcpserver exposes the gonewton tools over the Model Context
// Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/njchilds90/gonewton"
	"github.com/njchilds90/gonewton/internal/metrics"
)

// Server wraps a Solver as an MCP server.
type Server struct {
	solver  *gonewton.Solver
	metrics *metrics.Recorder
	logger  *slog.Logger
	mcp     *server.MCPServer
}

type Option func(*Server)

func WithMetrics(r *metrics.Recorder) Option { return func(s *Server) { s.metrics = r } }

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(solver *gonewton.Solver, opts ...Option) *Server {
	s := &Server{
		solver: solver,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		mcp:    server.NewMCPServer("gonewton", gonewton.Version, server.WithToolCapabilities(false)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// MCP returns the underlying server.
func (s *Server) MCP() *server.MCPServer { return s.mcp }

// ServeStdio serves on stdin and stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	function := mcp.WithString("function", mcp.Required(),
		mcp.Description("Function of x, or an equation such as 'x^2 = 2', 'y = ...' or 'f(x) = ...'"))
	x0 := mcp.WithNumber("x0", mcp.Required(), mcp.Description("Initial guess"))

	s.mcp.AddTool(mcp.NewTool("find_root",
		mcp.WithDescription("Find a root of f(x) with the Newton–Raphson method."),
		function, x0,
		mcp.WithNumber("epsilon", mcp.Required(), mcp.Description("Stop when |x_{n+1} - x_n| < epsilon")),
		mcp.WithNumber("max_iterations", mcp.Description("Iteration ceiling (default 100)")),
	), s.handler("find_root"))

	s.mcp.AddTool(mcp.NewTool("plot",
		mcp.WithDescription("Solve and return the plot primitives and viewport."),
		function, x0,
		mcp.WithNumber("epsilon", mcp.Required(), mcp.Description("Convergence tolerance")),
		mcp.WithNumber("max_iterations", mcp.Description("Iteration ceiling (default 100)")),
	), s.handler("plot"))

	s.mcp.AddTool(mcp.NewTool("check_convergence",
		mcp.WithDescription("Check |f(x0)·f''(x0)| < f'(x0)^2 at the initial guess."),
		function, x0,
	), s.handler("check_convergence"))

	s.mcp.AddTool(mcp.NewTool("normalize",
		mcp.WithDescription("Rewrite equation text into a zero-seeking expression."),
		function,
	), s.handler("normalize"))

	s.mcp.AddTool(mcp.NewTool("derivative",
		mcp.WithDescription("Exact symbolic derivative with respect to x."),
		function,
		mcp.WithNumber("order", mcp.Description("1 or 2 (default 1)")),
	), s.handler("derivative"))
}

// handler forwards a call to the solver's tool dispatcher. Domain failures
// become error results rather than protocol errors.
func (s *Server) handler(tool string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp := s.solver.HandleToolCall(gonewton.ToolRequest{Tool: tool, Params: request.GetArguments()})
		if s.metrics != nil {
			s.metrics.ObserveTool(tool, resp)
		}
		if resp.Error != "" {
			s.logger.Debug("tool failed", "tool", tool, "kind", resp.Kind, "error", resp.Error)
			return mcp.NewToolResultError(fmt.Sprintf("%s (%s)", resp.Error, resp.Kind)), nil
		}
		b, err := json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("encode %s result: %w", tool, err)
		}
		return mcp.NewToolResultText(string(b)), nil
	}
}
