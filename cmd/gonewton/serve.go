package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gonewton/internal/httpapi"
	"github.com/njchilds90/gonewton/internal/metrics"
	"github.com/njchilds90/gonewton/internal/plot"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve exposes the solver as a JSON API:

  POST   /solve    solve and draw on the shared canvas
  POST   /tool     execute a tool call
  GET    /schema   tool schema
  GET    /plot     canvas as a Desmos state
  DELETE /plot     clear the canvas
  GET    /health   liveness check
  GET    /metrics  Prometheus metrics (unless disabled)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if noMetrics, _ := cmd.Flags().GetBool("no-metrics"); noMetrics {
				cfg.Metrics = false
			}

			opts := []httpapi.Option{
				httpapi.WithLogger(logger),
				httpapi.WithCanvas(plot.NewCanvas()),
			}
			if cfg.Metrics {
				opts = append(opts, httpapi.WithMetrics(metrics.New()))
			}
			api := httpapi.New(newSolver(cfg, logger), opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return httpapi.Serve(ctx, httpapi.NewHTTPServer(cfg.Address, api.Handler()), logger)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (default: config address)")
	cmd.Flags().Bool("no-metrics", false, "Do not expose /metrics")
	return cmd
}
