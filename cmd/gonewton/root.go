package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gonewton"
	"github.com/njchilds90/gonewton/internal/config"
	"github.com/njchilds90/gonewton/internal/logging"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gonewton",
		Short: "Newton–Raphson root finder for functions of x",
		Long: `gonewton finds a root of f(x) with the Newton–Raphson method.

Functions are written in ordinary notation ("x^3 - 2x - 5", "cos(x) = x",
"f(x) = e^x - 3"). An equation A = B is solved as A - B = 0.

Settings are read from --config, ./.gonewton.yaml or
$XDG_CONFIG_HOME/gonewton/config.yaml, in that order.`,
		Version:       gonewton.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	cmd.PersistentFlags().String("log-format", config.DefaultLogFormat, "Log format: text or json")

	cmd.AddCommand(NewSolveCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewDiffCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides. Logging goes
// to stderr so stdout stays clean for reports and the stdio transport.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, used, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Lookup("tolerance") != nil && flags.Changed("tolerance") {
		cfg.Tolerance, _ = flags.GetFloat64("tolerance")
	}
	if flags.Lookup("max-iterations") != nil && flags.Changed("max-iterations") {
		cfg.MaxIterations, _ = flags.GetInt("max-iterations")
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Format, _ = flags.GetString("format")
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Address, _ = flags.GetString("addr")
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := logging.NewWriter(cmd.ErrOrStderr(), level, cfg.LogFormat)
	if used != "" {
		logger.Debug("loaded config", "path", used)
	}
	return cfg, logger, nil
}

func newSolver(cfg *config.Config, logger *slog.Logger) *gonewton.Solver {
	return gonewton.NewSolver(
		gonewton.WithLogger(logger),
		gonewton.WithFindOptions(
			gonewton.WithMaxIterations(cfg.MaxIterations),
			gonewton.WithDerivativeFloor(cfg.DerivativeFloor),
		),
	)
}
