package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/njchilds90/gonewton"
	"github.com/njchilds90/gonewton/internal/report"
)

// NewSolveCmd creates the solve command.
func NewSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve FUNCTION --x0 GUESS",
		Short: "Find a root of FUNCTION starting from x0",
		Long: `Solve runs Newton–Raphson on FUNCTION from the initial guess x0 and
prints a report with the root, the iteration trace and the convergence
advisory.

Examples:
  gonewton solve "x^2 - 2" --x0 1
  gonewton solve "cos(x) = x" --x0 1 --epsilon 1e-12 --format json
  gonewton solve "f(x) = x^3 - 2x - 5" --x0 -1 --format text`,
		Args: cobra.ExactArgs(1),
		RunE: runSolveCmd,
	}

	cmd.Flags().String("x0", "", "Initial guess (required)")
	cmd.Flags().String("epsilon", "", "Stop when |x_{n+1} - x_n| < epsilon (default: config tolerance)")
	cmd.Flags().Float64("tolerance", 0, "Override the configured default epsilon")
	cmd.Flags().Int("max-iterations", 0, "Override the configured iteration ceiling")
	cmd.Flags().StringP("format", "f", "", "Report format: markdown, json or text (default: config format)")
	cmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
	_ = cmd.MarkFlagRequired("x0")

	return cmd
}

func runSolveCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	x0Text, _ := cmd.Flags().GetString("x0")
	epsText, _ := cmd.Flags().GetString("epsilon")
	if epsText == "" {
		epsText = strconv.FormatFloat(cfg.Tolerance, 'g', -1, 64)
	}

	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	raw, _ := cmd.Flags().GetBool("raw")
	out := cmd.OutOrStdout()

	var render report.RenderFunc
	if format == report.FormatMarkdown && !raw {
		if width, ok := terminalWidth(out); ok {
			render, err = report.NewGlamourRenderer("", width)
			if err != nil {
				return err
			}
		}
	}
	display := report.New(format, out, render)

	solver := newSolver(cfg, logger)
	var outcome gonewton.Outcome
	x0, eps, err := gonewton.ParseInputs(x0Text, epsText)
	if err != nil {
		outcome = gonewton.Outcome{Request: gonewton.Request{Function: args[0]}, Err: err}
		err = display.Show(outcome)
	} else {
		outcome, err = solver.SolveAndShow(gonewton.Request{Function: args[0], X0: x0, Epsilon: eps}, display)
	}
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if !outcome.OK() {
		return fmt.Errorf("solve failed: %s", outcome.Kind())
	}
	return nil
}

// terminalWidth reports the width of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80, true
	}
	return width, true
}
