package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gonewton"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check FUNCTION --x0 GUESS",
		Short: "Evaluate the convergence condition at x0",
		Long: `Check evaluates |f(x0)·f''(x0)| < f'(x0)^2, a sufficient condition for
Newton–Raphson to converge from x0. It is advisory only.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := loadConfig(cmd); err != nil {
				return err
			}
			x0Text, _ := cmd.Flags().GetString("x0")
			asJSON, _ := cmd.Flags().GetBool("json")

			x0, _, err := gonewton.ParseInputs(x0Text, "1")
			if err != nil {
				return err
			}
			norm, err := gonewton.Normalize(args[0])
			if err != nil {
				return err
			}
			f, err := gonewton.Parse(norm)
			if err != nil {
				return err
			}
			rep, err := gonewton.CheckConvergence(f, x0)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rep.Message())
			return err
		},
	}
	cmd.Flags().String("x0", "", "Initial guess (required)")
	cmd.Flags().Bool("json", false, "Print the report as JSON")
	_ = cmd.MarkFlagRequired("x0")
	return cmd
}
