package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gonewton"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff FUNCTION",
		Short: "Print the symbolic derivative of FUNCTION",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, _ := cmd.Flags().GetInt("order")
			latex, _ := cmd.Flags().GetBool("latex")

			norm, err := gonewton.Normalize(args[0])
			if err != nil {
				return err
			}
			f, err := gonewton.Parse(norm)
			if err != nil {
				return err
			}
			d, err := f.Derivative(order)
			if err != nil {
				return err
			}
			if latex {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), d.LaTeX())
			} else {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), d.String())
			}
			return err
		},
	}
	cmd.Flags().IntP("order", "n", 1, "Derivative order: 1 or 2")
	cmd.Flags().Bool("latex", false, "Print LaTeX instead of plain text")
	return cmd
}
