package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/gonewton"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gonewton",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gonewton version %s\n", gonewton.Version)
		},
	}
}
