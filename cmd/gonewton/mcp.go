package main

import (
	"github.com/spf13/cobra"

	"github.com/njchilds90/gonewton/internal/mcpserver"
)

// NewMCPCmd creates the mcp command.
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol server on stdio",
		Long: `Starts gonewton as an MCP server on standard input and output, so AI
agents can call find_root, plot, check_convergence, normalize and
derivative as tools. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger.Info("starting MCP server (stdio)")
			srv := mcpserver.New(newSolver(cfg, logger), mcpserver.WithLogger(logger))
			return srv.ServeStdio()
		},
	}
}
