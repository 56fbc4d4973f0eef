package main

import (
	"github.com/spf13/cobra"

	"github.com/moviedeck/moviedeck/internal/config"
	mcpserver "github.com/moviedeck/moviedeck/internal/mcp"
)

// newMCPServeCmd returns the "mcp-serve" subcommand.
// It starts an MCP server over stdin/stdout so MCP clients can browse
// movie lists and detail screens as tools.
func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-serve",
		Short: "Start MCP server over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logger := config.SetupLogger(cfg.App.LogLevel)
			client := initTMDb(cfg, logger)

			srv := mcpserver.NewServer(mcpserver.Deps{
				Catalog: client,
				Details: client,
				Config:  client,
			}, logger)
			return srv.ServeStdio(cmd.Context())
		},
	}
}
