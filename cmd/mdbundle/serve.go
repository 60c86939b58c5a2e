package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/mdbundle/internal/config"
	bundlemcp "github.com/gorewood/mdbundle/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run mdbundle as a Model Context Protocol (MCP) server over stdio.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "mdbundle": {
        "command": "mdbundle",
        "args": ["serve"]
      }
    }
  }

The converter program and PDF engine come from mdbundle's configuration;
tool calls may only choose the summary and output paths.

Available tools: extract, bundle`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			server := bundlemcp.NewServer(buildVersion(), cfg)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
