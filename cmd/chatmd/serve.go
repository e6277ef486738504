package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	chatmdmcp "github.com/gorewood/chatmd/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run chatmd as a Model Context Protocol (MCP) server over stdio.

This exposes the conversion pipeline as MCP tools that any MCP-capable agent
environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "chatmd": {
        "command": "chatmd",
        "args": ["serve"]
      }
    }
  }

Available tools: linearize, convert, convert_file, search`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := chatmdmcp.NewServer(buildVersion())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
