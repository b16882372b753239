package cmd

import (
	"context"
	"fmt"

	"github.com/mrtimely/timely-cli/internal/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server provides tools for querying and driving the activity tracker.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !appConfig.MCP.Enabled {
			return fmt.Errorf("MCP server is disabled in the config")
		}

		fmt.Println("🚀 Starting MCP server...")
		fmt.Println("   The server will communicate via stdio")
		fmt.Println("   Press Ctrl+C to stop")

		ctx := context.Background()

		if err := sessionService.Load(ctx); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		server := mcp.NewServer(sessionService)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}

		return nil
	},
}
