package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	wsmcp "github.com/WorksphereAI/worksphereai-sub002/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  "Commands for running the WorkSphere assistant MCP (Model Context Protocol) server.",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assistant MCP server on stdio",
	Long: `Start the assistant MCP server on stdio transport.

The server exposes the assistant as MCP tools that desktop AI clients can
call: ask_assistant, get_metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if OpenBackend == nil {
			return fmt.Errorf("backend not initialized")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		be, err := OpenBackend(ctx)
		if err != nil {
			return fmt.Errorf("opening backend: %w", err)
		}
		defer be.Close()

		srv := wsmcp.NewServer(be.Gateway, be.Dispatcher, be.Metrics, appVersion)
		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("running MCP server: %w", err)
		}
		return nil
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}
