package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/WorksphereAI/worksphereai-sub002/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the assistant HTTP server",
	Long: `Start the assistant HTTP server.

Routes: POST /ai-assistant, GET /ai-assistant/history, GET /metrics,
GET /health. The server shuts down gracefully on SIGINT/SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if OpenBackend == nil {
			return fmt.Errorf("backend not initialized")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		be, err := OpenBackend(ctx)
		if err != nil {
			return fmt.Errorf("opening backend: %w", err)
		}
		defer be.Close()

		port := Cfg.Server.Port
		if servePort != 0 {
			port = servePort
		}

		srv := server.New(
			server.Config{Addr: fmt.Sprintf(":%d", port), CORSOrigin: Cfg.Server.CORSOrigin},
			be.Gateway, be.Dispatcher, be.History, be.EventLog, be.Metrics, Log,
		)

		Log.Info("assistant server listening", zap.Int("port", port))
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides configuration)")
	rootCmd.AddCommand(serveCmd)
}
