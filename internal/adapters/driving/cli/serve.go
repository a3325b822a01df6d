package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/traceleaf/docrag/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serves the retrieval pipeline over a JSON API.

Endpoints:
  GET  /health  liveness probe
  POST /ingest  {"path": "./docs"}
  POST /ask     {"query": "how do I ..."}`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := ensurePipeline(); err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = appConfig.Server.Addr
	}

	server := httpapi.NewServer(pipelineService, addr)
	if err := server.Start(); err != nil {
		return err
	}
	cmd.Printf("docrag API listening on %s\n", server.Addr())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
