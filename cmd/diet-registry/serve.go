// cmd/diet-registry/serve.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mcp-diet-registry/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}

	cmd.Flags().String("transport", "", "Transport mode: http")
	cmd.Flags().Int("port", 0, "Port for HTTP transport")
	cmd.Flags().String("host", "", "Host address")
	cmd.Flags().String("db-path", "", "Database path")
	bindFlags(a.v, cmd, map[string]string{
		"server.transport": "transport",
		"server.port":      "port",
		"server.host":      "host",
		"storage.dbPath":   "db-path",
	})
	return cmd
}

func (a *app) serve(parent context.Context) error {
	if a.cfg.Server.Transport != "http" {
		return fmt.Errorf("unsupported transport %q", a.cfg.Server.Transport)
	}

	srv, err := server.NewRegistryServer(a.cfg, a.log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	var serveErr error
	select {
	case <-sigCh:
		a.log.Info("Received shutdown signal")
	case serveErr = <-errCh:
		if serveErr != nil {
			a.log.Error("Server error", "error", serveErr)
		}
	}

	a.log.Info("Shutting down")
	cancel()
	if err := srv.Stop(); err != nil {
		a.log.Error("Error during shutdown", "error", err)
	}
	return serveErr
}
