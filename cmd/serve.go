package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/comic-composer/internal/config"
	"github.com/kozaktomas/comic-composer/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Comic Composer web server.
The server exposes preset discovery and a compose endpoint that runs the
same pipeline as the compose command.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (default from COMPOSER_PORT or 8080)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from COMPOSER_HOST or 0.0.0.0)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	host := mustGetString(cmd, "host")
	if host == "" {
		host = cfg.Serve.Host
	}
	port := mustGetInt(cmd, "port")
	if port == 0 {
		port = cfg.Serve.Port
	}

	server := web.NewServer(cfg, host, port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigChan:
		fmt.Printf("\nReceived %s, shutting down...\n", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
