// Command server runs the catalog HTTP API and the reference data poller.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/game-catalog-service/internal/config"
	"github.com/preston-bernstein/game-catalog-service/internal/logging"
	"github.com/preston-bernstein/game-catalog-service/internal/server"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, stop, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, stop context.CancelFunc, args []string, out io.Writer) int {
	if len(args) > 0 && (args[0] == "-version" || args[0] == "--version") {
		fmt.Fprintln(out, version)
		return 0
	}
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return 0
	}

	cfg := config.Load()
	if cfg.Metrics.ServiceVersion == "" {
		cfg.Metrics.ServiceVersion = version
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.Metrics.ServiceName,
		Version: cfg.Metrics.ServiceVersion,
	})

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		logging.Error(logger, "server setup failed", err)
		return 1
	}
	srv.Run(ctx, stop)
	return 0
}
