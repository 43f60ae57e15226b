package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for minimal containers

	"github.com/ericfisherdev/pr2pdf/internal/adapter/driving/cli"
	"github.com/ericfisherdev/pr2pdf/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Logging goes to stderr so stdout only carries the summary.
	level := new(slog.LevelVar)
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))

	// 2. Load configuration from the environment; flags override it later.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 3. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCommand(cfg, level).ExecuteContext(ctx)
}
