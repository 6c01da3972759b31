package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/storefront/internal/app"
	"github.com/angelmondragon/storefront/internal/cli"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}

	// Only warnings and errors reach the terminal unless debug logging is requested.
	level := "warn"
	if cfg.App.LogLevel == "debug" {
		level = "debug"
	}
	logg := logger.New(logger.Options{
		ServiceName: "storefront-cli",
		Level:       logger.ParseLevel(level),
		Output:      os.Stderr,
		Format:      "console",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context) (*app.App, error) {
		return app.New(ctx, cfg, logg, app.Options{})
	}
	os.Exit(cli.Run(ctx, factory, os.Args[1:], os.Stdout, os.Stderr))
}
