package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/terminal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logs go to stderr, the storefront itself to stdout
	logger := config.NewLoggerTo(os.Stderr, cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, cleanup, err := app.NewCatalog(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize catalogue: %w", err)
	}
	defer cleanup()

	fmt.Fprintln(os.Stdout, "Storefront. Type to search, :help for commands.")

	session := terminal.NewSession(os.Stdin, os.Stdout, client, logger,
		terminal.WithPageSize(cfg.View.PageSize),
		terminal.WithDebounce(cfg.View.DebounceDelay, nil),
	)
	return session.Run(ctx)
}
