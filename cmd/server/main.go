// Package main implements the entry point for the task list API server,
// which keeps a small collection of tasks in memory and mirrors every
// change to a JSON file.
package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
)

// main is the entry point for the todo-api server.
// It loads configuration, sets up logging, restores the task collection from
// disk, and serves HTTP until the process receives SIGINT or SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("Failed to run application: %v", err)
	}
}

// run wires the application together and blocks until ctx is canceled or
// the server fails.
func run(ctx context.Context) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	l, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, l, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
