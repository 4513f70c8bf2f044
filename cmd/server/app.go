package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/jsonfile"
	"github.com/phrazzld/todo-api/internal/service"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	fs        afero.Fs
	taskFile  *jsonfile.TaskFile
	taskStore service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
// A nil fs selects the operating system filesystem. The task collection is
// restored from the configured storage path before the store is built.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	fs afero.Fs,
) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if fs == nil {
		fs = afero.NewOsFs()
	}

	app := &application{
		config: cfg,
		logger: logger,
		fs:     fs,
	}

	var err error
	app.taskFile, err = jsonfile.NewTaskFile(fs, cfg.Storage.Path, logger.With("component", "task_file"))
	if err != nil {
		return nil, fmt.Errorf("failed to create task file: %w", err)
	}

	initial := app.taskFile.Load(ctx)
	logger.Info("Task collection restored",
		"path", app.taskFile.Path(),
		"task_count", len(initial))

	app.taskStore, err = service.NewTaskService(
		app.taskFile,
		initial,
		logger.With("component", "task_service"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
