package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/store"
)

// DefaultPath is the document location used when none is configured.
const DefaultPath = "tasks.json"

// TaskFile implements store.TaskPersister on top of an afero filesystem.
type TaskFile struct {
	fs     afero.Fs
	path   string
	schema *jsonschema.Schema
	logger *slog.Logger
}

// Ensure TaskFile implements store.TaskPersister.
var _ store.TaskPersister = (*TaskFile)(nil)

// NewTaskFile creates a TaskFile that keeps the collection at path on fsys.
// An empty path falls back to DefaultPath.
func NewTaskFile(fsys afero.Fs, path string, logger *slog.Logger) (*TaskFile, error) {
	if fsys == nil {
		return nil, errors.New("filesystem cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = DefaultPath
	}

	schema, err := compileTaskSchema()
	if err != nil {
		return nil, err
	}

	return &TaskFile{
		fs:     fsys,
		path:   path,
		schema: schema,
		logger: logger.With(slog.String("component", "task_file")),
	}, nil
}

// Path returns the location of the backing document.
func (f *TaskFile) Path() string {
	return f.path
}

// Load reads the backing document. Any problem (missing file, read error,
// invalid JSON, schema violation) is logged and results in an empty
// collection; no partial recovery is attempted.
func (f *TaskFile) Load(ctx context.Context) []domain.Task {
	log := logger.FromContextOrDefault(ctx, f.logger)

	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("task file not found, starting with an empty collection",
				slog.String("path", f.path))
		} else {
			log.Warn("task file unreadable, starting with an empty collection",
				slog.String("path", f.path),
				slog.String("error", err.Error()))
		}
		return []domain.Task{}
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Warn("task file is not valid JSON, starting with an empty collection",
			slog.String("path", f.path),
			slog.String("error", err.Error()))
		return []domain.Task{}
	}

	if err := f.schema.Validate(doc); err != nil {
		log.Warn("task file does not match the task schema, starting with an empty collection",
			slog.String("path", f.path),
			slog.Any("violations", schemaViolations(err)))
		return []domain.Task{}
	}

	tasks := []domain.Task{}
	if err := json.Unmarshal(data, &tasks); err != nil {
		log.Warn("task file could not be decoded, starting with an empty collection",
			slog.String("path", f.path),
			slog.String("error", err.Error()))
		return []domain.Task{}
	}

	log.Info("loaded tasks", slog.String("path", f.path), slog.Int("count", len(tasks)))
	return tasks
}

// Save serializes tasks as a pretty-printed JSON array and overwrites the
// backing document (create, truncate, write). A nil slice is written as [].
func (f *TaskFile) Save(ctx context.Context, tasks []domain.Task) error {
	log := logger.FromContextOrDefault(ctx, f.logger)

	if tasks == nil {
		tasks = []domain.Task{}
	}

	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return store.NewStoreError("task", "save", "failed to encode collection", err)
	}
	data = append(data, '\n')

	file, err := f.fs.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		log.Error("failed to open task file for writing",
			slog.String("path", f.path),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "save", "cannot open backing file",
			fmt.Errorf("%w: %w", store.ErrPersistenceUnavailable, err))
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		log.Error("failed to write task file",
			slog.String("path", f.path),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "save", "cannot write backing file",
			fmt.Errorf("%w: %w", store.ErrPersistenceUnavailable, err))
	}

	if err := file.Close(); err != nil {
		log.Error("failed to close task file",
			slog.String("path", f.path),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "save", "cannot close backing file",
			fmt.Errorf("%w: %w", store.ErrPersistenceUnavailable, err))
	}

	log.Debug("saved tasks", slog.String("path", f.path), slog.Int("count", len(tasks)))
	return nil
}
