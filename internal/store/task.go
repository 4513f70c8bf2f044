package store

import (
	"context"

	"github.com/phrazzld/todo-api/internal/domain"
)

// TaskPersister reads and writes the whole task collection as one document.
// Implementations never keep a reference to the slice passed to Save.
type TaskPersister interface {
	// Load returns the persisted collection. A missing, unreadable or
	// malformed document yields an empty collection, never an error.
	Load(ctx context.Context) []domain.Task

	// Save overwrites the persisted document with tasks in full.
	// Returns an error wrapping ErrPersistenceUnavailable if the document
	// cannot be opened or written.
	Save(ctx context.Context, tasks []domain.Task) error
}
