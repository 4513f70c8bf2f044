package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/phrazzld/todo-api/internal/redact"
	"github.com/phrazzld/todo-api/internal/store"
)

// TaskService owns the task collection and exposes the operations allowed on it.
// Every mutation is written through to the persister before it returns.
type TaskService interface {
	// List returns a snapshot of the collection in insertion order.
	List(ctx context.Context) []domain.Task

	// Add appends a new, not-done task and returns it with its assigned ID.
	Add(ctx context.Context, description string, priority uint8) (domain.Task, error)

	// ToggleDone flips the done flag of the task with the given ID.
	// Returns ErrTaskNotFound if no such task exists.
	ToggleDone(ctx context.Context, id int64) (domain.Task, error)

	// Remove deletes every task with the given ID.
	// Returns ErrTaskNotFound if nothing was removed.
	Remove(ctx context.Context, id int64) error
}

// taskServiceImpl implements TaskService with a single mutex held for the
// whole of each operation, persistence write included. List takes the same
// lock, so readers never observe a half-applied mutation.
type taskServiceImpl struct {
	mu        sync.Mutex
	tasks     []domain.Task
	persister store.TaskPersister
	logger    *slog.Logger
}

// Ensure taskServiceImpl implements TaskService.
var _ TaskService = (*taskServiceImpl)(nil)

// NewTaskService creates a TaskService seeded with a copy of initial, which
// is normally the collection returned by persister.Load at startup.
func NewTaskService(
	persister store.TaskPersister,
	initial []domain.Task,
	logger *slog.Logger,
) (TaskService, error) {
	if persister == nil {
		return nil, ErrNilPersister
	}
	if logger == nil {
		logger = slog.Default()
	}

	tasks := make([]domain.Task, len(initial))
	copy(tasks, initial)

	return &taskServiceImpl{
		tasks:     tasks,
		persister: persister,
		logger:    logger.With(slog.String("component", "task_service")),
	}, nil
}

// List implements TaskService.
func (s *taskServiceImpl) List(ctx context.Context) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]domain.Task, len(s.tasks))
	copy(snapshot, s.tasks)
	return snapshot
}

// Add implements TaskService.
func (s *taskServiceImpl) Add(ctx context.Context, description string, priority uint8) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := domain.NewTask(s.nextID(log), description, priority)
	if err != nil {
		return domain.Task{}, NewTaskServiceError("add_task", "failed to create task", err)
	}

	s.tasks = append(s.tasks, task)

	if err := s.persister.Save(ctx, s.tasks); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		log.Error("failed to persist new task, change rolled back",
			slog.Int64("task_id", task.ID),
			slog.String("error", redact.Error(err)))
		return domain.Task{}, NewTaskServiceError("add_task", "failed to persist tasks", err)
	}

	log.Info("task added",
		slog.Int64("task_id", task.ID),
		slog.Int("priority", int(task.Priority)))
	return task, nil
}

// ToggleDone implements TaskService.
func (s *taskServiceImpl) ToggleDone(ctx context.Context, id int64) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}

		s.tasks[i].Toggle()

		if err := s.persister.Save(ctx, s.tasks); err != nil {
			s.tasks[i].Toggle()
			log.Error("failed to persist toggled task, change rolled back",
				slog.Int64("task_id", id),
				slog.String("error", redact.Error(err)))
			return domain.Task{}, NewTaskServiceError("toggle_task", "failed to persist tasks", err)
		}

		log.Info("task toggled", slog.Int64("task_id", id), slog.Bool("done", s.tasks[i].Done))
		return s.tasks[i], nil
	}

	log.Debug("task not found for toggle", slog.Int64("task_id", id))
	return domain.Task{}, ErrTaskNotFound
}

// Remove implements TaskService.
func (s *taskServiceImpl) Remove(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}

	if len(kept) == len(s.tasks) {
		log.Debug("task not found for removal", slog.Int64("task_id", id))
		return ErrTaskNotFound
	}

	previous := s.tasks
	s.tasks = kept

	if err := s.persister.Save(ctx, s.tasks); err != nil {
		s.tasks = previous
		log.Error("failed to persist task removal, change rolled back",
			slog.Int64("task_id", id),
			slog.String("error", redact.Error(err)))
		return NewTaskServiceError("remove_task", "failed to persist tasks", err)
	}

	log.Info("task removed", slog.Int64("task_id", id))
	return nil
}

// nextID returns the last task's ID plus one, or 1 for an empty collection.
// The tail is only guaranteed to hold the largest ID when the collection was
// built through Add; a hand-edited document can break that, so a colliding
// candidate falls back to the largest ID plus one. Callers must hold s.mu.
func (s *taskServiceImpl) nextID(log *slog.Logger) int64 {
	if len(s.tasks) == 0 {
		return 1
	}

	candidate := s.tasks[len(s.tasks)-1].ID + 1

	var maxID int64
	collision := false
	for _, t := range s.tasks {
		if t.ID == candidate {
			collision = true
		}
		if t.ID > maxID {
			maxID = t.ID
		}
	}

	if !collision {
		return candidate
	}

	log.Warn("next task ID already in use, falling back to highest ID",
		slog.Int64("candidate_id", candidate),
		slog.Int64("assigned_id", maxID+1))
	return maxID + 1
}
