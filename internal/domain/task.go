package domain

import "fmt"

// ErrInvalidTaskID is returned when a task ID is not a positive integer.
var ErrInvalidTaskID = fmt.Errorf("%w: task ID must be positive", ErrInvalidID)

// Task is a single to-do record. IDs are assigned by the task store and
// the priority never changes after creation.
type Task struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
	Priority    uint8  `json:"priority"`
}

// NewTask creates a not-yet-done task with the given ID.
// Returns an error if the ID is not positive.
func NewTask(id int64, description string, priority uint8) (Task, error) {
	task := Task{
		ID:          id,
		Description: description,
		Done:        false,
		Priority:    priority,
	}

	if err := task.Validate(); err != nil {
		return Task{}, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t Task) Validate() error {
	if t.ID <= 0 {
		return ErrInvalidTaskID
	}
	return nil
}

// Toggle flips the completion flag.
func (t *Task) Toggle() {
	t.Done = !t.Done
}

// ParseTaskID validates a raw identifier taken from outside the process.
func ParseTaskID(raw int64) (int64, error) {
	if raw <= 0 {
		return 0, NewValidationError("id", "must be a positive integer", ErrInvalidTaskID)
	}
	return raw, nil
}
