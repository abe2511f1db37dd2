package task

import "context"

// Repository defines the storage interface for tasks.
type Repository interface {
	// CreateTask adds a new task to the repository.
	// An empty ID is replaced with a generated one.
	CreateTask(ctx context.Context, task *Task) error

	// GetTask retrieves a task by ID.
	// Returns ErrTaskNotFound if no task has the ID.
	GetTask(ctx context.Context, id string) (*Task, error)

	// ListTasks returns all tasks ordered by schedule.
	ListTasks(ctx context.Context) ([]*Task, error)

	// DeleteTask removes a task and its dependency links.
	// Children of a deleted summary become top-level tasks.
	DeleteTask(ctx context.Context, id string) error

	// ApplyUpdates applies a batch of partial updates atomically.
	// Summary tasks whose children changed are re-spanned in the same
	// transaction, so readers never observe a partially updated chart.
	ApplyUpdates(ctx context.Context, updates []Update) error

	// Close releases any resources held by the repository.
	Close() error
}
