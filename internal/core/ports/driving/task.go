package driving

import (
	"context"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

// TaskService tracks bulk ingestion jobs and answers progress queries.
type TaskService interface {
	// Create registers a new task in the processing state and returns
	// its id.
	Create(ctx context.Context) (string, error)

	// Update applies one progress event to a task. Only the job that
	// owns the task calls this.
	Update(ctx context.Context, id string, event domain.ProgressEvent) error

	// Complete marks the task completed and attaches the batch result.
	// Called exactly once, after the batch loop finishes.
	Complete(ctx context.Context, id string, result *domain.BatchResult) error

	// Fail marks the task failed with the batch-level reason.
	// Called exactly once, when the batch aborts.
	Fail(ctx context.Context, id, reason string) error

	// Get returns a copy of the task.
	// Returns domain.ErrTaskNotFound when absent.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// List returns copies of all tasks, most-recently-started first.
	List(ctx context.Context) ([]*domain.Task, error)
}

// JobRunner dispatches bulk jobs onto a bounded background pool.
type JobRunner interface {
	// Submit schedules a job. It blocks only when the pool is
	// saturated.
	Submit(job func()) error

	// Release drains the pool and stops accepting jobs.
	Release()
}
