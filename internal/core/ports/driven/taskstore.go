package driven

import (
	"context"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

// TaskStore persists bulk ingestion task records. Implementations must
// be safe for concurrent readers while one writer updates a given task;
// no two writers ever update the same task id.
type TaskStore interface {
	// Save stores or replaces a task record.
	Save(ctx context.Context, task *domain.Task) error

	// Get retrieves a task by id.
	// Returns domain.ErrTaskNotFound when absent.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// List returns every task ordered most-recently-started first.
	List(ctx context.Context) ([]*domain.Task, error)
}
