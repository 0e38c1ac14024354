package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
)

// Ensure TaskTracker implements the interface.
var _ driving.TaskService = (*TaskTracker)(nil)

// TaskTracker records bulk ingestion progress in a task store so callers
// can poll a job while it runs. The job owning a task is its only
// writer; the store provides reader isolation.
type TaskTracker struct {
	store driven.TaskStore
}

// NewTaskTracker creates a new task tracker.
func NewTaskTracker(store driven.TaskStore) *TaskTracker {
	return &TaskTracker{store: store}
}

// Create registers a new task in the processing state and returns its id.
func (t *TaskTracker) Create(ctx context.Context) (string, error) {
	task := &domain.Task{
		ID:        uuid.NewString(),
		Status:    domain.TaskProcessing,
		StartedAt: time.Now(),
	}
	if err := t.store.Save(ctx, task); err != nil {
		return "", fmt.Errorf("save task: %w", err)
	}
	return task.ID, nil
}

// Update applies one progress event to a task: position, current file,
// the per-file outcome, and the error message when the file failed.
func (t *TaskTracker) Update(ctx context.Context, id string, event domain.ProgressEvent) error {
	task, err := t.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if task.Status.Terminal() {
		return fmt.Errorf("update task %s (%s): %w", id, task.Status, domain.ErrTaskTerminal)
	}

	task.Current = event.Current
	task.Total = event.Total
	task.CurrentFile = event.Filename

	fileResult := domain.FileResult{Filename: event.Filename, Status: event.Status}
	if event.Err != nil {
		fileResult.Detail = event.Err.Error()
		task.Errors = append(task.Errors, fmt.Sprintf("%s: %v", event.Filename, event.Err))
	}
	task.ProcessedFiles = append(task.ProcessedFiles, fileResult)

	if err := t.store.Save(ctx, task); err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Complete marks the task completed and attaches the batch result.
func (t *TaskTracker) Complete(ctx context.Context, id string, result *domain.BatchResult) error {
	task, err := t.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if task.Status.Terminal() {
		return fmt.Errorf("complete task %s (%s): %w", id, task.Status, domain.ErrTaskTerminal)
	}

	now := time.Now()
	task.Status = domain.TaskCompleted
	task.CompletedAt = &now
	task.Result = result

	if err := t.store.Save(ctx, task); err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Fail marks the task failed with the batch-level reason.
func (t *TaskTracker) Fail(ctx context.Context, id, reason string) error {
	task, err := t.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if task.Status.Terminal() {
		return fmt.Errorf("fail task %s (%s): %w", id, task.Status, domain.ErrTaskTerminal)
	}

	now := time.Now()
	task.Status = domain.TaskFailed
	task.CompletedAt = &now
	task.Errors = append(task.Errors, reason)

	if err := t.store.Save(ctx, task); err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Get returns a copy of the task.
func (t *TaskTracker) Get(ctx context.Context, id string) (*domain.Task, error) {
	return t.store.Get(ctx, id)
}

// List returns copies of all tasks, most-recently-started first.
func (t *TaskTracker) List(ctx context.Context) ([]*domain.Task, error) {
	return t.store.List(ctx)
}
