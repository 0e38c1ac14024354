package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

// processingTask returns a task in its just-started shape.
func processingTask(id string, startedAt time.Time) *domain.Task {
	return &domain.Task{
		ID:        id,
		Status:    domain.TaskProcessing,
		StartedAt: startedAt,
	}
}

// ==================== Store Creation and Initialization Tests ====================

// TestNewStore_CreatesDatabase tests that NewStore creates the database
// file along with any missing parent directories.
func TestNewStore_CreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tasks.db")

	store, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	assert.Equal(t, path, store.Path())
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

// TestNewStore_ReopensExistingDatabase tests that a second open of the
// same database succeeds without re-running applied migrations.
func TestNewStore_ReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")

	first, err := NewStore(path)
	require.NoError(t, err)

	task := processingTask("task-1", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, first.TaskStore().Save(context.Background(), task))
	require.NoError(t, first.Close())

	second, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, second.Close()) })

	got, err := second.TaskStore().Get(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskProcessing, got.Status)
}

// TestNewStore_ParentIsFile tests the error path when the parent
// directory cannot be created.
func TestNewStore_ParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "notdir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	_, err := NewStore(filepath.Join(blocker, "tasks.db"))
	assert.Error(t, err)
}

// ==================== Task Store Tests ====================

// TestTaskStore_SaveAndGet tests storing and retrieving a task with
// every field populated.
func TestTaskStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	tasks := store.TaskStore()
	ctx := context.Background()

	started := time.Now().UTC().Truncate(time.Second)
	completed := started.Add(42 * time.Second)
	task := &domain.Task{
		ID:          "task-1",
		Status:      domain.TaskCompleted,
		Current:     3,
		Total:       3,
		CurrentFile: "notes.md",
		StartedAt:   started,
		CompletedAt: &completed,
		Errors:      []string{"report.pdf: upload failed"},
		ProcessedFiles: []domain.FileResult{
			{Filename: "intro.txt", Status: domain.FileSuccess},
			{Filename: "report.pdf", Status: domain.FileFailed, Detail: "upload failed"},
			{Filename: "notes.md", Status: domain.FileSkipped},
		},
		Result: &domain.BatchResult{
			Total:      3,
			Successful: 1,
			Failed:     1,
			Skipped:    1,
			Files: []domain.FileResult{
				{Filename: "intro.txt", Status: domain.FileSuccess},
			},
			Errors: []string{"report.pdf: upload failed"},
		},
	}

	require.NoError(t, tasks.Save(ctx, task))

	got, err := tasks.Get(ctx, "task-1")
	require.NoError(t, err)

	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, task.Status, got.Status)
	assert.Equal(t, task.Current, got.Current)
	assert.Equal(t, task.Total, got.Total)
	assert.Equal(t, task.CurrentFile, got.CurrentFile)
	assert.True(t, got.StartedAt.Equal(started))
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(completed))
	assert.Equal(t, task.Errors, got.Errors)
	assert.Equal(t, task.ProcessedFiles, got.ProcessedFiles)
	require.NotNil(t, got.Result)
	assert.Equal(t, *task.Result, *got.Result)
}

// TestTaskStore_SaveAndGet_MinimalFields tests that optional fields
// survive a round trip as nil rather than empty values.
func TestTaskStore_SaveAndGet_MinimalFields(t *testing.T) {
	store := setupTestStore(t)
	tasks := store.TaskStore()
	ctx := context.Background()

	task := processingTask("task-min", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, tasks.Save(ctx, task))

	got, err := tasks.Get(ctx, "task-min")
	require.NoError(t, err)

	assert.Nil(t, got.CompletedAt)
	assert.Nil(t, got.Errors)
	assert.Nil(t, got.ProcessedFiles)
	assert.Nil(t, got.Result)
}

// TestTaskStore_SaveUpdatesExisting tests that saving an existing id
// replaces the stored record.
func TestTaskStore_SaveUpdatesExisting(t *testing.T) {
	store := setupTestStore(t)
	tasks := store.TaskStore()
	ctx := context.Background()

	started := time.Now().UTC().Truncate(time.Second)
	task := processingTask("task-1", started)
	require.NoError(t, tasks.Save(ctx, task))

	completed := started.Add(time.Minute)
	task.Status = domain.TaskCompleted
	task.Current = 5
	task.Total = 5
	task.CurrentFile = "last.txt"
	task.CompletedAt = &completed
	require.NoError(t, tasks.Save(ctx, task))

	got, err := tasks.Get(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, got.Status)
	assert.Equal(t, 5, got.Current)
	assert.Equal(t, 5, got.Total)
	assert.Equal(t, "last.txt", got.CurrentFile)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.Equal(completed))

	list, err := tasks.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// TestTaskStore_SaveEmptyID tests that a task without an id is rejected.
func TestTaskStore_SaveEmptyID(t *testing.T) {
	store := setupTestStore(t)

	err := store.TaskStore().Save(context.Background(), &domain.Task{
		Status:    domain.TaskProcessing,
		StartedAt: time.Now().UTC(),
	})
	assert.Error(t, err)
}

// TestTaskStore_GetNotFound tests the sentinel error for unknown ids.
func TestTaskStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.TaskStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

// TestTaskStore_ListOrdersMostRecentFirst tests that List returns tasks
// ordered by start time descending regardless of insertion order.
func TestTaskStore_ListOrdersMostRecentFirst(t *testing.T) {
	store := setupTestStore(t)
	tasks := store.TaskStore()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, tasks.Save(ctx, processingTask("task-mid", base.Add(-time.Hour))))
	require.NoError(t, tasks.Save(ctx, processingTask("task-new", base)))
	require.NoError(t, tasks.Save(ctx, processingTask("task-old", base.Add(-2*time.Hour))))

	list, err := tasks.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "task-new", list[0].ID)
	assert.Equal(t, "task-mid", list[1].ID)
	assert.Equal(t, "task-old", list[2].ID)
}

// TestTaskStore_ListEmpty tests that an empty store lists no tasks.
func TestTaskStore_ListEmpty(t *testing.T) {
	store := setupTestStore(t)

	list, err := store.TaskStore().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

// TestTaskStore_ImplementsPort verifies the port contract at compile time.
func TestTaskStore_ImplementsPort(t *testing.T) {
	var _ driven.TaskStore = (*taskStore)(nil)
}
