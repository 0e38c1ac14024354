package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

// TestTaskStore_SaveGet tests storing and retrieving a task.
func TestTaskStore_SaveGet(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()

	task := &domain.Task{
		ID:        "task-1",
		Status:    domain.TaskProcessing,
		StartedAt: time.Now(),
	}
	require.NoError(t, store.Save(ctx, task))

	got, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, "task-1", got.ID)
	assert.Equal(t, domain.TaskProcessing, got.Status)
}

// TestTaskStore_Get_NotFound tests the sentinel for unknown ids.
func TestTaskStore_Get_NotFound(t *testing.T) {
	store := NewTaskStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

// TestTaskStore_Get_ReturnsCopy tests that mutating a retrieved task
// does not affect the stored record.
func TestTaskStore_Get_ReturnsCopy(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Task{
		ID:        "task-1",
		Status:    domain.TaskProcessing,
		StartedAt: time.Now(),
		Errors:    []string{"a.pdf: boom"},
	}))

	got, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	got.Status = domain.TaskFailed
	got.Errors = append(got.Errors, "mutated")

	fresh, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskProcessing, fresh.Status)
	assert.Len(t, fresh.Errors, 1)
}

// TestTaskStore_Save_IsolatesCaller tests that mutating a task after
// saving does not leak into the store.
func TestTaskStore_Save_IsolatesCaller(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()

	task := &domain.Task{ID: "task-1", Status: domain.TaskProcessing, StartedAt: time.Now()}
	require.NoError(t, store.Save(ctx, task))

	task.Status = domain.TaskCompleted

	got, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskProcessing, got.Status)
}

// TestTaskStore_List_NewestFirst tests the list ordering.
func TestTaskStore_List_NewestFirst(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, store.Save(ctx, &domain.Task{ID: "old", StartedAt: base.Add(-2 * time.Hour)}))
	require.NoError(t, store.Save(ctx, &domain.Task{ID: "new", StartedAt: base}))
	require.NoError(t, store.Save(ctx, &domain.Task{ID: "mid", StartedAt: base.Add(-time.Hour)}))

	tasks, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "new", tasks[0].ID)
	assert.Equal(t, "mid", tasks[1].ID)
	assert.Equal(t, "old", tasks[2].ID)
}

// TestTaskStore_ConcurrentReaders tests that status polling can run
// while the owning job keeps updating the task.
func TestTaskStore_ConcurrentReaders(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Task{ID: "task-1", Status: domain.TaskProcessing, StartedAt: time.Now()}))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 50; i++ {
			task, err := store.Get(ctx, "task-1")
			if err != nil {
				return
			}
			task.Current = i
			task.Total = 50
			_ = store.Save(ctx, task)
		}
	}()

	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				task, err := store.Get(ctx, "task-1")
				if err == nil {
					assert.LessOrEqual(t, task.Current, task.Total)
				}
				_, _ = store.List(ctx)
			}
		}()
	}
	wg.Wait()

	final, err := store.Get(ctx, "task-1")
	require.NoError(t, err)
	assert.Equal(t, 50, final.Current)
}
