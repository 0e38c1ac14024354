package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Sidharth1743/File-Search/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// defaultFileName is the database file created when no path is
// configured.
const defaultFileName = "tasks.db"

// Store is the SQLite-backed storage for task records. Unlike the
// memory backend, records survive a restart, so a bulk run's outcome
// can still be inspected after the process exits.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens a SQLite store at the given database file. If path is
// empty, defaults to ~/.filesearch/data/tasks.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".filesearch", "data", defaultFileName)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// TaskStore returns a TaskStore interface backed by this store.
func (s *Store) TaskStore() driven.TaskStore {
	return &taskStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Task Store ====================

// taskStore implements driven.TaskStore.
type taskStore struct {
	store *Store
}

var _ driven.TaskStore = (*taskStore)(nil)

// Save stores or replaces a task record.
func (s *taskStore) Save(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		return errors.New("task id must not be empty")
	}

	errorsJSON, err := json.Marshal(task.Errors)
	if err != nil {
		return fmt.Errorf("marshalling errors: %w", err)
	}

	filesJSON, err := json.Marshal(task.ProcessedFiles)
	if err != nil {
		return fmt.Errorf("marshalling processed files: %w", err)
	}

	resultJSON, err := json.Marshal(task.Result)
	if err != nil {
		return fmt.Errorf("marshalling result: %w", err)
	}

	var completedAt any
	if task.CompletedAt != nil {
		completedAt = task.CompletedAt.UTC()
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO tasks
			(id, status, current_file, progress_current, progress_total,
			 started_at, completed_at, errors, processed_files, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			current_file = excluded.current_file,
			progress_current = excluded.progress_current,
			progress_total = excluded.progress_total,
			completed_at = excluded.completed_at,
			errors = excluded.errors,
			processed_files = excluded.processed_files,
			result = excluded.result
	`, task.ID, string(task.Status), task.CurrentFile, task.Current, task.Total,
		task.StartedAt.UTC(), completedAt,
		string(errorsJSON), string(filesJSON), string(resultJSON))

	if err != nil {
		return fmt.Errorf("saving task: %w", err)
	}
	return nil
}

// Get retrieves a task by id.
func (s *taskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, status, current_file, progress_current, progress_total,
		       started_at, completed_at, errors, processed_files, result
		FROM tasks WHERE id = ?
	`, id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// scanTarget is the column set shared by Get and List scans.
type scanTarget interface {
	Scan(dest ...any) error
}

// List returns all tasks, most-recently-started first.
func (s *taskStore) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, status, current_file, progress_current, progress_total,
		       started_at, completed_at, errors, processed_files, result
		FROM tasks
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task //nolint:prealloc // size unknown from query
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}

	// Ordering happens here rather than in SQL: timestamps are stored
	// in driver text form, whose lexical order is not time order once
	// fractional seconds differ in width.
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].StartedAt.After(tasks[j].StartedAt)
	})

	return tasks, nil
}

// scanTask scans one task from a row or rows cursor. A sql.ErrNoRows
// from the scan is passed through unwrapped for the caller to map.
func scanTask(row scanTarget) (*domain.Task, error) {
	var task domain.Task
	var status string
	var startedAt time.Time
	var completedAt sql.NullTime
	var errorsJSON, filesJSON, resultJSON sql.NullString

	if err := row.Scan(&task.ID, &status, &task.CurrentFile, &task.Current, &task.Total,
		&startedAt, &completedAt, &errorsJSON, &filesJSON, &resultJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	task.Status = domain.TaskStatus(status)
	task.StartedAt = startedAt
	if completedAt.Valid {
		at := completedAt.Time
		task.CompletedAt = &at
	}

	if errorsJSON.Valid && errorsJSON.String != jsonNull {
		if err := json.Unmarshal([]byte(errorsJSON.String), &task.Errors); err != nil {
			return nil, fmt.Errorf("unmarshaling errors: %w", err)
		}
	}
	if filesJSON.Valid && filesJSON.String != jsonNull {
		if err := json.Unmarshal([]byte(filesJSON.String), &task.ProcessedFiles); err != nil {
			return nil, fmt.Errorf("unmarshaling processed files: %w", err)
		}
	}
	if resultJSON.Valid && resultJSON.String != jsonNull {
		var result domain.BatchResult
		if err := json.Unmarshal([]byte(resultJSON.String), &result); err != nil {
			return nil, fmt.Errorf("unmarshaling result: %w", err)
		}
		task.Result = &result
	}

	return &task, nil
}
