package domain

import "time"

// TaskStatus is the lifecycle state of a bulk ingestion task.
type TaskStatus string

const (
	// TaskProcessing means the task's batch is still running.
	TaskProcessing TaskStatus = "processing"

	// TaskCompleted means the batch finished; per-file failures may
	// still be recorded in Errors.
	TaskCompleted TaskStatus = "completed"

	// TaskFailed means the batch aborted before finishing.
	TaskFailed TaskStatus = "failed"
)

// Terminal returns true once the status can no longer change.
func (s TaskStatus) Terminal() bool {
	return s == TaskCompleted || s == TaskFailed
}

// FileStatus is the outcome for a single file within a batch.
type FileStatus string

const (
	// FileSuccess means the file was uploaded and indexed.
	FileSuccess FileStatus = "success"

	// FileSkipped means the file's dedup key was already present.
	FileSkipped FileStatus = "skipped"

	// FileFailed means the file's ingestion raised an error.
	FileFailed FileStatus = "failed"
)

// FileResult records the outcome for one file in a batch.
type FileResult struct {
	// Filename is the file's base name.
	Filename string

	// Status is the per-file outcome.
	Status FileStatus

	// Detail carries the error message for failed files, empty otherwise.
	Detail string
}

// ProgressEvent is emitted once per file as a batch advances.
type ProgressEvent struct {
	// Current is the 1-based position within the batch.
	Current int

	// Total is the number of files the batch considers.
	Total int

	// Filename is the file just processed.
	Filename string

	// Status is the file's outcome.
	Status FileStatus

	// Err is set when Status is FileFailed.
	Err error
}

// BatchResult aggregates one folder ingestion run.
type BatchResult struct {
	// Total is the number of files considered.
	Total int

	// Successful counts files uploaded and indexed.
	Successful int

	// Failed counts files whose ingestion raised an error.
	Failed int

	// Skipped counts files excluded by deduplication.
	Skipped int

	// Files lists the per-file outcomes in processing order.
	Files []FileResult

	// Errors lists one message per failed file.
	Errors []string
}

// Task is the progress record for one bulk ingestion job. Created when
// the job starts, mutated only by that job's progress callbacks, and
// immutable once Status is terminal.
type Task struct {
	// ID is the generated task identifier.
	ID string

	// Status is the task lifecycle state.
	Status TaskStatus

	// Current is the position of the most recent file, Current <= Total.
	Current int

	// Total is the batch size once enumeration has happened.
	Total int

	// CurrentFile is the file most recently reported.
	CurrentFile string

	// StartedAt is when the job began.
	StartedAt time.Time

	// CompletedAt is set once, when the status turns terminal.
	CompletedAt *time.Time

	// Errors accumulates per-file failure messages plus a batch-level
	// message when the task fails outright.
	Errors []string

	// ProcessedFiles lists per-file outcomes in processing order.
	ProcessedFiles []FileResult

	// Result carries the aggregated batch outcome once completed.
	Result *BatchResult
}

// Clone returns a deep copy safe to hand to concurrent readers.
func (t *Task) Clone() *Task {
	out := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		out.CompletedAt = &at
	}
	out.Errors = append([]string(nil), t.Errors...)
	out.ProcessedFiles = append([]FileResult(nil), t.ProcessedFiles...)
	if t.Result != nil {
		res := *t.Result
		res.Files = append([]FileResult(nil), t.Result.Files...)
		res.Errors = append([]string(nil), t.Result.Errors...)
		out.Result = &res
	}
	return &out
}
