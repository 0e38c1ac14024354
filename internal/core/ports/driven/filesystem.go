package driven

import "context"

// FolderScanner enumerates candidate files for bulk ingestion.
type FolderScanner interface {
	// Validate checks that dir exists and is a directory.
	// Returns domain.ErrFolderNotFound otherwise.
	Validate(dir string) error

	// ListFiles returns the files in dir whose base name matches the
	// glob pattern, sorted by name. The scan is not recursive.
	ListFiles(dir, pattern string) ([]string, error)
}

// FileEvent is one settled filesystem change in a watched folder.
type FileEvent struct {
	// Path is the absolute path of the created or modified file.
	Path string
}

// FolderWatcher observes a folder for new files to ingest.
type FolderWatcher interface {
	// Watch emits an event per settled file matching pattern until ctx
	// is cancelled. The channel is closed when watching stops; the
	// terminal error, if any, is delivered on the error channel.
	Watch(ctx context.Context, dir, pattern string) (<-chan FileEvent, <-chan error, error)
}
