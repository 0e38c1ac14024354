package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrTaskNotFound indicates no task exists for the given id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskTerminal indicates an attempt to modify a task whose status
	// is already completed or failed. Tasks are immutable once terminal.
	ErrTaskTerminal = errors.New("task already terminal")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates caller-supplied metadata failed validation
	// before any remote call was made.
	ErrValidation = errors.New("validation failed")

	// ErrStoreResolution indicates listing and creating the remote store
	// both failed. Fatal to the whole operation.
	ErrStoreResolution = errors.New("store resolution failed")

	// ErrOperation indicates a remote ingestion job reported an error,
	// at either the top level or nested under its result. Fatal to that
	// one document, non-fatal to a batch.
	ErrOperation = errors.New("remote operation failed")

	// ErrMetadataInference indicates the metadata inference step failed.
	// Recovered internally by falling back to filename-derived metadata.
	ErrMetadataInference = errors.New("metadata inference failed")

	// ErrParse indicates generated text contained a malformed graph
	// literal. Recovered by omitting the fragment, never fatal.
	ErrParse = errors.New("parse failed")

	// ErrFolderNotFound indicates the ingestion folder does not exist
	// or is not a directory.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrInvalidDocumentType indicates an unknown document type was
	// requested. Checked before any remote I/O.
	ErrInvalidDocumentType = errors.New("invalid document type")

	// ErrUnsupportedFile indicates no text extractor handles the file.
	ErrUnsupportedFile = errors.New("unsupported file type")

	// ErrTextGenUnavailable indicates the text-generation service is not
	// configured. Metadata inference and graph extraction are disabled.
	ErrTextGenUnavailable = errors.New("text generation service unavailable")

	// ErrGraphStoreUnavailable indicates the graph database is not
	// configured. Extracted graphs cannot be persisted.
	ErrGraphStoreUnavailable = errors.New("graph store unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
