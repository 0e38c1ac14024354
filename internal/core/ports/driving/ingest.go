package driving

import (
	"context"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

// IngestService drives single-document ingestion: metadata resolution,
// upload with operation polling, and the optional graph step.
type IngestService interface {
	// IngestDocument runs the full pipeline for one file and returns a
	// summary of what was done.
	IngestDocument(ctx context.Context, req IngestRequest) (*IngestReceipt, error)
}

// IngestRequest describes one document to ingest.
type IngestRequest struct {
	// FilePath is the local file to ingest.
	FilePath string

	// Type selects the logical store.
	Type domain.DocumentType

	// Title and ID, when set, bypass metadata inference. Title must be
	// non-empty after trimming; a missing ID defaults to "N/A".
	Title string
	ID    string

	// Text is the document's extracted text for the graph step. When
	// empty, a local extractor is consulted; unsupported files skip the
	// graph step.
	Text string

	// SkipGraph disables the graph step regardless of available text.
	SkipGraph bool
}

// IngestReceipt summarises a completed single-document ingestion.
type IngestReceipt struct {
	// Store is the resolved target store.
	Store domain.Store

	// Meta is the metadata the document was uploaded under.
	Meta domain.DocumentMeta

	// Inferred is true when metadata came from the inference step
	// rather than the caller.
	Inferred bool

	// GraphNodes and GraphRelationships count what the graph step
	// stored; both are zero when the step was skipped.
	GraphNodes         int
	GraphRelationships int

	// GraphSkipped is set when no text was available for the graph
	// step, with the reason in GraphNote.
	GraphSkipped bool
	GraphNote    string
}

// BulkService drives folder-scale ingestion.
type BulkService interface {
	// IngestFolder processes every matching file in a folder
	// sequentially, reporting each step through onProgress. A nil
	// onProgress is permitted.
	IngestFolder(ctx context.Context, req BulkRequest, onProgress ProgressFunc) (*domain.BatchResult, error)
}

// ProgressFunc receives one event per file as a batch advances.
type ProgressFunc func(event domain.ProgressEvent)

// BulkRequest describes one folder ingestion batch.
type BulkRequest struct {
	// FolderPath is the directory to enumerate. It must exist.
	FolderPath string

	// Type selects the logical store and whether dedup applies.
	Type domain.DocumentType

	// MetadataOverrides maps a file's base name to caller-supplied
	// metadata, consulted before falling back to filename-derived
	// defaults.
	MetadataOverrides map[string]domain.DocumentMeta
}
