package driven

import (
	"context"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

// FileSearchService is the remote indexing and retrieval collection
// service. Implementations talk to the hosted File Search API; the core
// only sees stores, documents and operations.
type FileSearchService interface {
	// ListStores returns every store visible to the caller.
	ListStores(ctx context.Context) ([]domain.Store, error)

	// CreateStore creates a store with the given display name.
	CreateStore(ctx context.Context, displayName string, chunking domain.ChunkingPolicy) (domain.Store, error)

	// Upload submits one file for ingestion into a store and returns the
	// handle of the asynchronous remote job.
	Upload(ctx context.Context, req UploadRequest) (domain.Operation, error)

	// GetOperation re-fetches an operation by its handle.
	GetOperation(ctx context.Context, name string) (domain.Operation, error)

	// ListDocuments returns one page of a store's documents along with
	// the token for the next page, empty when exhausted.
	ListDocuments(ctx context.Context, storeName, pageToken string) ([]domain.DocumentRecord, string, error)

	// DeleteDocument removes a document. When force is true, dependent
	// chunks are cascaded.
	DeleteDocument(ctx context.Context, documentName string, force bool) error

	// GenerateGrounded answers a question grounded on the given stores
	// and reports the citation titles the answer drew on.
	GenerateGrounded(ctx context.Context, question string, storeNames []string) (domain.Answer, error)
}

// UploadRequest carries everything one upload submission needs.
type UploadRequest struct {
	// StoreName is the opaque remote store identifier.
	StoreName string

	// FilePath is the local file to submit.
	FilePath string

	// DisplayName is the title the document is stored under.
	DisplayName string

	// Chunking is the fixed chunking policy for this document.
	Chunking domain.ChunkingPolicy

	// Metadata is the ordered custom metadata to attach.
	Metadata []domain.MetadataEntry
}
