package driving

import (
	"context"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

// DocumentService manages documents within the logical stores.
type DocumentService interface {
	// List returns every document in the store for a document type.
	List(ctx context.Context, docType domain.DocumentType) ([]domain.DocumentRecord, error)

	// Delete removes a document and cascades its chunks. The document
	// name must be scoped under the resolved store for the type.
	Delete(ctx context.Context, docType domain.DocumentType, documentName string) error
}

// QueryService answers questions grounded on a store's documents.
type QueryService interface {
	// Ask returns an answer with citation titles. The question must be
	// non-blank.
	Ask(ctx context.Context, question string, docType domain.DocumentType) (*domain.Answer, error)
}

// StoreInfo describes one resolved logical store for display.
type StoreInfo struct {
	// Type is the logical document type the store serves.
	Type domain.DocumentType

	// Store is the resolved remote store.
	Store domain.Store

	// Documents is the number of records currently in the store.
	Documents int
}

// StoreService reports on the logical stores.
type StoreService interface {
	// Describe resolves each logical store and counts its documents.
	Describe(ctx context.Context) ([]StoreInfo, error)
}
