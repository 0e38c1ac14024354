package domain

// Store is a named remote document collection.
type Store struct {
	// Name is the opaque remote identifier, e.g. "fileSearchStores/abc123".
	Name string

	// DisplayName is the caller-chosen label used for idempotent lookup.
	DisplayName string
}

// DocumentType selects which logical store a document belongs to.
type DocumentType string

const (
	// DocumentTypeAbstracts holds short abstract documents.
	DocumentTypeAbstracts DocumentType = "abstracts"

	// DocumentTypeManuscripts holds full manuscripts. Bulk ingestion into
	// this store deduplicates against already-ingested documents.
	DocumentTypeManuscripts DocumentType = "manuscripts"
)

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeAbstracts, DocumentTypeManuscripts:
		return true
	default:
		return false
	}
}

// RequiresDedup returns true if bulk ingestion into this type must skip
// documents whose dedup key is already present in the store.
func (t DocumentType) RequiresDedup() bool {
	return t == DocumentTypeManuscripts
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// AllDocumentTypes returns the supported document types.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{DocumentTypeAbstracts, DocumentTypeManuscripts}
}

// ChunkingPolicy controls how the remote store splits documents.
// Both values are configuration constants, never computed.
type ChunkingPolicy struct {
	// MaxTokensPerChunk is the upper bound on tokens per chunk.
	MaxTokensPerChunk int

	// MaxOverlapTokens is the token overlap between adjacent chunks.
	// Supported values are 10, 50 and 100.
	MaxOverlapTokens int
}

// DefaultChunkingPolicy returns the chunking configuration applied to
// every store this process creates.
func DefaultChunkingPolicy() ChunkingPolicy {
	return ChunkingPolicy{
		MaxTokensPerChunk: 512,
		MaxOverlapTokens:  10,
	}
}

// ValidOverlap returns true if the overlap value is one of the
// supported settings.
func ValidOverlap(tokens int) bool {
	switch tokens {
	case 10, 50, 100:
		return true
	default:
		return false
	}
}
