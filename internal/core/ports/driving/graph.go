package driving

import (
	"context"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

// GraphService turns document text into a validated knowledge graph.
type GraphService interface {
	// Extract parses node and relationship literals out of generated
	// text, validates them, merges provenance metadata and returns the
	// resulting graph. Malformed fragments are dropped, never fatal.
	Extract(ctx context.Context, generated string, metadata map[string]string) (*domain.GraphElement, error)

	// ExtractFromText asks the text generator to emit literals over a
	// passage and then behaves like Extract. Requires a configured
	// generator.
	ExtractFromText(ctx context.Context, text string, metadata map[string]string) (*domain.GraphElement, error)

	// Store writes graph elements to the graph database.
	Store(ctx context.Context, elements []domain.GraphElement) error
}
