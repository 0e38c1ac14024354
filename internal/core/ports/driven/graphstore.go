package driven

import (
	"context"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

// GraphStore persists extracted knowledge graphs. The core only writes;
// reading the graph back is out of scope.
type GraphStore interface {
	// AddGraphElements writes a batch of graph elements. Nodes are
	// merged by id, so re-ingesting a document is idempotent on the
	// graph side.
	AddGraphElements(ctx context.Context, elements []domain.GraphElement) error

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
