package driving

import (
	"context"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

// WatchService ingests documents as they appear in a watched folder.
type WatchService interface {
	// Watch ingests every settled file matching the configured pattern
	// until ctx is cancelled. Per-file failures are logged and watching
	// continues.
	Watch(ctx context.Context, folder string, docType domain.DocumentType) error
}
