package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService ingests documents as they appear in a watched folder.
type WatchService struct {
	pipeline *IngestionPipeline
	watcher  driven.FolderWatcher
	settings domain.IngestionSettings
}

// NewWatchService creates a new watch service.
func NewWatchService(pipeline *IngestionPipeline, watcher driven.FolderWatcher, settings domain.IngestionSettings) *WatchService {
	return &WatchService{
		pipeline: pipeline,
		watcher:  watcher,
		settings: settings,
	}
}

// Watch ingests every settled file matching the configured pattern
// until ctx is cancelled. Per-file failures are logged and watching
// continues; only watcher errors end the loop.
func (s *WatchService) Watch(ctx context.Context, folder string, docType domain.DocumentType) error {
	if !docType.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDocumentType, docType)
	}

	events, errs, err := s.watcher.Watch(ctx, folder, s.settings.FilePattern)
	if err != nil {
		return fmt.Errorf("watch %s: %w", folder, err)
	}

	logger.Info("Watching %s for new documents", folder)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			return fmt.Errorf("watch %s: %w", folder, err)

		case event, ok := <-events:
			if !ok {
				return nil
			}
			filename := filepath.Base(event.Path)
			if _, err := s.pipeline.IngestDocument(ctx, driving.IngestRequest{FilePath: event.Path, Type: docType}); err != nil {
				logger.Warn("[watch] ingest %s failed: %v", filename, err)
				continue
			}
			logger.Info("[watch] ingested %s", filename)
		}
	}
}
