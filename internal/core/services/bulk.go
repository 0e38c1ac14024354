package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// Ensure BulkOrchestrator implements the interface.
var _ driving.BulkService = (*BulkOrchestrator)(nil)

// BulkOrchestrator drives folder-scale ingestion. Files are processed
// strictly sequentially to respect remote rate limits and because
// operation polling is itself a blocking wait; one file's failure never
// aborts the batch.
type BulkOrchestrator struct {
	pipeline *IngestionPipeline
	registry *StoreRegistry
	dedup    *DedupIndex
	scanner  driven.FolderScanner
	settings domain.IngestionSettings
}

// NewBulkOrchestrator creates a new bulk orchestrator.
func NewBulkOrchestrator(
	pipeline *IngestionPipeline,
	registry *StoreRegistry,
	dedup *DedupIndex,
	scanner driven.FolderScanner,
	settings domain.IngestionSettings,
) *BulkOrchestrator {
	return &BulkOrchestrator{
		pipeline: pipeline,
		registry: registry,
		dedup:    dedup,
		scanner:  scanner,
		settings: settings,
	}
}

// IngestFolder processes every matching file in a folder. Batch-level
// precondition failures abort before any file is touched; after that,
// each file independently ends up skipped, successful or failed.
//
// Bulk metadata is never inferred: a caller override for the file's
// base name wins, filename-derived defaults otherwise.
func (b *BulkOrchestrator) IngestFolder(ctx context.Context, req driving.BulkRequest, onProgress driving.ProgressFunc) (*domain.BatchResult, error) {
	// 1. Validate preconditions before touching any file
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDocumentType, req.Type)
	}
	if err := b.scanner.Validate(req.FolderPath); err != nil {
		return nil, err
	}

	// 2. Enumerate candidate files, sorted, non-recursive
	files, err := b.scanner.ListFiles(req.FolderPath, b.settings.FilePattern)
	if err != nil {
		return nil, fmt.Errorf("list folder %s: %w", req.FolderPath, err)
	}

	result := &domain.BatchResult{Total: len(files)}
	if len(files) == 0 {
		logger.Info("No files matching %q in %s", b.settings.FilePattern, req.FolderPath)
		return result, nil
	}

	// 3. Resolve the store once; a resolution failure aborts the batch
	store, err := b.registry.StoreFor(ctx, req.Type)
	if err != nil {
		return nil, err
	}

	// 4. Load existing dedup keys when the document type requires it
	var existing map[string]bool
	if req.Type.RequiresDedup() {
		existing, err = b.dedup.ExistingKeys(ctx, store.Name)
		if err != nil {
			return nil, fmt.Errorf("load dedup keys: %w", err)
		}
	}

	logger.Info("Starting bulk ingestion: %d files from %s into %s", len(files), req.FolderPath, store.DisplayName)

	// 5. Process files in order
	for i, path := range files {
		if ctx.Err() != nil {
			return result, fmt.Errorf("batch interrupted: %w", ctx.Err())
		}

		filename := filepath.Base(path)
		event := domain.ProgressEvent{Current: i + 1, Total: len(files), Filename: filename}

		if existing[dedupKeyFor(filename)] {
			result.Skipped++
			result.Files = append(result.Files, domain.FileResult{Filename: filename, Status: domain.FileSkipped})
			event.Status = domain.FileSkipped
			emitProgress(onProgress, event)
			logger.Debug("[bulk] skipping %s: already ingested", filename)
			continue
		}

		meta := bulkMetadata(req.MetadataOverrides, filename)
		if _, err := b.pipeline.Upload(ctx, store, path, meta, domain.SchemaCurrent); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", filename, err))
			result.Files = append(result.Files, domain.FileResult{Filename: filename, Status: domain.FileFailed, Detail: err.Error()})
			event.Status = domain.FileFailed
			event.Err = err
			emitProgress(onProgress, event)
			logger.Warn("[bulk] %s failed: %v", filename, err)
			continue
		}

		result.Successful++
		result.Files = append(result.Files, domain.FileResult{Filename: filename, Status: domain.FileSuccess})
		event.Status = domain.FileSuccess
		emitProgress(onProgress, event)
	}

	logger.Info("Bulk ingestion finished: %d successful, %d skipped, %d failed", result.Successful, result.Skipped, result.Failed)
	return result, nil
}

// dedupKeyFor derives a file's dedup key by stripping the extension.
func dedupKeyFor(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// bulkMetadata resolves metadata for one file in a batch: the caller's
// override for its base name when present, filename-derived defaults
// otherwise.
func bulkMetadata(overrides map[string]domain.DocumentMeta, filename string) domain.DocumentMeta {
	if meta, ok := overrides[filename]; ok {
		if strings.TrimSpace(meta.Title) == "" {
			meta.Title = dedupKeyFor(filename)
		}
		if strings.TrimSpace(meta.ID) == "" {
			meta.ID = domain.UnknownID
		}
		meta.FileName = filename
		return meta
	}
	return domain.DocumentMeta{
		Title:    dedupKeyFor(filename),
		ID:       domain.UnknownID,
		FileName: filename,
	}
}

func emitProgress(onProgress driving.ProgressFunc, event domain.ProgressEvent) {
	if onProgress != nil {
		onProgress(event)
	}
}
