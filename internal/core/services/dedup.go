package services

import (
	"context"
	"fmt"

	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// DedupIndex collects the dedup keys already present in a store so bulk
// ingestion can skip files that were ingested before.
type DedupIndex struct {
	fileSearch driven.FileSearchService
}

// NewDedupIndex creates a new dedup index.
func NewDedupIndex(fileSearch driven.FileSearchService) *DedupIndex {
	return &DedupIndex{fileSearch: fileSearch}
}

// ExistingKeys pages through a store's documents and collects each
// record's dedup key: short_name for current records, title for legacy
// ones. Records carrying neither are ignored.
func (d *DedupIndex) ExistingKeys(ctx context.Context, storeName string) (map[string]bool, error) {
	keys := make(map[string]bool)
	pageToken := ""
	for {
		page, next, err := d.fileSearch.ListDocuments(ctx, storeName, pageToken)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		for _, record := range page {
			if key, ok := record.DedupKey(); ok {
				keys[key] = true
			}
		}
		if next == "" {
			break
		}
		pageToken = next
	}
	logger.Debug("[bulk] loaded %d existing dedup keys from %s", len(keys), storeName)
	return keys, nil
}
