package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// StoreRegistry resolves logical store names to remote stores, creating
// them on first use. Resolutions are cached for the process lifetime so
// repeated ingestions reuse the same store handle.
type StoreRegistry struct {
	fileSearch driven.FileSearchService
	stores     domain.StoreSettings
	chunking   domain.ChunkingPolicy

	mu    sync.RWMutex
	cache map[string]domain.Store
}

// NewStoreRegistry creates a new store registry.
func NewStoreRegistry(fileSearch driven.FileSearchService, stores domain.StoreSettings, chunking domain.ChunkingPolicy) *StoreRegistry {
	return &StoreRegistry{
		fileSearch: fileSearch,
		stores:     stores,
		chunking:   chunking,
		cache:      make(map[string]domain.Store),
	}
}

// Resolve returns the store whose display name equals or contains
// logicalName, creating one when nothing matches. A listing failure is
// not fatal; creation still yields a usable store. A creation failure
// is, wrapped in domain.ErrStoreResolution.
func (r *StoreRegistry) Resolve(ctx context.Context, logicalName string) (domain.Store, error) {
	// 1. Cache hit: never touch the remote service again
	r.mu.RLock()
	store, ok := r.cache[logicalName]
	r.mu.RUnlock()
	if ok {
		return store, nil
	}

	// 2. Look for an existing store by display name
	store, found, err := r.lookup(ctx, logicalName)
	if err != nil {
		logger.Warn("[stores] listing stores failed, creating instead: %v", err)
	}

	// 3. Create on miss
	if !found {
		store, err = r.fileSearch.CreateStore(ctx, logicalName, r.chunking)
		if err != nil {
			return domain.Store{}, fmt.Errorf("%w: create %q: %w", domain.ErrStoreResolution, logicalName, err)
		}
		logger.Info("Created store %q (%s)", logicalName, store.Name)
	}

	// 4. Cache for the process lifetime. The first resolution wins if
	// two callers raced here.
	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.cache[logicalName]; ok {
		return cached, nil
	}
	r.cache[logicalName] = store
	return store, nil
}

// StoreFor resolves the store configured for a document type.
func (r *StoreRegistry) StoreFor(ctx context.Context, docType domain.DocumentType) (domain.Store, error) {
	if !docType.IsValid() {
		return domain.Store{}, fmt.Errorf("%w: %q", domain.ErrInvalidDocumentType, docType)
	}
	return r.Resolve(ctx, r.stores.DisplayName(docType))
}

// lookup scans the remote store list for a display-name match. An exact
// match and a display name containing logicalName both count; the first
// match in listing order wins.
func (r *StoreRegistry) lookup(ctx context.Context, logicalName string) (domain.Store, bool, error) {
	stores, err := r.fileSearch.ListStores(ctx)
	if err != nil {
		return domain.Store{}, false, fmt.Errorf("list stores: %w", err)
	}
	for _, store := range stores {
		if store.DisplayName == logicalName || strings.Contains(store.DisplayName, logicalName) {
			logger.Debug("[stores] resolved %q to existing store %s", logicalName, store.Name)
			return store, true, nil
		}
	}
	return domain.Store{}, false, nil
}
