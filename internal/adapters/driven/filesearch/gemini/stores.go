package gemini

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// storePageSize is the page size requested when listing stores.
const storePageSize = "20"

// ListStores returns every store visible to the API key.
func (c *Client) ListStores(ctx context.Context) ([]domain.Store, error) {
	var stores []domain.Store
	pageToken := ""

	for {
		select {
		case <-ctx.Done():
			return stores, ctx.Err()
		default:
		}

		query := url.Values{"pageSize": {storePageSize}}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var page listStoresResponse
		if err := c.doJSON(ctx, http.MethodGet, "/v1beta/fileSearchStores", query, nil, &page); err != nil {
			return nil, fmt.Errorf("list stores: %w", err)
		}

		for _, s := range page.FileSearchStores {
			stores = append(stores, s.toStore())
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return stores, nil
}

// CreateStore creates a store with the given display name. Chunking is
// applied per upload by this API, so the policy only gates creation: an
// unsupported overlap is rejected before any remote call.
func (c *Client) CreateStore(ctx context.Context, displayName string, chunking domain.ChunkingPolicy) (domain.Store, error) {
	if chunking.MaxOverlapTokens != 0 && !domain.ValidOverlap(chunking.MaxOverlapTokens) {
		return domain.Store{}, fmt.Errorf("create store %q: unsupported chunk overlap %d", displayName, chunking.MaxOverlapTokens)
	}

	body := createStoreRequest{DisplayName: displayName}
	var created storeResource
	if err := c.doJSON(ctx, http.MethodPost, "/v1beta/fileSearchStores", nil, body, &created); err != nil {
		return domain.Store{}, fmt.Errorf("create store %q: %w", displayName, err)
	}

	logger.Debug("[gemini] created store %s (%s)", created.Name, created.DisplayName)
	return created.toStore(), nil
}
