package gemini

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// documentPageSize is the page size requested when listing documents.
const documentPageSize = "100"

// ListDocuments returns one page of a store's documents along with the
// token for the next page. Pagination stays with the caller because the
// dedup scan wants to stream pages rather than hold every record.
func (c *Client) ListDocuments(ctx context.Context, storeName, pageToken string) ([]domain.DocumentRecord, string, error) {
	query := url.Values{"pageSize": {documentPageSize}}
	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}

	var page listDocumentsResponse
	path := fmt.Sprintf("/v1beta/%s/documents", storeName)
	if err := c.doJSON(ctx, http.MethodGet, path, query, nil, &page); err != nil {
		return nil, "", fmt.Errorf("list documents in %s: %w", storeName, err)
	}

	records := make([]domain.DocumentRecord, 0, len(page.Documents))
	for _, d := range page.Documents {
		records = append(records, d.toRecord())
	}
	return records, page.NextPageToken, nil
}

// DeleteDocument removes a document. When force is true, the document's
// chunks are deleted with it; the API refuses to delete a non-empty
// document otherwise.
func (c *Client) DeleteDocument(ctx context.Context, documentName string, force bool) error {
	var query url.Values
	if force {
		query = url.Values{"force": {"true"}}
	}

	if err := c.doJSON(ctx, http.MethodDelete, "/v1beta/"+documentName, query, nil, nil); err != nil {
		return fmt.Errorf("delete document %s: %w", documentName, err)
	}

	logger.Debug("[gemini] deleted document %s", documentName)
	return nil
}
