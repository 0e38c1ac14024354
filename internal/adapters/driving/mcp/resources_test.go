package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
)

func TestExtractDocumentType(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid store documents URI",
			uri:      "filesearch://stores/manuscripts/documents",
			expected: "manuscripts",
		},
		{
			name:     "invalid prefix",
			uri:      "file://stores/manuscripts/documents",
			expected: "",
		},
		{
			name:     "missing documents suffix",
			uri:      "filesearch://stores/manuscripts",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extractDocumentType(tt.uri)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestServer_handleStoresResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns store list", func(t *testing.T) {
		mockStores := &mockStoreService{
			infos: []driving.StoreInfo{
				{
					Type:      domain.DocumentTypeAbstracts,
					Store:     domain.Store{Name: "fileSearchStores/abc", DisplayName: "spinedao_abstracts"},
					Documents: 12,
				},
			},
		}

		server, err := NewServer(&Ports{Query: &mockQueryService{}, Store: mockStores})
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "filesearch://stores"},
		}
		result, err := server.handleStoresResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "spinedao_abstracts")
		assert.Contains(t, result.Contents[0].Text, `"documents": 12`)
	})

	t.Run("nil store service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}})
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "filesearch://stores"},
		}
		result, err := server.handleStoresResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on describe failure", func(t *testing.T) {
		mockStores := &mockStoreService{err: errors.New("remote unavailable")}
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Store: mockStores})
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "filesearch://stores"},
		}
		_, err = server.handleStoresResource(ctx, req)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "remote unavailable")
	})
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns documents for a store", func(t *testing.T) {
		mockDocs := &mockDocumentService{
			records: []domain.DocumentRecord{
				{
					Name:        "fileSearchStores/abc/documents/def",
					DisplayName: "354",
					Schema:      domain.SchemaCurrent,
					Metadata: []domain.MetadataEntry{
						{Key: "short_name", Value: "354"},
						{Key: "file_name", Value: "354.pdf"},
					},
				},
			},
		}

		server, err := NewServer(&Ports{Query: &mockQueryService{}, Document: mockDocs})
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "filesearch://stores/manuscripts/documents"},
		}
		result, err := server.handleDocumentsResource(ctx, req)

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, "354.pdf")
		assert.Equal(t, domain.DocumentTypeManuscripts, mockDocs.docType)
	})

	t.Run("unknown document type is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}, Document: &mockDocumentService{}})
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "filesearch://stores/theses/documents"},
		}
		_, err = server.handleDocumentsResource(ctx, req)

		require.Error(t, err)
	})

	t.Run("nil document service is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{}})
		require.NoError(t, err)

		req := &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: "filesearch://stores/abstracts/documents"},
		}
		_, err = server.handleDocumentsResource(ctx, req)

		require.Error(t, err)
	})
}
