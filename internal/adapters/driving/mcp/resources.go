package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for File Search resources.
	uriScheme = "filesearch://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing the logical stores.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stores",
		Name:        "stores",
		Description: "The resolved document stores and their document counts",
		MIMEType:    "application/json",
	}, s.handleStoresResource)

	// Template for a store's documents.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "stores/{documentType}/documents",
		Name:        "store-documents",
		Description: "Documents ingested into a store (abstracts or manuscripts)",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)
}

// handleStoresResource returns the resolved logical stores.
func (s *Server) handleStoresResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Store == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	stores, err := s.ports.Store.Describe(ctx)
	if err != nil {
		return nil, fmt.Errorf("describing stores: %w", err)
	}

	// Build simplified store list.
	type storeInfo struct {
		Type        string `json:"type"`
		Name        string `json:"name"`
		DisplayName string `json:"display_name"`
		Documents   int    `json:"documents"`
	}

	infos := make([]storeInfo, len(stores))
	for i, store := range stores {
		infos[i] = storeInfo{
			Type:        string(store.Type),
			Name:        store.Store.Name,
			DisplayName: store.Store.DisplayName,
			Documents:   store.Documents,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling stores: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentsResource returns the documents in one logical store.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Document == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract documentType from URI: filesearch://stores/{documentType}/documents
	docType := domain.DocumentType(extractDocumentType(req.Params.URI))
	if !docType.IsValid() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.Document.List(ctx, docType)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	infos := make([]DocumentOutput, len(records))
	for i := range records {
		shortName, _ := records[i].DedupKey()
		fileName, _ := records[i].MetadataValue("file_name")
		infos[i] = DocumentOutput{
			Name:        records[i].Name,
			DisplayName: records[i].DisplayName,
			ShortName:   shortName,
			FileName:    fileName,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentType extracts the document type from a URI like
// filesearch://stores/{documentType}/documents.
func extractDocumentType(uri string) string {
	const prefix = uriScheme + "stores/"
	const suffix = "/documents"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
