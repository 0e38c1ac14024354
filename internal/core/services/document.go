package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// Ensure DocumentService implements the interfaces.
var (
	_ driving.DocumentService = (*DocumentService)(nil)
	_ driving.StoreService    = (*DocumentService)(nil)
)

// DocumentService manages documents within the logical stores.
type DocumentService struct {
	fileSearch driven.FileSearchService
	registry   *StoreRegistry
}

// NewDocumentService creates a new document service.
func NewDocumentService(fileSearch driven.FileSearchService, registry *StoreRegistry) *DocumentService {
	return &DocumentService{
		fileSearch: fileSearch,
		registry:   registry,
	}
}

// List returns every document in the store for a document type.
func (s *DocumentService) List(ctx context.Context, docType domain.DocumentType) ([]domain.DocumentRecord, error) {
	store, err := s.registry.StoreFor(ctx, docType)
	if err != nil {
		return nil, err
	}

	var records []domain.DocumentRecord
	pageToken := ""
	for {
		page, next, err := s.fileSearch.ListDocuments(ctx, store.Name, pageToken)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		records = append(records, page...)
		if next == "" {
			break
		}
		pageToken = next
	}
	return records, nil
}

// Delete removes a document and its chunks. A bare document id is
// scoped under the type's store; a full resource name must already be
// scoped there.
func (s *DocumentService) Delete(ctx context.Context, docType domain.DocumentType, documentName string) error {
	store, err := s.registry.StoreFor(ctx, docType)
	if err != nil {
		return err
	}

	if !strings.Contains(documentName, "/") {
		documentName = store.Name + "/documents/" + documentName
	} else if !strings.HasPrefix(documentName, store.Name+"/") {
		return fmt.Errorf("%w: document %s is not in store %s", domain.ErrValidation, documentName, store.DisplayName)
	}

	if err := s.fileSearch.DeleteDocument(ctx, documentName, true); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	logger.Info("Deleted %s from %s", documentName, store.DisplayName)
	return nil
}

// Describe resolves each logical store and counts its documents.
func (s *DocumentService) Describe(ctx context.Context) ([]driving.StoreInfo, error) {
	infos := make([]driving.StoreInfo, 0, len(domain.AllDocumentTypes()))
	for _, docType := range domain.AllDocumentTypes() {
		store, err := s.registry.StoreFor(ctx, docType)
		if err != nil {
			return nil, err
		}
		records, err := s.List(ctx, docType)
		if err != nil {
			return nil, err
		}
		infos = append(infos, driving.StoreInfo{
			Type:      docType,
			Store:     store,
			Documents: len(records),
		})
	}
	return infos, nil
}
