package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

func bothStores() []domain.Store {
	return []domain.Store{
		{Name: "fileSearchStores/a", DisplayName: "abstracts_store"},
		{Name: "fileSearchStores/m", DisplayName: "manuscripts_store"},
	}
}

// TestDocumentService_List tests that listing pages through every
// document in the type's store.
func TestDocumentService_List(t *testing.T) {
	fileSearch := &fakeFileSearch{
		stores: bothStores(),
		docPages: [][]domain.DocumentRecord{
			{{Name: "fileSearchStores/m/documents/one"}, {Name: "fileSearchStores/m/documents/two"}},
			{{Name: "fileSearchStores/m/documents/three"}},
		},
	}
	service := NewDocumentService(fileSearch, newTestRegistry(fileSearch))

	records, err := service.List(context.Background(), domain.DocumentTypeManuscripts)

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "fileSearchStores/m/documents/three", records[2].Name)
	assert.Equal(t, 2, fileSearch.listDocsCalls)
}

// TestDocumentService_List_Error tests that a listing failure is
// reported to the caller.
func TestDocumentService_List_Error(t *testing.T) {
	fileSearch := &fakeFileSearch{
		stores:      bothStores(),
		listDocsErr: errors.New("permission denied"),
	}
	service := NewDocumentService(fileSearch, newTestRegistry(fileSearch))

	_, err := service.List(context.Background(), domain.DocumentTypeManuscripts)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

// TestDocumentService_Delete_BareID tests that a bare document id is
// scoped under the type's store before deletion.
func TestDocumentService_Delete_BareID(t *testing.T) {
	fileSearch := &fakeFileSearch{stores: bothStores()}
	service := NewDocumentService(fileSearch, newTestRegistry(fileSearch))

	err := service.Delete(context.Background(), domain.DocumentTypeManuscripts, "abc123")

	require.NoError(t, err)
	require.Len(t, fileSearch.deleted, 1)
	assert.Equal(t, "fileSearchStores/m/documents/abc123", fileSearch.deleted[0])
}

// TestDocumentService_Delete_FullName tests that a full resource name
// already scoped under the type's store is passed through unchanged.
func TestDocumentService_Delete_FullName(t *testing.T) {
	fileSearch := &fakeFileSearch{stores: bothStores()}
	service := NewDocumentService(fileSearch, newTestRegistry(fileSearch))

	err := service.Delete(context.Background(), domain.DocumentTypeManuscripts, "fileSearchStores/m/documents/abc123")

	require.NoError(t, err)
	require.Len(t, fileSearch.deleted, 1)
	assert.Equal(t, "fileSearchStores/m/documents/abc123", fileSearch.deleted[0])
}

// TestDocumentService_Delete_WrongStore tests that a resource name
// scoped under a different store is rejected rather than deleted.
func TestDocumentService_Delete_WrongStore(t *testing.T) {
	fileSearch := &fakeFileSearch{stores: bothStores()}
	service := NewDocumentService(fileSearch, newTestRegistry(fileSearch))

	err := service.Delete(context.Background(), domain.DocumentTypeManuscripts, "fileSearchStores/a/documents/abc123")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, fileSearch.deleted)
}

// TestDocumentService_Delete_RemoteError tests that a remote delete
// failure is reported to the caller.
func TestDocumentService_Delete_RemoteError(t *testing.T) {
	fileSearch := &fakeFileSearch{
		stores:    bothStores(),
		deleteErr: errors.New("not found"),
	}
	service := NewDocumentService(fileSearch, newTestRegistry(fileSearch))

	err := service.Delete(context.Background(), domain.DocumentTypeManuscripts, "abc123")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// TestDocumentService_Describe tests that every logical store is
// resolved and counted.
func TestDocumentService_Describe(t *testing.T) {
	fileSearch := &fakeFileSearch{
		stores: bothStores(),
		docPages: [][]domain.DocumentRecord{
			{{Name: "doc-one"}, {Name: "doc-two"}},
		},
	}
	service := NewDocumentService(fileSearch, newTestRegistry(fileSearch))

	infos, err := service.Describe(context.Background())

	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, domain.DocumentTypeAbstracts, infos[0].Type)
	assert.Equal(t, "abstracts_store", infos[0].Store.DisplayName)
	assert.Equal(t, 2, infos[0].Documents)
	assert.Equal(t, domain.DocumentTypeManuscripts, infos[1].Type)
	assert.Equal(t, 2, infos[1].Documents)
}

// TestDocumentService_Describe_ResolutionError tests that a store
// resolution failure aborts the description.
func TestDocumentService_Describe_ResolutionError(t *testing.T) {
	fileSearch := &fakeFileSearch{
		listErr:   errors.New("listing unavailable"),
		createErr: errors.New("quota exceeded"),
	}
	service := NewDocumentService(fileSearch, newTestRegistry(fileSearch))

	_, err := service.Describe(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreResolution)
}
