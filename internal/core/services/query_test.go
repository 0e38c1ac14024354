package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

// TestQueryService_Ask tests a grounded answer: the configured suffix
// shapes the prompt and the answer's citations come through.
func TestQueryService_Ask(t *testing.T) {
	fileSearch := &fakeFileSearch{
		stores: []domain.Store{{Name: "fileSearchStores/a", DisplayName: "abstracts_store"}},
		answer: domain.Answer{
			Text:      "The rest cure was the prevailing treatment.",
			Citations: []string{"On the Alignment of Vertebrae", "Spinal Curvature in Adolescents"},
		},
	}
	service := NewQueryService(fileSearch, newTestRegistry(fileSearch), newFakePrompts())

	answer, err := service.Ask(context.Background(), "How was lumbago treated?", domain.DocumentTypeAbstracts)

	require.NoError(t, err)
	assert.Equal(t, "The rest cure was the prevailing treatment.", answer.Text)
	assert.Len(t, answer.Citations, 2)
	assert.Equal(t, "How was lumbago treated? (answer concisely)", fileSearch.lastQuestion)
	assert.Equal(t, []string{"fileSearchStores/a"}, fileSearch.lastStores)
}

// TestQueryService_Ask_TrimsQuestion tests that surrounding whitespace
// is stripped before the suffix is appended.
func TestQueryService_Ask_TrimsQuestion(t *testing.T) {
	fileSearch := &fakeFileSearch{
		stores: []domain.Store{{Name: "fileSearchStores/a", DisplayName: "abstracts_store"}},
	}
	service := NewQueryService(fileSearch, newTestRegistry(fileSearch), newFakePrompts())

	_, err := service.Ask(context.Background(), "  How was lumbago treated?  ", domain.DocumentTypeAbstracts)

	require.NoError(t, err)
	assert.Equal(t, "How was lumbago treated? (answer concisely)", fileSearch.lastQuestion)
}

// TestQueryService_Ask_BlankQuestion tests rejection of a blank
// question before any remote call.
func TestQueryService_Ask_BlankQuestion(t *testing.T) {
	fileSearch := &fakeFileSearch{}
	service := NewQueryService(fileSearch, newTestRegistry(fileSearch), newFakePrompts())

	_, err := service.Ask(context.Background(), "   ", domain.DocumentTypeAbstracts)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, fileSearch.listCalls)
}

// TestQueryService_Ask_SuffixUnavailable tests that a missing suffix
// degrades to the bare question instead of failing the query.
func TestQueryService_Ask_SuffixUnavailable(t *testing.T) {
	fileSearch := &fakeFileSearch{
		stores: []domain.Store{{Name: "fileSearchStores/a", DisplayName: "abstracts_store"}},
	}
	prompts := newFakePrompts()
	prompts.loadErr = errors.New("prompt file missing")
	service := NewQueryService(fileSearch, newTestRegistry(fileSearch), prompts)

	_, err := service.Ask(context.Background(), "How was lumbago treated?", domain.DocumentTypeAbstracts)

	require.NoError(t, err)
	assert.Equal(t, "How was lumbago treated?", fileSearch.lastQuestion)
}

// TestQueryService_Ask_RemoteError tests that a generation failure is
// reported to the caller.
func TestQueryService_Ask_RemoteError(t *testing.T) {
	fileSearch := &fakeFileSearch{
		stores:      []domain.Store{{Name: "fileSearchStores/a", DisplayName: "abstracts_store"}},
		generateErr: errors.New("model offline"),
	}
	service := NewQueryService(fileSearch, newTestRegistry(fileSearch), newFakePrompts())

	_, err := service.Ask(context.Background(), "How was lumbago treated?", domain.DocumentTypeAbstracts)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model offline")
}

// TestQueryService_Ask_InvalidType tests rejection of an unknown
// document type.
func TestQueryService_Ask_InvalidType(t *testing.T) {
	fileSearch := &fakeFileSearch{}
	service := NewQueryService(fileSearch, newTestRegistry(fileSearch), newFakePrompts())

	_, err := service.Ask(context.Background(), "How was lumbago treated?", domain.DocumentType("theses"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentType)
}
