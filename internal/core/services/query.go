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

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService answers questions grounded on a store's documents.
type QueryService struct {
	fileSearch driven.FileSearchService
	registry   *StoreRegistry
	prompts    driven.PromptStore
}

// NewQueryService creates a new query service.
func NewQueryService(fileSearch driven.FileSearchService, registry *StoreRegistry, prompts driven.PromptStore) *QueryService {
	return &QueryService{
		fileSearch: fileSearch,
		registry:   registry,
		prompts:    prompts,
	}
}

// Ask answers a question grounded on the documents of a type's store.
// The configured suffix is appended to shape the answer format; a
// missing suffix degrades to the bare question.
func (s *QueryService) Ask(ctx context.Context, question string, docType domain.DocumentType) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question must not be blank", domain.ErrValidation)
	}

	store, err := s.registry.StoreFor(ctx, docType)
	if err != nil {
		return nil, err
	}

	prompt := question
	if suffix, err := s.prompts.Load(driven.PromptQuerySuffix); err != nil {
		logger.Warn("[search] query suffix unavailable: %v", err)
	} else if suffix != "" {
		prompt = question + " " + suffix
	}

	answer, err := s.fileSearch.GenerateGrounded(ctx, prompt, []string{store.Name})
	if err != nil {
		return nil, fmt.Errorf("grounded answer: %w", err)
	}
	logger.Debug("[search] answered with %d citations", len(answer.Citations))
	return &answer, nil
}
