package mcp

import (
	"context"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer *domain.Answer
	err    error

	question string
	docType  domain.DocumentType
}

func (m *mockQueryService) Ask(
	_ context.Context,
	question string,
	docType domain.DocumentType,
) (*domain.Answer, error) {
	m.question = question
	m.docType = docType
	return m.answer, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	records []domain.DocumentRecord
	err     error

	docType domain.DocumentType
}

func (m *mockDocumentService) List(
	_ context.Context,
	docType domain.DocumentType,
) ([]domain.DocumentRecord, error) {
	m.docType = docType
	return m.records, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ domain.DocumentType, _ string) error {
	return m.err
}

// mockTaskService is a mock implementation of driving.TaskService.
type mockTaskService struct {
	task  *domain.Task
	tasks []*domain.Task
	err   error
}

func (m *mockTaskService) Create(_ context.Context) (string, error) {
	return "", m.err
}

func (m *mockTaskService) Update(_ context.Context, _ string, _ domain.ProgressEvent) error {
	return m.err
}

func (m *mockTaskService) Complete(_ context.Context, _ string, _ *domain.BatchResult) error {
	return m.err
}

func (m *mockTaskService) Fail(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockTaskService) Get(_ context.Context, _ string) (*domain.Task, error) {
	return m.task, m.err
}

func (m *mockTaskService) List(_ context.Context) ([]*domain.Task, error) {
	return m.tasks, m.err
}

// mockStoreService is a mock implementation of driving.StoreService.
type mockStoreService struct {
	infos []driving.StoreInfo
	err   error
}

func (m *mockStoreService) Describe(_ context.Context) ([]driving.StoreInfo, error) {
	return m.infos, m.err
}
