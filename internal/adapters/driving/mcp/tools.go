package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

// QueryInput is the input schema for the query_documents tool.
type QueryInput struct {
	Question     string `json:"question" jsonschema:"the question to answer from the ingested documents"`
	DocumentType string `json:"document_type,omitempty" jsonschema:"which store to query: abstracts or manuscripts (default abstracts)"`
}

// QueryOutput is the output schema for the query_documents tool.
type QueryOutput struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations,omitempty"`
}

// ListDocumentsInput is the input schema for the list_documents tool.
type ListDocumentsInput struct {
	DocumentType string `json:"document_type,omitempty" jsonschema:"which store to list: abstracts or manuscripts (default abstracts)"`
}

// DocumentOutput represents a single ingested document.
type DocumentOutput struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	ShortName   string `json:"short_name,omitempty"`
	FileName    string `json:"file_name,omitempty"`
}

// ListDocumentsOutput is the output schema for the list_documents tool.
type ListDocumentsOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// TaskStatusInput is the input schema for the get_task_status tool.
type TaskStatusInput struct {
	TaskID string `json:"task_id" jsonschema:"the id of the bulk ingestion task"`
}

// TaskOutput represents one bulk ingestion task.
type TaskOutput struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Current     int      `json:"current"`
	Total       int      `json:"total"`
	CurrentFile string   `json:"current_file,omitempty"`
	StartedAt   string   `json:"started_at"`
	CompletedAt string   `json:"completed_at,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

// ListTasksOutput is the output schema for the list_tasks tool.
type ListTasksOutput struct {
	Tasks []TaskOutput `json:"tasks"`
	Count int          `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
// Ingestion is deliberately not exposed; the MCP surface is read-only.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_documents",
		Description: "Ask a question grounded on the ingested documents; answers cite their sources",
	}, s.handleQuery)

	if s.ports.Document != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_documents",
			Description: "List the documents ingested into a store",
		}, s.handleListDocuments)
	}

	if s.ports.Tasks != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "get_task_status",
			Description: "Get the progress of a bulk ingestion task",
		}, s.handleTaskStatus)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_tasks",
			Description: "List bulk ingestion tasks, most recent first",
		}, s.handleListTasks)
	}
}

// resolveDocumentType maps the optional tool argument onto a document
// type, defaulting to abstracts.
func resolveDocumentType(raw string) (domain.DocumentType, error) {
	if raw == "" {
		return domain.DocumentTypeAbstracts, nil
	}
	docType := domain.DocumentType(raw)
	if !docType.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidDocumentType, raw)
	}
	return docType, nil
}

// handleQuery handles the query_documents tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	docType, err := resolveDocumentType(input.DocumentType)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	answer, err := s.ports.Query.Ask(ctx, input.Question, docType)
	if err != nil {
		return nil, QueryOutput{}, err
	}

	return nil, QueryOutput{
		Answer:    answer.Text,
		Citations: answer.Citations,
	}, nil
}

// handleListDocuments handles the list_documents tool invocation.
func (s *Server) handleListDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListDocumentsInput,
) (*mcp.CallToolResult, ListDocumentsOutput, error) {
	docType, err := resolveDocumentType(input.DocumentType)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	records, err := s.ports.Document.List(ctx, docType)
	if err != nil {
		return nil, ListDocumentsOutput{}, err
	}

	output := ListDocumentsOutput{
		Documents: make([]DocumentOutput, len(records)),
		Count:     len(records),
	}

	for i := range records {
		shortName, _ := records[i].DedupKey()
		fileName, _ := records[i].MetadataValue("file_name")
		output.Documents[i] = DocumentOutput{
			Name:        records[i].Name,
			DisplayName: records[i].DisplayName,
			ShortName:   shortName,
			FileName:    fileName,
		}
	}

	return nil, output, nil
}

// handleTaskStatus handles the get_task_status tool invocation.
func (s *Server) handleTaskStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TaskStatusInput,
) (*mcp.CallToolResult, TaskOutput, error) {
	task, err := s.ports.Tasks.Get(ctx, input.TaskID)
	if err != nil {
		return nil, TaskOutput{}, err
	}

	return nil, taskOutput(task), nil
}

// handleListTasks handles the list_tasks tool invocation.
func (s *Server) handleListTasks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, ListTasksOutput, error) {
	tasks, err := s.ports.Tasks.List(ctx)
	if err != nil {
		return nil, ListTasksOutput{}, err
	}

	output := ListTasksOutput{
		Tasks: make([]TaskOutput, len(tasks)),
		Count: len(tasks),
	}
	for i, task := range tasks {
		output.Tasks[i] = taskOutput(task)
	}

	return nil, output, nil
}

func taskOutput(task *domain.Task) TaskOutput {
	out := TaskOutput{
		ID:          task.ID,
		Status:      string(task.Status),
		Current:     task.Current,
		Total:       task.Total,
		CurrentFile: task.CurrentFile,
		StartedAt:   task.StartedAt.Format(time.RFC3339),
		Errors:      task.Errors,
	}
	if task.CompletedAt != nil {
		out.CompletedAt = task.CompletedAt.Format(time.RFC3339)
	}
	return out
}
