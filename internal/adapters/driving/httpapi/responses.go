package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// Response bodies. The wire format is snake_case and decoupled from the
// domain types so those can change without breaking API clients.

type errorResponse struct {
	Error string `json:"error"`
}

type taskResponse struct {
	ID             string           `json:"id"`
	Status         string           `json:"status"`
	Current        int              `json:"current"`
	Total          int              `json:"total"`
	CurrentFile    string           `json:"current_file,omitempty"`
	StartedAt      time.Time        `json:"started_at"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
	Errors         []string         `json:"errors,omitempty"`
	ProcessedFiles []fileResultBody `json:"processed_files,omitempty"`
	Result         *batchResultBody `json:"result,omitempty"`
}

type fileResultBody struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Detail   string `json:"detail,omitempty"`
}

type batchResultBody struct {
	Total      int      `json:"total"`
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Skipped    int      `json:"skipped"`
	Errors     []string `json:"errors,omitempty"`
}

type metadataEntryBody struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type documentBody struct {
	Name        string              `json:"name"`
	DisplayName string              `json:"display_name"`
	Metadata    []metadataEntryBody `json:"metadata"`
}

type storeBody struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Documents   int    `json:"documents"`
}

type graphBody struct {
	Nodes         int    `json:"nodes"`
	Relationships int    `json:"relationships"`
	Skipped       bool   `json:"skipped"`
	Note          string `json:"note,omitempty"`
}

type ingestReceiptBody struct {
	Store    storeBody `json:"store"`
	Title    string    `json:"title"`
	ID       string    `json:"id"`
	FileName string    `json:"file_name"`
	Inferred bool      `json:"inferred"`
	Graph    graphBody `json:"graph"`
}

type queryBody struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations"`
}

func taskToBody(task *domain.Task) taskResponse {
	body := taskResponse{
		ID:          task.ID,
		Status:      string(task.Status),
		Current:     task.Current,
		Total:       task.Total,
		CurrentFile: task.CurrentFile,
		StartedAt:   task.StartedAt,
		CompletedAt: task.CompletedAt,
		Errors:      task.Errors,
	}
	for _, file := range task.ProcessedFiles {
		body.ProcessedFiles = append(body.ProcessedFiles, fileResultBody{
			Filename: file.Filename,
			Status:   string(file.Status),
			Detail:   file.Detail,
		})
	}
	if task.Result != nil {
		body.Result = &batchResultBody{
			Total:      task.Result.Total,
			Successful: task.Result.Successful,
			Failed:     task.Result.Failed,
			Skipped:    task.Result.Skipped,
			Errors:     task.Result.Errors,
		}
	}
	return body
}

func documentToBody(record domain.DocumentRecord) documentBody {
	body := documentBody{
		Name:        record.Name,
		DisplayName: record.DisplayName,
		Metadata:    []metadataEntryBody{},
	}
	for _, entry := range record.Metadata {
		body.Metadata = append(body.Metadata, metadataEntryBody{Key: entry.Key, Value: entry.Value})
	}
	return body
}

func receiptToBody(receipt *driving.IngestReceipt) ingestReceiptBody {
	return ingestReceiptBody{
		Store: storeBody{
			Name:        receipt.Store.Name,
			DisplayName: receipt.Store.DisplayName,
		},
		Title:    receipt.Meta.Title,
		ID:       receipt.Meta.ID,
		FileName: receipt.Meta.FileName,
		Inferred: receipt.Inferred,
		Graph: graphBody{
			Nodes:         receipt.GraphNodes,
			Relationships: receipt.GraphRelationships,
			Skipped:       receipt.GraphSkipped,
			Note:          receipt.GraphNote,
		},
	}
}

// writeJSON renders one response body. Encoding failures are logged;
// headers are already gone by then.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("[api] encode response: %v", err)
	}
}

// writeError maps a service error onto a status code and a JSON body.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

// writeErrorMessage responds with an explicit status and message.
func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps domain sentinel errors onto HTTP status codes.
// Validation problems are the caller's fault; everything else is a
// server-side failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidDocumentType),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrFolderNotFound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTaskTerminal):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
