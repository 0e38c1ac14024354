package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// handleDocumentUpload ingests one uploaded document synchronously: the
// multipart file is staged under the uploads directory, then runs the
// full pipeline including operation polling, so a 201 means the
// document is indexed.
func (s *Server) handleDocumentUpload(w http.ResponseWriter, r *http.Request) {
	if s.ports.Ingest == nil {
		writeErrorMessage(w, http.StatusServiceUnavailable, "ingestion is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, fmt.Sprintf("parse multipart form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close() //nolint:errcheck

	staged, err := s.stageUpload(file, header.Filename)
	if err != nil {
		writeError(w, err)
		return
	}
	defer os.RemoveAll(filepath.Dir(staged)) //nolint:errcheck

	docType := domain.DocumentTypeAbstracts
	if raw := r.FormValue("document_type"); raw != "" {
		docType = domain.DocumentType(raw)
	}

	receipt, err := s.ports.Ingest.IngestDocument(r.Context(), driving.IngestRequest{
		FilePath: staged,
		Type:     docType,
		Title:    r.FormValue("title"),
		ID:       r.FormValue("id"),
		Text:     r.FormValue("extracted_text"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, receiptToBody(receipt))
}

// stageUpload copies one multipart file into a fresh directory under
// the uploads dir, keeping the client's base name for the remote
// file_name metadata.
func (s *Server) stageUpload(file io.Reader, filename string) (string, error) {
	uploadsDir := s.uploadsDir
	if uploadsDir == "" {
		uploadsDir = os.TempDir()
	}
	if err := os.MkdirAll(uploadsDir, 0o700); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	dir, err := os.MkdirTemp(uploadsDir, "upload-")
	if err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}

// handleDocumentList returns every document in the store selected by
// the type query parameter.
func (s *Server) handleDocumentList(w http.ResponseWriter, r *http.Request) {
	if s.ports.Documents == nil {
		writeErrorMessage(w, http.StatusServiceUnavailable, "document service is not configured")
		return
	}

	docType := domain.DocumentTypeAbstracts
	if raw := r.URL.Query().Get("type"); raw != "" {
		docType = domain.DocumentType(raw)
	}

	records, err := s.ports.Documents.List(r.Context(), docType)
	if err != nil {
		writeError(w, err)
		return
	}

	bodies := make([]documentBody, 0, len(records))
	for _, record := range records {
		bodies = append(bodies, documentToBody(record))
	}
	writeJSON(w, http.StatusOK, bodies)
}

// handleDocumentDelete removes one document, cascading its chunks.
func (s *Server) handleDocumentDelete(w http.ResponseWriter, r *http.Request) {
	if s.ports.Documents == nil {
		writeErrorMessage(w, http.StatusServiceUnavailable, "document service is not configured")
		return
	}

	docType := domain.DocumentTypeAbstracts
	if raw := r.URL.Query().Get("type"); raw != "" {
		docType = domain.DocumentType(raw)
	}
	name := r.PathValue("name")

	if err := s.ports.Documents.Delete(r.Context(), docType, name); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ingestFolderRequest struct {
	FolderPath   string                      `json:"folder_path"`
	DocumentType string                      `json:"document_type"`
	Metadata     map[string]documentMetaBody `json:"metadata,omitempty"`
}

type documentMetaBody struct {
	Title string `json:"title"`
	ID    string `json:"id"`
}

type ingestFolderResponse struct {
	TaskID string `json:"task_id"`
}

// handleIngestFolder accepts a folder batch, validates its
// preconditions, and answers 202 with a task id while the batch runs on
// the job pool. Progress is observable through the tasks endpoints.
func (s *Server) handleIngestFolder(w http.ResponseWriter, r *http.Request) {
	if s.ports.Bulk == nil || s.ports.Tasks == nil || s.ports.Jobs == nil {
		writeErrorMessage(w, http.StatusServiceUnavailable, "bulk ingestion is not configured")
		return
	}

	var req ingestFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}

	docType := domain.DocumentType(req.DocumentType)
	if !docType.IsValid() {
		writeErrorMessage(w, http.StatusBadRequest, fmt.Sprintf("invalid document type %q", req.DocumentType))
		return
	}
	// Reject a bad folder before a task exists, so callers never poll a
	// task that was doomed from the start.
	if s.ports.Scanner != nil {
		if err := s.ports.Scanner.Validate(req.FolderPath); err != nil {
			writeError(w, err)
			return
		}
	}

	overrides := make(map[string]domain.DocumentMeta, len(req.Metadata))
	for filename, meta := range req.Metadata {
		overrides[filename] = domain.DocumentMeta{Title: meta.Title, ID: meta.ID, FileName: filename}
	}

	taskID, err := s.ports.Tasks.Create(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	bulkReq := driving.BulkRequest{
		FolderPath:        req.FolderPath,
		Type:              docType,
		MetadataOverrides: overrides,
	}

	err = s.ports.Jobs.Submit(func() {
		// The request context dies with the response; the job keeps its
		// own lifetime.
		ctx := context.Background()
		onProgress := func(event domain.ProgressEvent) {
			if err := s.ports.Tasks.Update(ctx, taskID, event); err != nil {
				logger.Warn("[api] update task %s: %v", taskID, err)
			}
		}

		result, err := s.ports.Bulk.IngestFolder(ctx, bulkReq, onProgress)
		if err != nil {
			if err := s.ports.Tasks.Fail(ctx, taskID, err.Error()); err != nil {
				logger.Warn("[api] fail task %s: %v", taskID, err)
			}
			return
		}
		if err := s.ports.Tasks.Complete(ctx, taskID, result); err != nil {
			logger.Warn("[api] complete task %s: %v", taskID, err)
		}
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, ingestFolderResponse{TaskID: taskID})
}

// handleTaskGet returns one task by id.
func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	if s.ports.Tasks == nil {
		writeErrorMessage(w, http.StatusServiceUnavailable, "task service is not configured")
		return
	}

	task, err := s.ports.Tasks.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, taskToBody(task))
}

// handleTaskList returns all tasks, most-recently-started first.
func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	if s.ports.Tasks == nil {
		writeErrorMessage(w, http.StatusServiceUnavailable, "task service is not configured")
		return
	}

	tasks, err := s.ports.Tasks.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	bodies := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		bodies = append(bodies, taskToBody(task))
	}
	writeJSON(w, http.StatusOK, bodies)
}

type queryRequest struct {
	Question     string `json:"question"`
	DocumentType string `json:"document_type,omitempty"`
}

// handleQuery answers a question grounded on a store's documents.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if s.ports.Query == nil {
		writeErrorMessage(w, http.StatusServiceUnavailable, "query service is not configured")
		return
	}

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}

	docType := domain.DocumentTypeAbstracts
	if req.DocumentType != "" {
		docType = domain.DocumentType(req.DocumentType)
	}

	answer, err := s.ports.Query.Ask(r.Context(), req.Question, docType)
	if err != nil {
		writeError(w, err)
		return
	}

	citations := answer.Citations
	if citations == nil {
		citations = []string{}
	}
	writeJSON(w, http.StatusOK, queryBody{Answer: answer.Text, Citations: citations})
}

// handleStores reports the resolved logical stores.
func (s *Server) handleStores(w http.ResponseWriter, r *http.Request) {
	if s.ports.Stores == nil {
		writeErrorMessage(w, http.StatusServiceUnavailable, "store service is not configured")
		return
	}

	infos, err := s.ports.Stores.Describe(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	bodies := make([]storeBody, 0, len(infos))
	for _, info := range infos {
		bodies = append(bodies, storeBody{
			Type:        string(info.Type),
			Name:        info.Store.Name,
			DisplayName: info.Store.DisplayName,
			Documents:   info.Documents,
		})
	}
	writeJSON(w, http.StatusOK, bodies)
}

// handleHealth answers liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
