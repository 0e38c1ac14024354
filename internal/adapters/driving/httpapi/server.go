// Package httpapi exposes the ingestion and query services over a JSON
// HTTP API. Single-document uploads are synchronous; folder ingestion
// is accepted with 202 and tracked through the task service.
package httpapi

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

const (
	// DefaultAddress is the listen address when none is configured.
	DefaultAddress = "127.0.0.1:8080"

	// maxUploadBytes bounds one multipart upload. The remote store
	// rejects larger documents anyway.
	maxUploadBytes = 100 << 20

	// shutdownTimeout bounds how long in-flight requests may run once
	// shutdown starts.
	shutdownTimeout = 10 * time.Second
)

// Ports bundles the driving services the API exposes.
type Ports struct {
	Ingest    driving.IngestService
	Bulk      driving.BulkService
	Tasks     driving.TaskService
	Jobs      driving.JobRunner
	Documents driving.DocumentService
	Query     driving.QueryService
	Stores    driving.StoreService
	Scanner   driven.FolderScanner
}

// Config holds server configuration.
type Config struct {
	// Address is the listen address, e.g. "127.0.0.1:8080".
	Address string

	// UploadsDir is where uploaded files are staged before ingestion.
	UploadsDir string
}

// Server is the HTTP API server.
type Server struct {
	ports      Ports
	address    string
	uploadsDir string
	handler    http.Handler
}

// NewServer creates the API server and wires its routes.
func NewServer(ports Ports, cfg Config) *Server {
	address := cfg.Address
	if address == "" {
		address = DefaultAddress
	}

	s := &Server{
		ports:      ports,
		address:    address,
		uploadsDir: cfg.UploadsDir,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/documents", s.handleDocumentUpload)
	mux.HandleFunc("GET /api/documents", s.handleDocumentList)
	mux.HandleFunc("DELETE /api/documents/{name...}", s.handleDocumentDelete)
	mux.HandleFunc("POST /api/ingest/folder", s.handleIngestFolder)
	mux.HandleFunc("GET /api/tasks", s.handleTaskList)
	mux.HandleFunc("GET /api/tasks/{id}", s.handleTaskGet)
	mux.HandleFunc("POST /api/query", s.handleQuery)
	mux.HandleFunc("GET /api/stores", s.handleStores)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	s.handler = mux

	return s
}

// Handler returns the route handler. Used in tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully so
// in-flight requests finish.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      5 * time.Minute, // uploads poll until indexed
		IdleTimeout:       2 * time.Minute,
	}

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.address, err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	logger.Info("HTTP API listening on http://%s", listener.Addr())

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
