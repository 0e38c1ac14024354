package mcp

import (
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers grounded questions against the stores.
	Query driving.QueryService

	// Document lists documents within the logical stores.
	Document driving.DocumentService

	// Tasks reports bulk ingestion progress.
	Tasks driving.TaskService

	// Store describes the resolved logical stores.
	Store driving.StoreService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// Document, Tasks and Store are optional; their tools and resources
	// are only registered when present.
	return nil
}
