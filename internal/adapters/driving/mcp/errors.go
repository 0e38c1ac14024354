// Package mcp provides an MCP (Model Context Protocol) server adapter for
// File Search. It exposes read-only query, document and task-status tools to
// AI assistants; ingestion stays on the CLI and HTTP surfaces.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
