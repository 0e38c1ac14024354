// Package gemini implements the remote store service against the Gemini
// File Search REST API.
//
// The adapter talks to generativelanguage.googleapis.com over plain
// HTTP with an API key header. It covers the surface the core consumes:
//
//   - Store listing and creation (fileSearchStores)
//   - Document upload via the two-step resumable media protocol
//     (uploadToFileSearchStore), returning a long-running operation
//   - Operation re-fetch for upload polling
//   - Paged document listing and forced document deletion
//   - Grounded generation (models:generateContent with the file search
//     tool), returning the answer text and citation titles
//
// # Rate Limiting
//
// A token bucket throttles all requests to stay under the per-minute
// quota. Transient failures (429 and 5xx) on JSON calls are retried
// with exponential backoff; upload submissions are not retried, the
// ingestion pipeline already treats an upload failure as fatal to that
// one document.
package gemini
