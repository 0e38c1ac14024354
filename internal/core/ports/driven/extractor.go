package driven

import "context"

// TextExtractor produces a document's text for graph extraction.
// Optical extraction from page images is owned by an external
// collaborator; local implementations only cover text-like files.
type TextExtractor interface {
	// Supports reports whether this extractor handles the file.
	Supports(path string) bool

	// Extract returns the document's text.
	Extract(ctx context.Context, path string) (string, error)
}
