package driven

import "context"

// TextGenerator is the text-generation / completion service. It accepts
// raw text or a document reference plus an instruction and returns
// free-form text; the core parses that text itself.
type TextGenerator interface {
	// Generate returns the model's completion for a prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateWithFile runs a prompt over a local document's content,
	// for instructions that need the document itself (e.g. metadata
	// inference over a PDF).
	GenerateWithFile(ctx context.Context, filePath, prompt string) (string, error)
}
