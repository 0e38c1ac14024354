package driven

// PromptStore provides access to text-generation prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// Returns the prompt content and any error encountered.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptMetadataInference asks the model for a document's title and
	// identifier as a JSON object. No format placeholders.
	PromptMetadataInference = "metadata_inference"

	// PromptGraphExtraction instructs the model to emit node and
	// relationship literals over a passage of text. The template
	// expects a %s placeholder for the passage.
	PromptGraphExtraction = "graph_extraction"

	// PromptQuerySuffix is appended to grounded questions to shape the
	// answer format. No format placeholders.
	PromptQuerySuffix = "query_suffix"
)
