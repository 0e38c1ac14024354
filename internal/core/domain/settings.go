package domain

import "time"

const unknownDescription = "Unknown"

// TextProvider identifies a text-generation service provider.
type TextProvider string

// Available text-generation providers.
const (
	// TextProviderGoogleAI is the Gemini API.
	TextProviderGoogleAI TextProvider = "googleai"

	// TextProviderOpenAI is the OpenAI API or any compatible endpoint.
	TextProviderOpenAI TextProvider = "openai"

	// TextProviderAnthropic is the Anthropic API.
	TextProviderAnthropic TextProvider = "anthropic"

	// TextProviderOllama is a local Ollama endpoint.
	TextProviderOllama TextProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p TextProvider) IsValid() bool {
	switch p {
	case TextProviderGoogleAI, TextProviderOpenAI, TextProviderAnthropic, TextProviderOllama:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p TextProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p TextProvider) Description() string {
	switch p {
	case TextProviderGoogleAI:
		return "Google AI (Gemini)"
	case TextProviderOpenAI:
		return "OpenAI (or compatible endpoint)"
	case TextProviderAnthropic:
		return "Anthropic (Claude)"
	case TextProviderOllama:
		return "Ollama (local)"
	default:
		return unknownDescription
	}
}

// AllTextProviders returns the supported text-generation providers.
func AllTextProviders() []TextProvider {
	return []TextProvider{TextProviderGoogleAI, TextProviderOpenAI, TextProviderAnthropic, TextProviderOllama}
}

// TextGenSettings holds text-generation provider configuration. The
// same provider serves metadata inference and graph extraction.
type TextGenSettings struct {
	// Provider is the text-generation service provider.
	Provider TextProvider

	// Model is the generation model name.
	Model string

	// BaseURL overrides the API endpoint (for compatible gateways).
	BaseURL string

	// APIKey is the API key. The GEMINI_API_KEY environment variable
	// takes precedence when set.
	APIKey string
}

// IsConfigured returns true if the provider is set up.
func (t TextGenSettings) IsConfigured() bool {
	if !t.Provider.IsValid() {
		return false
	}
	// Local Ollama endpoints don't require an API key.
	if t.Provider == TextProviderOllama {
		return true
	}
	return t.APIKey != ""
}

// StoreSettings names the logical stores documents are ingested into.
type StoreSettings struct {
	// Abstracts is the display name of the abstracts store.
	Abstracts string

	// Manuscripts is the display name of the manuscripts store.
	Manuscripts string
}

// DisplayName returns the configured display name for a document type.
func (s StoreSettings) DisplayName(t DocumentType) string {
	if t == DocumentTypeManuscripts {
		return s.Manuscripts
	}
	return s.Abstracts
}

// IngestionSettings holds upload and polling configuration.
type IngestionSettings struct {
	// Chunking is applied to every store this process creates.
	Chunking ChunkingPolicy

	// PollInterval is the fixed delay between operation fetches.
	PollInterval time.Duration

	// UploadTimeout bounds one document's poll loop. Zero disables the
	// bound and the loop runs until the operation finishes or the
	// context is cancelled.
	UploadTimeout time.Duration

	// FilePattern selects files during folder enumeration.
	FilePattern string

	// UploadsDir is where the HTTP surface stages uploaded files.
	UploadsDir string
}

// GraphSettings holds graph database connection configuration.
type GraphSettings struct {
	// URI is the bolt/neo4j connection string.
	URI string

	// Username and Password authenticate the session.
	Username string
	Password string

	// Database is the target database name, empty for the default.
	Database string
}

// IsConfigured returns true if a graph database is set up.
func (g GraphSettings) IsConfigured() bool {
	return g.URI != ""
}

// TaskBackend selects where task records live.
type TaskBackend string

const (
	// TaskBackendMemory keeps tasks in process memory; they are lost on
	// restart.
	TaskBackendMemory TaskBackend = "memory"

	// TaskBackendSQLite persists tasks to a local database file.
	TaskBackendSQLite TaskBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b TaskBackend) IsValid() bool {
	switch b {
	case TaskBackendMemory, TaskBackendSQLite:
		return true
	default:
		return false
	}
}

// TaskSettings holds task tracking configuration.
type TaskSettings struct {
	// Backend selects the task store implementation.
	Backend TaskBackend

	// Path is the sqlite database file, ignored for the memory backend.
	Path string
}

// ServerSettings holds HTTP API configuration.
type ServerSettings struct {
	// Address is the listen address, e.g. "127.0.0.1:8080".
	Address string
}

// JobSettings holds background job pool configuration.
type JobSettings struct {
	// Workers bounds how many bulk jobs may run concurrently.
	Workers int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// TextGen holds text-generation provider settings.
	TextGen TextGenSettings

	// Stores names the logical document stores.
	Stores StoreSettings

	// Ingestion holds upload and polling settings.
	Ingestion IngestionSettings

	// Graph holds graph database settings.
	Graph GraphSettings

	// Tasks holds task tracking settings.
	Tasks TaskSettings

	// Server holds HTTP API settings.
	Server ServerSettings

	// Jobs holds background job pool settings.
	Jobs JobSettings
}

// DefaultAppSettings returns settings with sensible defaults. The text
// generator and graph database are left unconfigured; commands that
// need them refuse to start until they are set up.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		TextGen: TextGenSettings{
			Provider: TextProviderGoogleAI,
			Model:    "gemini-2.5-flash",
		},
		Stores: StoreSettings{
			Abstracts:   "abstracts_store",
			Manuscripts: "manuscripts_store",
		},
		Ingestion: IngestionSettings{
			Chunking:      DefaultChunkingPolicy(),
			PollInterval:  3 * time.Second,
			UploadTimeout: 10 * time.Minute,
			FilePattern:   "*.pdf",
			UploadsDir:    "uploads",
		},
		Tasks: TaskSettings{
			Backend: TaskBackendMemory,
		},
		Server: ServerSettings{
			Address: "127.0.0.1:8080",
		},
		Jobs: JobSettings{
			Workers: 4,
		},
	}
}
