package driving

import "github.com/Sidharth1743/File-Search/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetTextProvider configures the text-generation provider.
	SetTextProvider(provider domain.TextProvider, model, apiKey string) error

	// SetStoreNames updates the logical store display names.
	SetStoreNames(abstracts, manuscripts string) error

	// SetChunkingOverlap updates the chunk overlap. The value must be
	// one of the supported settings.
	SetChunkingOverlap(tokens int) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
