package services

import (
	"fmt"
	"time"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyTextProvider  = "textgen.provider"
	keyTextModel     = "textgen.model"
	keyTextBaseURL   = "textgen.base_url"
	keyTextAPIKey    = "textgen.api_key"
	keyStoreAbstr    = "stores.abstracts"
	keyStoreManus    = "stores.manuscripts"
	keyChunkTokens   = "ingestion.max_tokens_per_chunk"
	keyChunkOverlap  = "ingestion.max_overlap_tokens"
	keyPollInterval  = "ingestion.poll_interval"
	keyUploadTimeout = "ingestion.upload_timeout"
	keyFilePattern   = "ingestion.file_pattern"
	keyUploadsDir    = "ingestion.uploads_dir"
	keyGraphURI      = "graph.uri"
	keyGraphUser     = "graph.username"
	keyGraphPassword = "graph.password"
	keyGraphDatabase = "graph.database"
	keyTaskBackend   = "tasks.backend"
	keyTaskPath      = "tasks.path"
	keyServerAddress = "server.address"
	keyJobWorkers    = "jobs.workers"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, merging stored values
// over the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		TextGen: domain.TextGenSettings{
			Provider: s.getProvider(keyTextProvider, defaults.TextGen.Provider),
			Model:    s.getString(keyTextModel, defaults.TextGen.Model),
			BaseURL:  s.configStore.GetString(keyTextBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyTextAPIKey),
		},
		Stores: domain.StoreSettings{
			Abstracts:   s.getString(keyStoreAbstr, defaults.Stores.Abstracts),
			Manuscripts: s.getString(keyStoreManus, defaults.Stores.Manuscripts),
		},
		Ingestion: domain.IngestionSettings{
			Chunking: domain.ChunkingPolicy{
				MaxTokensPerChunk: s.getInt(keyChunkTokens, defaults.Ingestion.Chunking.MaxTokensPerChunk),
				MaxOverlapTokens:  s.getOverlap(defaults.Ingestion.Chunking.MaxOverlapTokens),
			},
			PollInterval:  s.getDuration(keyPollInterval, defaults.Ingestion.PollInterval),
			UploadTimeout: s.getDuration(keyUploadTimeout, defaults.Ingestion.UploadTimeout),
			FilePattern:   s.getString(keyFilePattern, defaults.Ingestion.FilePattern),
			UploadsDir:    s.getString(keyUploadsDir, defaults.Ingestion.UploadsDir),
		},
		Graph: domain.GraphSettings{
			URI:      s.configStore.GetString(keyGraphURI),
			Username: s.configStore.GetString(keyGraphUser),
			Password: s.configStore.GetString(keyGraphPassword),
			Database: s.configStore.GetString(keyGraphDatabase),
		},
		Tasks: domain.TaskSettings{
			Backend: s.getBackend(defaults.Tasks.Backend),
			Path:    s.configStore.GetString(keyTaskPath),
		},
		Server: domain.ServerSettings{
			Address: s.getString(keyServerAddress, defaults.Server.Address),
		},
		Jobs: domain.JobSettings{
			Workers: s.getInt(keyJobWorkers, defaults.Jobs.Workers),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save text-generation settings
	if err := s.configStore.Set(keyTextProvider, settings.TextGen.Provider.String()); err != nil {
		return fmt.Errorf("save textgen provider: %w", err)
	}
	if err := s.configStore.Set(keyTextModel, settings.TextGen.Model); err != nil {
		return fmt.Errorf("save textgen model: %w", err)
	}
	if err := s.configStore.Set(keyTextBaseURL, settings.TextGen.BaseURL); err != nil {
		return fmt.Errorf("save textgen base_url: %w", err)
	}
	if settings.TextGen.APIKey != "" {
		if err := s.configStore.Set(keyTextAPIKey, settings.TextGen.APIKey); err != nil {
			return fmt.Errorf("save textgen api_key: %w", err)
		}
	}

	// Save store names
	if err := s.configStore.Set(keyStoreAbstr, settings.Stores.Abstracts); err != nil {
		return fmt.Errorf("save abstracts store: %w", err)
	}
	if err := s.configStore.Set(keyStoreManus, settings.Stores.Manuscripts); err != nil {
		return fmt.Errorf("save manuscripts store: %w", err)
	}

	// Save ingestion settings
	if err := s.configStore.Set(keyChunkTokens, settings.Ingestion.Chunking.MaxTokensPerChunk); err != nil {
		return fmt.Errorf("save chunk tokens: %w", err)
	}
	if err := s.configStore.Set(keyChunkOverlap, settings.Ingestion.Chunking.MaxOverlapTokens); err != nil {
		return fmt.Errorf("save chunk overlap: %w", err)
	}
	if err := s.configStore.Set(keyPollInterval, settings.Ingestion.PollInterval.String()); err != nil {
		return fmt.Errorf("save poll interval: %w", err)
	}
	if err := s.configStore.Set(keyUploadTimeout, settings.Ingestion.UploadTimeout.String()); err != nil {
		return fmt.Errorf("save upload timeout: %w", err)
	}
	if err := s.configStore.Set(keyFilePattern, settings.Ingestion.FilePattern); err != nil {
		return fmt.Errorf("save file pattern: %w", err)
	}
	if err := s.configStore.Set(keyUploadsDir, settings.Ingestion.UploadsDir); err != nil {
		return fmt.Errorf("save uploads dir: %w", err)
	}

	// Save graph settings
	if err := s.configStore.Set(keyGraphURI, settings.Graph.URI); err != nil {
		return fmt.Errorf("save graph uri: %w", err)
	}
	if err := s.configStore.Set(keyGraphUser, settings.Graph.Username); err != nil {
		return fmt.Errorf("save graph username: %w", err)
	}
	if settings.Graph.Password != "" {
		if err := s.configStore.Set(keyGraphPassword, settings.Graph.Password); err != nil {
			return fmt.Errorf("save graph password: %w", err)
		}
	}
	if err := s.configStore.Set(keyGraphDatabase, settings.Graph.Database); err != nil {
		return fmt.Errorf("save graph database: %w", err)
	}

	// Save task settings
	if err := s.configStore.Set(keyTaskBackend, string(settings.Tasks.Backend)); err != nil {
		return fmt.Errorf("save task backend: %w", err)
	}
	if err := s.configStore.Set(keyTaskPath, settings.Tasks.Path); err != nil {
		return fmt.Errorf("save task path: %w", err)
	}

	// Save server and job settings
	if err := s.configStore.Set(keyServerAddress, settings.Server.Address); err != nil {
		return fmt.Errorf("save server address: %w", err)
	}
	if err := s.configStore.Set(keyJobWorkers, settings.Jobs.Workers); err != nil {
		return fmt.Errorf("save job workers: %w", err)
	}

	return nil
}

// SetTextProvider configures the text-generation provider.
func (s *SettingsService) SetTextProvider(provider domain.TextProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid text provider: %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.TextGen.Provider = provider
	if model != "" {
		settings.TextGen.Model = model
	} else {
		settings.TextGen.Model = domain.DefaultAppSettings().TextGen.Model
	}
	settings.TextGen.APIKey = apiKey

	return s.Save(settings)
}

// SetStoreNames updates the logical store display names. Blank names
// keep their current value.
func (s *SettingsService) SetStoreNames(abstracts, manuscripts string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if abstracts != "" {
		settings.Stores.Abstracts = abstracts
	}
	if manuscripts != "" {
		settings.Stores.Manuscripts = manuscripts
	}

	return s.Save(settings)
}

// SetChunkingOverlap updates the chunk overlap to one of the supported
// values.
func (s *SettingsService) SetChunkingOverlap(tokens int) error {
	if !domain.ValidOverlap(tokens) {
		return fmt.Errorf("invalid chunk overlap %d: must be 10, 50 or 100", tokens)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Ingestion.Chunking.MaxOverlapTokens = tokens
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(key string, defaultVal domain.TextProvider) domain.TextProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.TextProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getOverlap(defaultVal int) int {
	val := s.configStore.GetInt(keyChunkOverlap)
	if !domain.ValidOverlap(val) {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBackend(defaultVal domain.TaskBackend) domain.TaskBackend {
	val := s.configStore.GetString(keyTaskBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.TaskBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
