// Package main is the composition root: it builds the driven adapters,
// wires the core services together and hands them to the CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Sidharth1743/File-Search/internal/adapters/driven/config/file"
	"github.com/Sidharth1743/File-Search/internal/adapters/driven/filesearch/gemini"
	"github.com/Sidharth1743/File-Search/internal/adapters/driven/fs"
	"github.com/Sidharth1743/File-Search/internal/adapters/driven/graph/neo4j"
	"github.com/Sidharth1743/File-Search/internal/adapters/driven/storage/memory"
	"github.com/Sidharth1743/File-Search/internal/adapters/driven/storage/sqlite"
	"github.com/Sidharth1743/File-Search/internal/adapters/driven/textgen/langchain"
	"github.com/Sidharth1743/File-Search/internal/adapters/driving/cli"
	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/core/services"
	"github.com/Sidharth1743/File-Search/internal/extractors"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Configuration and prompts live under ~/.filesearch.
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("open prompt store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// The environment variable wins over the stored key.
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = settings.TextGen.APIKey
	}
	if apiKey == "" {
		logger.Warn("No API key configured (GEMINI_API_KEY or `filesearch config set textgen.api_key`); remote commands will fail")
	}
	if settings.TextGen.Provider == domain.TextProviderGoogleAI {
		settings.TextGen.APIKey = apiKey
	}

	fileSearch := gemini.NewClient(gemini.Config{
		APIKey: apiKey,
		Model:  settings.TextGen.Model,
	})

	// The text generator is optional: without it, metadata inference
	// falls back to filename-derived values and graph extraction only
	// runs on caller-supplied literals.
	var textGen driven.TextGenerator
	if settings.TextGen.IsConfigured() {
		generator, err := langchain.New(ctx, settings.TextGen)
		if err != nil {
			logger.Warn("Text generator unavailable: %v", err)
		} else {
			textGen = generator
		}
	}

	// The graph database is optional: extraction still runs, storage is
	// reported as unavailable.
	var graphStore driven.GraphStore
	if settings.Graph.IsConfigured() {
		store, err := neo4j.NewStore(settings.Graph)
		if err != nil {
			logger.Warn("Graph store unavailable: %v", err)
		} else {
			graphStore = store
			defer store.Close(ctx) //nolint:errcheck
		}
	}

	taskStore, closeTasks, err := newTaskStore(settings.Tasks)
	if err != nil {
		return err
	}
	defer closeTasks()

	scanner := fs.NewScanner()

	registry := services.NewStoreRegistry(fileSearch, settings.Stores, settings.Ingestion.Chunking)
	dedup := services.NewDedupIndex(fileSearch)
	graphService := services.NewGraphExtractor(textGen, graphStore, promptStore)
	pipeline := services.NewIngestionPipeline(
		fileSearch, registry, textGen, graphService,
		extractors.Defaults(), promptStore, settings.Ingestion,
	)
	bulk := services.NewBulkOrchestrator(pipeline, registry, dedup, scanner, settings.Ingestion)
	tracker := services.NewTaskTracker(taskStore)
	documents := services.NewDocumentService(fileSearch, registry)
	query := services.NewQueryService(fileSearch, registry, promptStore)
	watch := services.NewWatchService(pipeline, fs.NewWatcher(), settings.Ingestion)

	jobs, err := services.NewJobPool(settings.Jobs.Workers)
	if err != nil {
		return err
	}
	defer jobs.Release()

	cli.SetServices(cli.Services{
		Ingest:   pipeline,
		Bulk:     bulk,
		Tasks:    tracker,
		Jobs:     jobs,
		Document: documents,
		Query:    query,
		Store:    documents,
		Settings: settingsService,
		Watch:    watch,
		Config:   configStore,
		Scanner:  scanner,
	})

	return cli.Execute()
}

// newTaskStore builds the configured task store backend. The returned
// close function is a no-op for the memory backend.
func newTaskStore(settings domain.TaskSettings) (driven.TaskStore, func(), error) {
	if settings.Backend == domain.TaskBackendSQLite {
		path := settings.Path
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, nil, fmt.Errorf("get home directory: %w", err)
			}
			path = filepath.Join(home, ".filesearch", "data", "tasks.db")
		}
		store, err := sqlite.NewStore(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open task store: %w", err)
		}
		return store.TaskStore(), func() { store.Close() }, nil //nolint:errcheck
	}
	return memory.NewTaskStore(), func() {}, nil
}
