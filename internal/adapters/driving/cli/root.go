package cli

import (
	"github.com/spf13/cobra"

	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// version is overridden at build time via ldflags.
var version = "dev"

// Services the commands drive. Wired once at startup; commands check
// for nil so a partially wired binary fails with a clear message
// instead of a panic.
var (
	ingestService   driving.IngestService
	bulkService     driving.BulkService
	taskService     driving.TaskService
	jobRunner       driving.JobRunner
	documentService driving.DocumentService
	queryService    driving.QueryService
	storeService    driving.StoreService
	settingsService driving.SettingsService
	watchService    driving.WatchService
	configStore     driven.ConfigStore
	folderScanner   driven.FolderScanner
)

// Services bundles everything the CLI needs from the composition root.
type Services struct {
	Ingest   driving.IngestService
	Bulk     driving.BulkService
	Tasks    driving.TaskService
	Jobs     driving.JobRunner
	Document driving.DocumentService
	Query    driving.QueryService
	Store    driving.StoreService
	Settings driving.SettingsService
	Watch    driving.WatchService
	Config   driven.ConfigStore
	Scanner  driven.FolderScanner
}

// SetServices injects the service implementations the commands use.
func SetServices(s Services) {
	ingestService = s.Ingest
	bulkService = s.Bulk
	taskService = s.Tasks
	jobRunner = s.Jobs
	documentService = s.Document
	queryService = s.Query
	storeService = s.Store
	settingsService = s.Settings
	watchService = s.Watch
	configStore = s.Config
	folderScanner = s.Scanner
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "filesearch",
	Short: "Ingest and query documents with the File Search API",
	Long: `File Search ingests local documents into managed stores and answers
questions grounded on their content.

Documents are uploaded with inferred or caller-supplied metadata,
chunked and indexed remotely, and optionally mined into a knowledge
graph. Queries return generated answers with citations back to the
source documents.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
