package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sidharth1743/File-Search/internal/adapters/driving/httpapi"
)

var serveAddress string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serves the JSON HTTP API: single-document ingestion, folder batches
with asynchronous task polling, document listing and deletion, and
grounded queries. Runs until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if ingestService == nil || settingsService == nil {
		return errors.New("ingest service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	address := serveAddress
	if address == "" {
		address = settings.Server.Address
	}

	server := httpapi.NewServer(httpapi.Ports{
		Ingest:    ingestService,
		Bulk:      bulkService,
		Tasks:     taskService,
		Jobs:      jobRunner,
		Documents: documentService,
		Query:     queryService,
		Stores:    storeService,
		Scanner:   folderScanner,
	}, httpapi.Config{
		Address:    address,
		UploadsDir: settings.Ingestion.UploadsDir,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}
