package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
)

var bulkType string

var bulkCmd = &cobra.Command{
	Use:   "bulk [folder]",
	Short: "Ingest every matching document in a folder",
	Long: `Processes all files in a folder that match the configured file
pattern, one at a time. Files already present in the store are skipped
when the document type deduplicates; one file's failure never aborts
the batch.

Press Ctrl-C to stop after the current file.`,
	Args: cobra.ExactArgs(1),
	RunE: runBulk,
}

func init() {
	bulkCmd.Flags().StringVarP(&bulkType, "type", "t", string(domain.DocumentTypeManuscripts), "document type (abstracts or manuscripts)")
	rootCmd.AddCommand(bulkCmd)
}

func runBulk(cmd *cobra.Command, args []string) error {
	if bulkService == nil {
		return errors.New("bulk service not configured")
	}

	folder := args[0]
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Scanning %s...\n", folder)

	// The bar is created on the first event, once the batch size is
	// known.
	var bar *progressbar.ProgressBar
	onProgress := func(event domain.ProgressEvent) {
		if bar == nil {
			bar = progressbar.NewOptions(event.Total,
				progressbar.OptionSetWriter(cmd.OutOrStdout()),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("Ingesting"),
				progressbar.OptionOnCompletion(func() {
					cmd.Println()
				}),
			)
		}
		bar.Describe(fmt.Sprintf("Ingesting %s", event.Filename))
		_ = bar.Set(event.Current) //nolint:errcheck // Progress display is best effort
	}

	result, err := bulkService.IngestFolder(ctx, driving.BulkRequest{
		FolderPath: folder,
		Type:       domain.DocumentType(bulkType),
	}, onProgress)
	if err != nil {
		return fmt.Errorf("bulk ingest failed: %w", err)
	}

	if result.Total == 0 {
		cmd.Println("No matching files found.")
		return nil
	}

	cmd.Printf("\nDone: %d successful, %d skipped, %d failed.\n", result.Successful, result.Skipped, result.Failed)
	if len(result.Errors) > 0 {
		cmd.Println("\nFailures:")
		for _, msg := range result.Errors {
			cmd.Printf("  %s\n", msg)
		}
	}

	return nil
}
