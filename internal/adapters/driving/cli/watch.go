package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

var watchType string

var watchCmd = &cobra.Command{
	Use:   "watch [folder]",
	Short: "Ingest documents as they appear in a folder",
	Long: `Watches a folder and ingests every new matching file once writes to
it have settled. Runs until interrupted; a file that fails to ingest is
logged and watching continues.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchType, "type", "t", string(domain.DocumentTypeAbstracts), "document type (abstracts or manuscripts)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchService == nil {
		return errors.New("watch service not configured")
	}

	folder := args[0]
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl-C to stop)...\n", folder)

	err := watchService.Watch(ctx, folder, domain.DocumentType(watchType))
	if errors.Is(err, context.Canceled) {
		cmd.Println("Stopped.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
