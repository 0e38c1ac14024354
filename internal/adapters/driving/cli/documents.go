package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

var (
	documentsType string
	documentsJSON bool
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage ingested documents",
	Long:  `List or delete documents in the logical stores.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in a store",
	RunE:  runDocumentsList,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [document-name]",
	Short: "Delete a document",
	Long: `Deletes a document and all of its indexed chunks. The document name
is the full remote identifier shown by 'documents list'.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentsDelete,
}

var documentsStoresCmd = &cobra.Command{
	Use:   "stores",
	Short: "Show the logical stores",
	RunE:  runDocumentsStores,
}

func init() {
	documentsCmd.PersistentFlags().StringVarP(&documentsType, "type", "t", string(domain.DocumentTypeAbstracts), "document type (abstracts or manuscripts)")
	documentsListCmd.Flags().BoolVar(&documentsJSON, "json", false, "output as JSON")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	documentsCmd.AddCommand(documentsStoresCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docType := domain.DocumentType(documentsType)
	ctx := context.Background()

	docs, err := documentService.List(ctx, docType)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if documentsJSON {
		return outputJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents found for type: %s\n", docType)
		return nil
	}

	cmd.Printf("Documents (%s):\n\n", docType)
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].Name)
		cmd.Printf("    Title: %s\n", docs[i].DisplayName)
		for _, entry := range docs[i].Metadata {
			cmd.Printf("    %s: %s\n", entry.Key, entry.Value)
		}
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	name := args[0]
	ctx := context.Background()

	if err := documentService.Delete(ctx, domain.DocumentType(documentsType), name); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted %s.\n", name)
	return nil
}

func runDocumentsStores(cmd *cobra.Command, _ []string) error {
	if storeService == nil {
		return errors.New("store service not configured")
	}

	ctx := context.Background()

	infos, err := storeService.Describe(ctx)
	if err != nil {
		return fmt.Errorf("failed to describe stores: %w", err)
	}

	cmd.Println("Stores:")
	cmd.Println()
	for _, info := range infos {
		cmd.Printf("  %s (%s)\n", info.Store.DisplayName, info.Type)
		cmd.Printf("    Name:      %s\n", info.Store.Name)
		cmd.Printf("    Documents: %d\n", info.Documents)
		cmd.Println()
	}

	return nil
}
