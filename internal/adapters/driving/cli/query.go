package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

var (
	queryType string
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question about ingested documents",
	Long: `Answers a question grounded on the documents in a store. The answer
cites the documents it drew on.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryType, "type", "t", string(domain.DocumentTypeAbstracts), "document type (abstracts or manuscripts)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	question := args[0]
	ctx := context.Background()

	answer, err := queryService.Ask(ctx, question, domain.DocumentType(queryType))
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputJSON(cmd, answer)
	}

	cmd.Println(answer.Text)
	if len(answer.Citations) > 0 {
		cmd.Println("\nSources:")
		for i, citation := range answer.Citations {
			cmd.Printf("  [%d] %s\n", i+1, citation)
		}
	}

	return nil
}
