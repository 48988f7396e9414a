package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/api"
)

var explainDocumentID string

var explainCmd = &cobra.Command{
	Use:   "explain <clause text>",
	Short: "Explain a clause of the current document in plain language",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		docID := explainDocumentID
		if docID == "" {
			docID, err = currentDocumentID()
			if err != nil {
				return err
			}
		}

		client := api.NewClient(cfg, newLogger(cfg))
		resp, err := client.ExplainClause(cmd.Context(), docID, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("clause explanation failed: %w", err)
		}

		fmt.Println(resp.Response)
		return nil
	},
}

func init() {
	explainCmd.Flags().StringVarP(&explainDocumentID, "document", "d", "", "document id (defaults to the current document)")
}
