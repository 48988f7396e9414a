package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/api"
	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/docstore"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage uploaded document references",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List locally known documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := docstore.Open()
		if err != nil {
			return err
		}
		defer store.Close()

		refs, err := store.List()
		if err != nil {
			return err
		}
		if len(refs) == 0 {
			fmt.Println("No documents. Run 'kmrl-vault push <file>' to upload one.")
			return nil
		}

		current, _ := store.Current()
		for _, ref := range refs {
			marker := " "
			if current != nil && current.DocumentID == ref.DocumentID {
				marker = "*"
			}
			fmt.Printf("%s %s  %s  (%d chunks, %s)\n",
				marker, ref.DocumentID, ref.DocumentName, ref.ChunksCount, ref.ProcessingMode)
		}
		return nil
	},
}

var docsUseCmd = &cobra.Command{
	Use:   "use <document-id>",
	Short: "Select the current document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := docstore.Open()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.SetCurrent(args[0]); err != nil {
			return err
		}
		fmt.Printf("Current document: %s\n", args[0])
		return nil
	},
}

var docsInfoCmd = &cobra.Command{
	Use:   "info [document-id]",
	Short: "Show server-side state for a document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var docID string
		if len(args) == 1 {
			docID = args[0]
		} else {
			docID, err = currentDocumentID()
			if err != nil {
				return err
			}
		}

		client := api.NewClient(cfg, newLogger(cfg))
		info, err := client.DocumentInfo(cmd.Context(), docID)
		if err != nil {
			return err
		}

		fmt.Printf("Document: %s\n", info.DocumentID)
		fmt.Printf("Status:   %s\n", info.Status)
		fmt.Printf("Chunks:   %d\n", info.ChunkCount)
		if info.CreatedAt != "" {
			fmt.Printf("Created:  %s\n", info.CreatedAt)
		}
		if !info.Exists {
			fmt.Println("Note: the server no longer holds this document; re-upload before analyzing.")
		}
		return nil
	},
}

var docsRmCmd = &cobra.Command{
	Use:   "rm <document-id>",
	Short: "Delete a document from the server and the local ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		docID := args[0]

		client := api.NewClient(cfg, newLogger(cfg))
		if _, err := client.DeleteDocument(cmd.Context(), docID); err != nil {
			fmt.Printf("Warning: server-side delete failed: %v\n", err)
		}

		store, err := docstore.Open()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(docID); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", docID)
		return nil
	},
}

func init() {
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsUseCmd)
	docsCmd.AddCommand(docsInfoCmd)
	docsCmd.AddCommand(docsRmCmd)
}
