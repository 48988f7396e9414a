package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/api"
	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/assist"
	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/docstore"
)

var (
	analyzeDocumentID   string
	analyzeJurisdiction string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run backend analysis over the current document",
}

var analyzeRiskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Identify and rank contract risks",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, docID, err := analysisClient()
		if err != nil {
			return err
		}

		resp, err := client.RiskAnalysis(cmd.Context(), docID, analyzeJurisdiction)
		if err != nil {
			return fmt.Errorf("risk analysis failed: %w", err)
		}

		fmt.Print(assist.FormatRisks(&resp.Analysis))
		fmt.Printf("\nBased on %d document sections.\n", len(resp.RelevantChunks))
		return nil
	},
}

var analyzeSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize the contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, docID, err := analysisClient()
		if err != nil {
			return err
		}

		resp, err := client.DocumentSummary(cmd.Context(), docID, analyzeJurisdiction)
		if err != nil {
			return fmt.Errorf("summary failed: %w", err)
		}

		fmt.Print(assist.FormatSummary(&resp.Analysis))
		return nil
	},
}

var analyzeRagCmd = &cobra.Command{
	Use:   "rag",
	Short: "Run the legacy RAG analysis (server-side alias of risk)",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, docID, err := analysisClient()
		if err != nil {
			return err
		}

		resp, err := client.RagAnalysis(cmd.Context(), docID, analyzeJurisdiction)
		if err != nil {
			return fmt.Errorf("rag analysis failed: %w", err)
		}

		fmt.Print(assist.FormatRisks(&resp.Analysis))
		fmt.Printf("\nBased on %d document sections.\n", len(resp.RelevantChunks))
		return nil
	},
}

var analyzeNegotiateCmd = &cobra.Command{
	Use:   "negotiate",
	Short: "Generate acceptance and modification-request emails",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, docID, err := analysisClient()
		if err != nil {
			return err
		}

		resp, err := client.NegotiationAssistant(cmd.Context(), docID, analyzeJurisdiction)
		if err != nil {
			return fmt.Errorf("negotiation assistant failed: %w", err)
		}

		fmt.Print(assist.FormatNegotiation(&resp.Analysis))
		return nil
	},
}

func init() {
	analyzeCmd.PersistentFlags().StringVarP(&analyzeDocumentID, "document", "d", "", "document id (defaults to the current document)")
	analyzeCmd.PersistentFlags().StringVarP(&analyzeJurisdiction, "jurisdiction", "j", "", "jurisdiction for analysis (defaults to config, then US)")

	analyzeCmd.AddCommand(analyzeRiskCmd)
	analyzeCmd.AddCommand(analyzeSummaryCmd)
	analyzeCmd.AddCommand(analyzeNegotiateCmd)
	analyzeCmd.AddCommand(analyzeRagCmd)
}

// analysisClient builds a client plus the document id to analyze,
// falling back to the locally stored current document.
func analysisClient() (*api.Client, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	if analyzeJurisdiction == "" {
		analyzeJurisdiction = cfg.Jurisdiction
	}

	docID := analyzeDocumentID
	if docID == "" {
		docID, err = currentDocumentID()
		if err != nil {
			return nil, "", err
		}
	}

	return api.NewClient(cfg, newLogger(cfg)), docID, nil
}

func currentDocumentID() (string, error) {
	store, err := docstore.Open()
	if err != nil {
		return "", fmt.Errorf("opening document store: %w", err)
	}
	defer store.Close()

	ref, err := store.Current()
	if err != nil {
		return "", err
	}
	if ref == nil {
		return "", fmt.Errorf("no document selected: run 'kmrl-vault push <file>' or pass --document")
	}
	return ref.DocumentID, nil
}
