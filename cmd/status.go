package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/config"
	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/docstore"
	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/queue"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session, document, and queue state",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		fmt.Println("=== Session ===")
		fmt.Printf("  Server: %s\n", cfg.ServerURL)
		if cfg.HasSession() {
			fmt.Printf("  Session id: %s\n", cfg.SessionID)
			if t, err := time.Parse(time.RFC3339, cfg.ExpiresAt); err == nil {
				fmt.Printf("  Token expires: %s\n", t.Format("2006-01-02 15:04"))
			}
		} else {
			fmt.Println("  No session. Run 'kmrl-vault login' (or any command; one is created on demand).")
		}

		fmt.Println("\n=== Documents ===")
		store, err := docstore.Open()
		if err != nil {
			fmt.Printf("  Could not open document store: %v\n", err)
		} else {
			refs, _ := store.List()
			current, _ := store.Current()
			fmt.Printf("  Known documents: %d\n", len(refs))
			if current != nil {
				fmt.Printf("  Current: %s (%s)\n", current.DocumentID, current.DocumentName)
			} else {
				fmt.Println("  Current: none")
			}
			store.Close()
		}

		fmt.Println("\n=== Watch ===")
		if len(cfg.WatchDirs) == 0 {
			fmt.Println("  No watch directories configured.")
		}
		for _, dir := range cfg.WatchDirs {
			fmt.Printf("  %s\n", dir)
		}
		ledger, err := config.LoadUploadedLedger()
		if err == nil {
			fmt.Printf("  Files auto-uploaded: %d\n", ledger.Count())
		}

		fmt.Println("\n=== Retry Queue ===")
		q, err := queue.Open()
		if err != nil {
			fmt.Printf("  Could not open retry queue: %v\n", err)
		} else {
			count := q.Count()
			q.Close()
			fmt.Printf("  Pending retries: %d\n", count)
		}

		return nil
	},
}
