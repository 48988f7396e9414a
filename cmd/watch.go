package cmd

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/config"
	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/docstore"
	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/queue"
	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/session"
	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/watcher"
)

var (
	watchDirs       []string
	watchQuiescence time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch contract directories and auto-upload new documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		dirs := watchDirs
		if len(dirs) == 0 {
			dirs = cfg.WatchDirs
		}
		if len(dirs) == 0 {
			return fmt.Errorf("no directories to watch: pass --dir or set watch_dirs in %s", config.Path())
		}

		if err := session.EnsureFresh(cmd.Context(), cfg, log); err != nil {
			fmt.Printf("Warning: session bootstrap failed, relying on 401 recovery: %v\n", err)
		}

		ledger, err := config.LoadUploadedLedger()
		if err != nil {
			return fmt.Errorf("loading upload ledger: %w", err)
		}

		store, err := docstore.Open()
		if err != nil {
			return fmt.Errorf("opening document store: %w", err)
		}
		defer store.Close()

		retryQueue, err := queue.Open()
		if err != nil {
			return fmt.Errorf("opening retry queue: %w", err)
		}
		defer retryQueue.Close()

		fmt.Println("Watching for documents:")
		for _, dir := range dirs {
			fmt.Printf("  %s\n", dir)
		}

		w, err := watcher.New(dirs, watchQuiescence, func(filePath string) {
			handleFileReady(cmd, cfg, log, ledger, store, retryQueue, filePath)
		})
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		defer w.Close()

		done := make(chan struct{})
		defer close(done)
		go retryQueue.ProcessLoop(done, func(item queue.RetryItem) error {
			_, err := uploadDocument(cmd.Context(), cfg, log, store, item.FilePath)
			return err
		})

		fmt.Println("\nWatching... Press Ctrl+C to stop.")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		fmt.Println("\nStopping watcher...")
		return nil
	},
}

func init() {
	watchCmd.Flags().StringArrayVar(&watchDirs, "dir", nil, "directory to watch (repeatable, overrides config)")
	watchCmd.Flags().DurationVar(&watchQuiescence, "quiescence", watcher.DefaultQuiescenceDuration, "how long a file must be idle before upload")
}

func handleFileReady(cmd *cobra.Command, cfg *config.Config, log *zap.Logger, ledger *config.UploadedLedger, store *docstore.Store, retryQueue *queue.RetryQueue, filePath string) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Printf("Error reading %s: %v\n", filePath, err)
		return
	}

	hash := sha256.Sum256(data)
	hashStr := hex.EncodeToString(hash[:])

	if ledger.HasHash(hashStr) {
		return // already uploaded
	}

	fmt.Printf("Document ready: %s\n", filePath)

	ref, err := uploadDocument(cmd.Context(), cfg, log, store, filePath)
	if err != nil {
		fmt.Printf("Upload failed, queuing for retry: %v\n", err)
		retryQueue.Add(filePath)
		return
	}

	fmt.Printf("Uploaded: %s -> document %s (%d chunks)\n", filePath, ref.DocumentID, ref.ChunksCount)

	ledger.AddHash(hashStr)
	if err := ledger.Save(); err != nil {
		fmt.Printf("Warning: could not save upload ledger: %v\n", err)
	}
}
