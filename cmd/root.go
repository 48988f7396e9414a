package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/config"
	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/logging"
)

var (
	Version = "dev"

	verbose        bool
	serverOverride string
)

var rootCmd = &cobra.Command{
	Use:     "kmrl-vault",
	Short:   "AI risk analysis, summaries, and negotiation help for legal documents",
	Version: Version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every API call to stderr")
	rootCmd.PersistentFlags().StringVar(&serverOverride, "server", "", "override the backend server URL")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(watchCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if serverOverride != "" {
		cfg.ServerURL = serverOverride
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *zap.Logger {
	return logging.New(verbose, cfg.LogFile)
}
