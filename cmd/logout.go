package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if !cfg.HasSession() {
			fmt.Println("No stored session.")
			return nil
		}

		// Sessions are anonymous JWTs; the backend has no revocation
		// endpoint, so clearing the local copy is all there is to do.
		cfg.ClearSession()
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Println("Session cleared.")
		return nil
	},
}
