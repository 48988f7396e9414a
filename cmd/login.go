package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/session"
)

var loginForce bool

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Create a backend session and store its access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cfg.HasSession() && !loginForce {
			fmt.Printf("Already have a session (%s). Use --force to replace it.\n", cfg.SessionID)
			return nil
		}

		resp, err := session.Bootstrap(cmd.Context(), cfg, newLogger(cfg))
		if err != nil {
			return fmt.Errorf("creating session: %w", err)
		}

		fmt.Printf("Session created: %s\n", resp.SessionID)
		fmt.Printf("Server: %s\n", cfg.ServerURL)
		fmt.Printf("Token expires in %d seconds\n", resp.ExpiresIn)
		return nil
	},
}

func init() {
	loginCmd.Flags().BoolVar(&loginForce, "force", false, "replace an existing session")
}
