package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/api"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend service health",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		client := api.NewClient(cfg, newLogger(cfg))

		svc, err := client.Health(cmd.Context())
		if err != nil {
			fmt.Printf("Service:  unreachable (%v)\n", err)
		} else {
			fmt.Printf("Service:  %s (version %s)\n", svc.Status, svc.Version)
		}

		bot, err := client.ChatbotHealth(cmd.Context())
		if err != nil {
			fmt.Printf("Chatbot:  unreachable (%v)\n", err)
		} else {
			fmt.Printf("Chatbot:  %s\n", bot.Status)
		}

		analysis, err := client.AnalysisHealth(cmd.Context())
		if err != nil {
			fmt.Printf("Analysis: unreachable (%v)\n", err)
		} else {
			fmt.Printf("Analysis: %s (model %s, backend %s)\n",
				analysis.Status, analysis.Model, analysis.Backend)
		}

		return nil
	},
}
