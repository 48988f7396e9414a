package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/api"
	"github.com/Dainampally-Akshay18/KMRL-Vault/internal/assist"
)

var (
	chatDocumentID string
	chatOneShot    string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the document assistant",
	Long: `Start an interactive conversation about the current document.

Questions mentioning risk, summary, or negotiation are answered by the
dedicated analysis endpoints; everything else goes to the chatbot with
the running conversation history attached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		docID := chatDocumentID
		if docID == "" {
			docID, err = currentDocumentID()
			if err != nil {
				return err
			}
		}

		client := api.NewClient(cfg, newLogger(cfg))
		dispatcher := assist.NewDispatcher(client, docID, cfg.Jurisdiction)

		if chatOneShot != "" {
			answer, err := dispatcher.Ask(cmd.Context(), chatOneShot)
			if err != nil {
				return err
			}
			fmt.Println(answer)
			return nil
		}

		questions, fallback := assist.SuggestedQuestions(cmd.Context(), client, docID)
		if fallback {
			fmt.Println("(suggestions unavailable, showing defaults)")
		}
		fmt.Println("Try asking:")
		for _, q := range questions {
			fmt.Printf("  - %s\n", q)
		}
		fmt.Println("\nType a question, or 'exit' to leave.")

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			question := strings.TrimSpace(scanner.Text())
			if question == "" {
				continue
			}
			if question == "exit" || question == "quit" {
				break
			}

			answer, err := dispatcher.Ask(cmd.Context(), question)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("\n%s\n\n", answer)
		}
		return scanner.Err()
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatDocumentID, "document", "d", "", "document id (defaults to the current document)")
	chatCmd.Flags().StringVarP(&chatOneShot, "message", "m", "", "ask a single question and exit")
}
