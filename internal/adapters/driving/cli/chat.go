package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var chatDocument string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Opens an interactive session. With --document the conversation is
grounded in that document: every message runs retrieval and answers cite
source pages. Without it, messages go straight to the model.

Sessions live in memory only; the transcript is gone when the session
ends. Type 'exit' or press Ctrl-D to quit.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatDocument, "document", "d", "", "document ID to ground the conversation in")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	in, err := getInfra()
	if err != nil {
		return err
	}

	grounded := chatDocument != ""
	querier, cleanup, err := newQuerier(in, grounded)
	if err != nil {
		return friendlyError(err)
	}
	defer cleanup()

	if grounded {
		if _, err := in.documents.Get(cmd.Context(), chatDocument); err != nil {
			return err
		}
	}

	session, err := in.sessions.Create("", chatDocument)
	if err != nil {
		return fmt.Errorf("opening session: %w", err)
	}
	defer in.sessions.Delete(session.ID)

	if grounded {
		cmd.Printf("Chatting with %s. Type 'exit' to quit.\n\n", chatDocument)
	} else {
		cmd.Println("Chat session started. Type 'exit' to quit.")
		cmd.Println()
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		cmd.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			cmd.Println()
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		var deltas <-chan string
		var errs <-chan error
		if grounded {
			deltas, errs = querier.Ask(cmd.Context(), chatDocument, session.ID, line)
		} else {
			deltas, errs = querier.Chat(cmd.Context(), session.ID, line)
		}

		for delta := range deltas {
			cmd.Print(delta)
		}
		cmd.Println()

		if err := <-errs; err != nil {
			cmd.Printf("Error: %v\n", friendlyError(err))
		}
		cmd.Println()
	}
}
