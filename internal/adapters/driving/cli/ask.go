package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [document] [question]",
	Short: "Ask a question about an ingested document",
	Long: `Embeds the question, retrieves the most similar chunks from the
document's vector store and streams an answer grounded in those excerpts.
Answers cite source pages as [Page N].`,
	Args: cobra.ExactArgs(2),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	in, err := getInfra()
	if err != nil {
		return err
	}

	querier, cleanup, err := newQuerier(in, true)
	if err != nil {
		return friendlyError(err)
	}
	defer cleanup()

	deltas, errs := querier.Ask(cmd.Context(), args[0], "", args[1])
	for delta := range deltas {
		cmd.Print(delta)
	}
	cmd.Println()

	if err := <-errs; err != nil {
		return fmt.Errorf("ask failed: %w", friendlyError(err))
	}
	return nil
}
