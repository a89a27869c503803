package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [document]",
	Short: "Summarize an ingested document",
	Long: `Streams a summary of the document's full extracted text. Retrieval is
skipped; the whole document is given to the model.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	in, err := getInfra()
	if err != nil {
		return err
	}

	querier, cleanup, err := newQuerier(in, false)
	if err != nil {
		return friendlyError(err)
	}
	defer cleanup()

	deltas, errs := querier.Summarize(cmd.Context(), args[0], "")
	for delta := range deltas {
		cmd.Print(delta)
	}
	cmd.Println()

	if err := <-errs; err != nil {
		return fmt.Errorf("summarize failed: %w", friendlyError(err))
	}
	return nil
}
