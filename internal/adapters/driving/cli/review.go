package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reviewRole string

var reviewCmd = &cobra.Command{
	Use:   "review [document]",
	Short: "Critically review an ingested document",
	Long: `Streams a critical review of the document's full text. With --role the
review is written from a specific reviewer's perspective:

  physicist   physical principles, models, measurements
  chemist     compositions, reactions, material properties
  synthesis   novelty, reproducibility, scalability of techniques
  editor      clarity, grammar, style, structure

Without a role (or with an unknown one) a general peer review is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewRole, "role", "r", "", "reviewer role to adopt")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	in, err := getInfra()
	if err != nil {
		return err
	}

	querier, cleanup, err := newQuerier(in, false)
	if err != nil {
		return friendlyError(err)
	}
	defer cleanup()

	deltas, errs := querier.Review(cmd.Context(), args[0], "", reviewRole)
	for delta := range deltas {
		cmd.Print(delta)
	}
	cmd.Println()

	if err := <-errs; err != nil {
		return fmt.Errorf("review failed: %w", friendlyError(err))
	}
	return nil
}
