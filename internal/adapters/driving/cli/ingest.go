package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paperchat/paperchat/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a PDF document",
	Long: `Extracts text from a PDF, splits it into overlapping chunks, embeds
each chunk and writes the vectors to the local store. The document can
then be queried with 'ask', 'chat' or 'summarize'.

Only one ingestion runs at a time.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	in, err := getInfra()
	if err != nil {
		return err
	}

	ingestor, embedder, err := newIngestor(in)
	if err != nil {
		return friendlyError(err)
	}
	defer embedder.Close()

	docID, events, err := ingestor.Ingest(cmd.Context(), args[0])
	if err != nil {
		return friendlyError(err)
	}

	cmd.Printf("Ingesting %s\n", docID)

	var failure error
	progress := false
	for ev := range events {
		switch ev.Kind {
		case domain.IngestProgress:
			cmd.Printf("\rEmbedding %d/%d chunks", ev.Current, ev.Total)
			progress = true
		case domain.IngestReady:
			if progress {
				cmd.Println()
			}
			cmd.Printf("Done. Ask questions with: paperchat ask %s \"...\"\n", docID)
		case domain.IngestFailed:
			if progress {
				cmd.Println()
			}
			failure = ev.Err
		}
	}

	if failure != nil {
		return fmt.Errorf("ingestion failed: %w", failure)
	}
	return nil
}
