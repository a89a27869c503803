package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var documentsJSON bool

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage ingested documents",
	Long:  `List, inspect and delete documents in the local catalog.`,
	RunE:  runDocumentsList,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	RunE:  runDocumentsList,
}

var documentsShowCmd = &cobra.Command{
	Use:   "show [document]",
	Short: "Show document details",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsShow,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [document]",
	Short: "Delete a document, its vectors and its sessions",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

func init() {
	documentsCmd.PersistentFlags().BoolVar(&documentsJSON, "json", false, "output as JSON")
	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsShowCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	in, err := getInfra()
	if err != nil {
		return err
	}

	docs, err := in.documents.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if documentsJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal documents: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested yet. Run 'paperchat ingest <file.pdf>' first.")
		return nil
	}

	cmd.Println("Documents:")
	cmd.Println()
	for i := range docs {
		cmd.Printf("  %s (%s)\n", docs[i].ID, docs[i].State)
		cmd.Printf("      Pages: %d  Chunks: %d\n", docs[i].Pages, docs[i].ChunkCount)
	}
	return nil
}

func runDocumentsShow(cmd *cobra.Command, args []string) error {
	in, err := getInfra()
	if err != nil {
		return err
	}

	doc, err := in.documents.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if documentsJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("ID:      %s\n", doc.ID)
	cmd.Printf("Title:   %s\n", doc.Title)
	cmd.Printf("Path:    %s\n", doc.Path)
	cmd.Printf("Pages:   %d\n", doc.Pages)
	cmd.Printf("Chunks:  %d\n", doc.ChunkCount)
	cmd.Printf("Vectors: %d x %d (float16)\n", doc.ChunkCount, doc.Dim)
	cmd.Printf("State:   %s\n", doc.State)
	return nil
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	in, err := getInfra()
	if err != nil {
		return err
	}

	if err := in.documents.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
