// Package cli implements the paperchat command line interface.
package cli

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/paperchat/paperchat/internal/adapters/driven/ai"
	"github.com/paperchat/paperchat/internal/adapters/driven/config/file"
	"github.com/paperchat/paperchat/internal/adapters/driven/extractor/pdf"
	"github.com/paperchat/paperchat/internal/adapters/driven/storage/sqlite"
	"github.com/paperchat/paperchat/internal/adapters/driven/vectorcache"
	"github.com/paperchat/paperchat/internal/chunker"
	"github.com/paperchat/paperchat/internal/core/domain"
	"github.com/paperchat/paperchat/internal/core/ports/driven"
	"github.com/paperchat/paperchat/internal/core/services"
	"github.com/paperchat/paperchat/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "paperchat",
	Short: "Chat with your PDFs locally",
	Long: `Paperchat ingests PDF documents into a local vector store and answers
questions grounded in their content, with page citations.

Embeddings and completions run against a local Ollama server by default;
an OpenAI-compatible endpoint can be configured instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// infra holds the local dependencies shared by every command. AI services
// are not part of it; they touch the network and are created per command.
type infra struct {
	config    *file.ConfigStore
	docStore  driven.DocumentStore
	vectors   *vectorcache.Store
	extractor driven.Extractor
	catalog   *services.Catalog
	sessions  *services.SessionService
	documents *services.DocumentService
}

var (
	infraOnce sync.Once
	infraVal  *infra
	infraErr  error
)

// getInfra wires the local stores on first use.
func getInfra() (*infra, error) {
	infraOnce.Do(func() {
		infraVal, infraErr = buildInfra()
	})
	return infraVal, infraErr
}

func buildInfra() (*infra, error) {
	config, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	settings := config.Settings()

	docStore, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening document catalog: %w", err)
	}

	vectors, err := vectorcache.NewStore(settings.CacheDir)
	if err != nil {
		docStore.Close()
		return nil, fmt.Errorf("opening vector cache: %w", err)
	}

	catalog := services.NewCatalog()
	sessions := services.NewSessionService(catalog)
	documents := services.NewDocumentService(docStore, vectors, sessions)

	return &infra{
		config:    config,
		docStore:  docStore,
		vectors:   vectors,
		extractor: pdf.New(),
		catalog:   catalog,
		sessions:  sessions,
		documents: documents,
	}, nil
}

// newChunker builds the chunker from the configured window and overlap.
func newChunker(settings domain.Settings) *chunker.Chunker {
	return chunker.New(
		chunker.WithWindow(settings.ChunkWindow),
		chunker.WithOverlap(settings.ChunkOverlap),
	)
}

// newIngestor builds the ingestion pipeline, validating the embedding
// backend first so failures surface before any file work.
func newIngestor(in *infra) (*services.IngestService, driven.EmbeddingService, error) {
	settings := in.config.Settings()

	embedder, err := ai.CreateAndValidateEmbeddingService(settings)
	if err != nil {
		return nil, nil, err
	}

	svc := services.NewIngestService(
		in.catalog, in.extractor, embedder, in.docStore, in.vectors, newChunker(settings),
	)
	return svc, embedder, nil
}

// newQuerier builds the query pipeline. When needEmbedding is false (plain
// chat) the embedding backend is neither created nor pinged.
func newQuerier(in *infra, needEmbedding bool) (*services.QueryService, func(), error) {
	settings := in.config.Settings()

	llm, err := ai.CreateAndValidateLLMService(settings)
	if err != nil {
		return nil, nil, err
	}

	var embedder driven.EmbeddingService
	if needEmbedding {
		embedder, err = ai.CreateAndValidateEmbeddingService(settings)
		if err != nil {
			llm.Close()
			return nil, nil, err
		}
	}

	svc := services.NewQueryService(
		in.docStore, in.vectors, embedder, llm, in.sessions,
		newChunker(settings), settings.TopK,
	)

	cleanup := func() {
		llm.Close()
		if embedder != nil {
			embedder.Close()
		}
	}
	return svc, cleanup, nil
}

// friendlyError rewrites common failures into actionable messages.
func friendlyError(err error) error {
	switch {
	case errors.Is(err, domain.ErrEmbeddingUnavailable), errors.Is(err, domain.ErrLLMUnavailable):
		return fmt.Errorf("%w\nIs the provider running? Check 'paperchat config show'", err)
	case errors.Is(err, domain.ErrBusy):
		return errors.New("another ingestion is already running; try again when it finishes")
	default:
		return err
	}
}
