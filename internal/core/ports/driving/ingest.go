package driving

import (
	"context"

	"github.com/paperchat/paperchat/internal/core/domain"
)

// Ingestor converts a source PDF into a populated vector store.
type Ingestor interface {
	// Ingest validates the file (opens, not encrypted, has pages) and
	// returns immediately with the document ID and an event channel.
	// Extraction, chunking and embedding continue in the background;
	// the channel reports throttled progress and closes after a terminal
	// Ready or Failed event.
	//
	// At most one ingestion runs per process. A second call while one is
	// in flight returns domain.ErrBusy without queueing.
	//
	// Cancelling ctx stops further embedding calls promptly and removes
	// the partial store.
	Ingest(ctx context.Context, path string) (string, <-chan domain.IngestEvent, error)

	// Busy reports whether an ingestion is currently in flight.
	Busy() bool
}
