package driven

import (
	"context"

	"github.com/paperchat/paperchat/internal/core/domain"
)

// DocumentStore persists document metadata and chunk text. The chunk rows
// are what map a vector store row index back to text and page number, so
// they must outlive the process that ingested them.
type DocumentStore interface {
	// Save inserts or updates a document record.
	Save(ctx context.Context, doc domain.Document) error

	// Get retrieves a document by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all documents ordered by creation time.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document and its chunks. Absence is not an error.
	Delete(ctx context.Context, id string) error

	// SaveChunks replaces the chunk rows for a document.
	SaveChunks(ctx context.Context, docID string, chunks []domain.Chunk) error

	// Chunks returns the chunk rows for a document ordered by index.
	Chunks(ctx context.Context, docID string) ([]domain.Chunk, error)

	// Close releases resources.
	Close() error
}
