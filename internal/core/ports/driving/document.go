package driving

import (
	"context"

	"github.com/paperchat/paperchat/internal/core/domain"
)

// DocumentManager exposes the catalog of ingested documents.
type DocumentManager interface {
	// Get returns a document by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Document, error)

	// List returns all documents.
	List(ctx context.Context) ([]domain.Document, error)

	// Delete removes a document: its vector store file, its catalog rows
	// and any sessions bound to it.
	Delete(ctx context.Context, id string) error
}
