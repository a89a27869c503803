package services

import (
	"context"
	"fmt"

	"github.com/paperchat/paperchat/internal/core/domain"
	"github.com/paperchat/paperchat/internal/core/ports/driven"
	"github.com/paperchat/paperchat/internal/core/ports/driving"
	"github.com/paperchat/paperchat/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentManager = (*DocumentService)(nil)

// DocumentService exposes the catalog of ingested documents and keeps it
// consistent with the vector store directory.
type DocumentService struct {
	docStore driven.DocumentStore
	vectors  driven.VectorStore
	sessions driving.SessionManager
}

// NewDocumentService creates the document surface.
func NewDocumentService(docStore driven.DocumentStore, vectors driven.VectorStore, sessions driving.SessionManager) *DocumentService {
	return &DocumentService{
		docStore: docStore,
		vectors:  vectors,
		sessions: sessions,
	}
}

// Get returns a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*domain.Document, error) {
	return s.docStore.Get(ctx, id)
}

// List returns all documents.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	return s.docStore.List(ctx)
}

// Delete removes a document: the vector store file first, then the
// catalog rows, then any sessions bound to it. Each step runs even when
// an earlier one fails so partial state does not accumulate.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	if _, err := s.docStore.Get(ctx, id); err != nil {
		return err
	}

	var firstErr error
	if err := s.vectors.Delete(id); err != nil {
		firstErr = fmt.Errorf("removing vector store: %w", err)
	}
	if err := s.docStore.Delete(ctx, id); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("removing catalog rows: %w", err)
	}
	if s.sessions != nil {
		s.sessions.DeleteByDocument(id)
	}

	if firstErr == nil {
		logger.Info("Deleted document %s", id)
	}
	return firstErr
}

// Invalidate marks a document failed after its vector store file vanished
// out from under it. The cache watcher calls this when a *.f16 file is
// removed outside the application.
func (s *DocumentService) Invalidate(ctx context.Context, id string) {
	doc, err := s.docStore.Get(ctx, id)
	if err != nil {
		return
	}
	if doc.State != domain.StateReady {
		return
	}

	doc.State = domain.StateFailed
	if err := s.docStore.Save(ctx, *doc); err != nil {
		logger.Warn("Marking %s failed after store removal: %v", id, err)
		return
	}
	logger.Warn("Vector store for %s removed externally; document marked failed", id)
}
