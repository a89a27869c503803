package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/paperchat/paperchat/internal/chunker"
	"github.com/paperchat/paperchat/internal/core/domain"
	"github.com/paperchat/paperchat/internal/core/ports/driven"
	"github.com/paperchat/paperchat/internal/core/ports/driving"
	"github.com/paperchat/paperchat/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// defaultProgressInterval caps progress events at one per interval so a
// fast embedder cannot flood the consumer.
const defaultProgressInterval = 100 * time.Millisecond

// eventBuffer sizes the event channel. Progress sends keep the last slot
// free, so the single terminal event always has room and never blocks on
// a consumer that stopped reading.
const eventBuffer = 16

// IngestService converts a PDF into chunk rows and a populated vector
// store. One ingestion runs per process at a time; the catalog owns the
// slot.
type IngestService struct {
	catalog   *Catalog
	extractor driven.Extractor
	embedder  driven.EmbeddingService
	docStore  driven.DocumentStore
	vectors   driven.VectorStore
	chunker   *chunker.Chunker

	progressInterval time.Duration
}

// NewIngestService creates the ingestion pipeline.
func NewIngestService(
	catalog *Catalog,
	extractor driven.Extractor,
	embedder driven.EmbeddingService,
	docStore driven.DocumentStore,
	vectors driven.VectorStore,
	ch *chunker.Chunker,
) *IngestService {
	return &IngestService{
		catalog:          catalog,
		extractor:        extractor,
		embedder:         embedder,
		docStore:         docStore,
		vectors:          vectors,
		chunker:          ch,
		progressInterval: defaultProgressInterval,
	}
}

// SetProgressInterval overrides the progress throttle. Useful for tests.
func (s *IngestService) SetProgressInterval(d time.Duration) {
	s.progressInterval = d
}

// Busy reports whether an ingestion is currently in flight.
func (s *IngestService) Busy() bool {
	return s.catalog.IngestBusy()
}

// Ingest validates the file and starts the background pipeline. It
// returns the document ID and the event channel immediately after
// validation; the channel closes after a terminal Ready or Failed event.
func (s *IngestService) Ingest(ctx context.Context, path string) (string, <-chan domain.IngestEvent, error) {
	if s.embedder == nil {
		return "", nil, domain.ErrEmbeddingUnavailable
	}

	if !s.catalog.TryAcquireIngest() {
		return "", nil, domain.ErrBusy
	}

	docID := domain.DocumentID(path)

	// A document that already ingested cleanly is not re-ingested
	// implicitly; it must be deleted first. Failed leftovers may retry.
	if existing, err := s.docStore.Get(ctx, docID); err == nil && existing.State == domain.StateReady {
		s.catalog.ReleaseIngest()
		return "", nil, fmt.Errorf("%w: document %s", domain.ErrAlreadyExists, docID)
	}

	if err := s.extractor.Validate(ctx, path); err != nil {
		s.catalog.ReleaseIngest()
		return "", nil, err
	}

	now := time.Now()
	doc := domain.Document{
		ID:        docID,
		Title:     docID,
		Path:      path,
		State:     domain.StateQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.docStore.Save(ctx, doc); err != nil {
		s.catalog.ReleaseIngest()
		return "", nil, fmt.Errorf("recording document: %w", err)
	}

	events := make(chan domain.IngestEvent, eventBuffer)
	go s.run(ctx, doc, events)

	return docID, events, nil
}

// run executes extraction, chunking and embedding, reporting transitions
// on the event channel. It owns the ingestion slot until it returns.
func (s *IngestService) run(ctx context.Context, doc domain.Document, events chan<- domain.IngestEvent) {
	defer s.catalog.ReleaseIngest()
	defer close(events)

	logger.Section("Ingest " + doc.ID)

	fail := func(err error) {
		logger.Warn("Ingestion of %s failed: %v", doc.ID, err)
		s.cleanup(doc.ID)
		events <- domain.IngestEvent{
			Kind:       domain.IngestFailed,
			DocumentID: doc.ID,
			State:      domain.StateFailed,
			Err:        err,
		}
	}

	// Extract.
	s.setState(&doc, domain.StateExtracting)
	pages, err := s.extractor.Extract(ctx, doc.Path)
	if err != nil {
		fail(err)
		return
	}
	doc.Pages = len(pages)
	logger.Debug("Extracted %d pages from %s", len(pages), doc.Path)

	// Chunk.
	s.setState(&doc, domain.StateChunking)
	chunks := s.chunker.Chunk(doc.ID, pages)
	if len(chunks) == 0 {
		fail(fmt.Errorf("%w: %s", domain.ErrNoExtractableText, doc.Path))
		return
	}
	logger.Debug("Chunked into %d windows", len(chunks))

	if err := s.docStore.SaveChunks(ctx, doc.ID, chunks); err != nil {
		fail(fmt.Errorf("saving chunks: %w", err))
		return
	}
	doc.ChunkCount = len(chunks)
	s.setState(&doc, domain.StateEmbedding)

	// Embed. The vector width comes from the first response; the store
	// file is allocated once the width is known.
	limiter := rate.NewLimiter(rate.Every(s.progressInterval), 1)

	var handle driven.WriteHandle
	total := len(chunks)

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			if handle != nil {
				handle.Close()
			}
			fail(err)
			return
		}

		vec, err := s.embedder.Embed(ctx, chunk.Text)
		if err != nil {
			if handle != nil {
				handle.Close()
			}
			fail(fmt.Errorf("chunk %d/%d: %w", i+1, total, err))
			return
		}

		if handle == nil {
			doc.Dim = len(vec)
			handle, err = s.vectors.Create(doc.ID, total, doc.Dim)
			if err != nil {
				fail(fmt.Errorf("allocating vector store: %w", err))
				return
			}
			s.setState(&doc, domain.StateEmbedding)
			logger.Debug("Vector store allocated: %d rows x %d dims", total, doc.Dim)
		}

		if len(vec) != doc.Dim {
			handle.Close()
			fail(fmt.Errorf("%w: chunk %d width %d, expected %d",
				domain.ErrEmbeddingFailed, i, len(vec), doc.Dim))
			return
		}

		if err := handle.WriteRow(chunk.Index, vec); err != nil {
			handle.Close()
			fail(fmt.Errorf("writing row %d: %w", chunk.Index, err))
			return
		}

		if limiter.Allow() {
			s.emitProgress(events, doc.ID, i+1, total)
		}
	}

	if err := handle.Flush(); err != nil {
		handle.Close()
		fail(fmt.Errorf("flushing vector store: %w", err))
		return
	}
	if err := handle.Close(); err != nil {
		fail(fmt.Errorf("closing vector store: %w", err))
		return
	}

	s.emitProgress(events, doc.ID, total, total)
	s.setState(&doc, domain.StateReady)
	logger.Info("Ingested %s: %d chunks, %d dims", doc.ID, total, doc.Dim)

	events <- domain.IngestEvent{
		Kind:       domain.IngestReady,
		DocumentID: doc.ID,
		State:      domain.StateReady,
	}
}

// emitProgress sends a progress event without blocking; progress is
// advisory and a slow consumer must not stall embedding. The last buffer
// slot is reserved for the terminal event. The pipeline goroutine is the
// only sender, so the length check cannot race another send.
func (s *IngestService) emitProgress(events chan<- domain.IngestEvent, docID string, current, total int) {
	if len(events) >= cap(events)-1 {
		return
	}
	events <- domain.IngestEvent{
		Kind:       domain.IngestProgress,
		DocumentID: docID,
		State:      domain.StateEmbedding,
		Current:    current,
		Total:      total,
	}
}

// setState persists a state transition. Persistence failures are logged
// rather than fatal; the vector store integrity check is the authority
// on whether a document is queryable.
func (s *IngestService) setState(doc *domain.Document, state domain.DocumentState) {
	doc.State = state
	doc.UpdatedAt = time.Now()
	if err := s.docStore.Save(context.Background(), *doc); err != nil {
		logger.Warn("Recording state %s for %s: %v", state, doc.ID, err)
	}
}

// cleanup removes all traces of a failed or cancelled ingestion: the
// store file first, then the catalog rows. The strict size check on open
// keeps any crash window between the two safe.
func (s *IngestService) cleanup(docID string) {
	if err := s.vectors.Delete(docID); err != nil {
		logger.Warn("Removing partial store for %s: %v", docID, err)
	}
	if err := s.docStore.Delete(context.Background(), docID); err != nil {
		logger.Warn("Removing catalog rows for %s: %v", docID, err)
	}
}
