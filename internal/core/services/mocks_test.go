package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/paperchat/paperchat/internal/core/domain"
	"github.com/paperchat/paperchat/internal/core/ports/driven"
)

// mockExtractor is a mock implementation of driven.Extractor.
type mockExtractor struct {
	pages       []domain.Page
	validateErr error
	extractErr  error
}

func (m *mockExtractor) Validate(_ context.Context, _ string) error {
	return m.validateErr
}

func (m *mockExtractor) Extract(_ context.Context, _ string) ([]domain.Page, error) {
	return m.pages, m.extractErr
}

// mockEmbedder is a mock implementation of driven.EmbeddingService. It
// returns a fixed-width vector derived from the input length, or fails
// after failAfter successful calls when failAfter >= 0.
type mockEmbedder struct {
	mu        sync.Mutex
	dim       int
	calls     int
	failAfter int
	err       error
}

func newMockEmbedder(dim int) *mockEmbedder {
	return &mockEmbedder{dim: dim, failAfter: -1}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failAfter >= 0 && m.calls >= m.failAfter {
		if m.err != nil {
			return nil, m.err
		}
		return nil, fmt.Errorf("%w: mock failure", domain.ErrEmbeddingFailed)
	}
	m.calls++

	vec := make([]float32, m.dim)
	for i := range vec {
		vec[i] = float32(len(text)%7) + float32(i)
	}
	return vec, nil
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := m.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (m *mockEmbedder) ModelName() string            { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockLLM is a mock implementation of driven.LLMService that streams a
// canned reply in fixed-size pieces.
type mockLLM struct {
	reply    string
	err      error
	mu       sync.Mutex
	received [][]driven.ChatMessage
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.record(messages)
	return m.reply, m.err
}

func (m *mockLLM) ChatStream(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions, fn func(delta string) error) error {
	m.record(messages)
	if m.err != nil {
		return m.err
	}
	for _, r := range m.reply {
		if err := fn(string(r)); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockLLM) record(messages []driven.ChatMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received = append(m.received, messages)
}

func (m *mockLLM) lastMessages() []driven.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.received) == 0 {
		return nil
	}
	return m.received[len(m.received)-1]
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// memDocStore is an in-memory implementation of driven.DocumentStore.
type memDocStore struct {
	mu     sync.Mutex
	docs   map[string]domain.Document
	chunks map[string][]domain.Chunk

	saveErr       error
	saveChunksErr error
}

func newMemDocStore() *memDocStore {
	return &memDocStore{
		docs:   make(map[string]domain.Document),
		chunks: make(map[string][]domain.Chunk),
	}
}

func (s *memDocStore) Save(_ context.Context, doc domain.Document) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	return nil
}

func (s *memDocStore) Get(_ context.Context, id string) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("%w: document %s", domain.ErrNotFound, id)
	}
	return &doc, nil
}

func (s *memDocStore) List(_ context.Context) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (s *memDocStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
	delete(s.chunks, id)
	return nil
}

func (s *memDocStore) SaveChunks(_ context.Context, docID string, chunks []domain.Chunk) error {
	if s.saveChunksErr != nil {
		return s.saveChunksErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks[docID] = append([]domain.Chunk(nil), chunks...)
	return nil
}

func (s *memDocStore) Chunks(_ context.Context, docID string) ([]domain.Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Chunk(nil), s.chunks[docID]...), nil
}

func (s *memDocStore) Close() error { return nil }

func (s *memDocStore) state(id string) domain.DocumentState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[id].State
}

func (s *memDocStore) has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[id]
	return ok
}

// memVectorStore is an in-memory implementation of driven.VectorStore.
type memVectorStore struct {
	mu        sync.Mutex
	matrices  map[string][][]float32
	createErr error
	openErr   error
}

func newMemVectorStore() *memVectorStore {
	return &memVectorStore{matrices: make(map[string][][]float32)}
}

func (s *memVectorStore) Create(docID string, rows, dim int) (driven.WriteHandle, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	matrix := make([][]float32, rows)
	for i := range matrix {
		matrix[i] = make([]float32, dim)
	}
	s.matrices[docID] = matrix
	return &memWriteHandle{store: s, docID: docID, dim: dim}, nil
}

func (s *memVectorStore) Open(docID string, rows, dim int) (driven.ReadHandle, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	matrix, ok := s.matrices[docID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrStoreNotFound, docID)
	}
	if len(matrix) != rows || (rows > 0 && len(matrix[0]) != dim) {
		return nil, fmt.Errorf("%w: %s", domain.ErrStoreSizeMismatch, docID)
	}
	return &memReadHandle{matrix: matrix, dim: dim}, nil
}

func (s *memVectorStore) Delete(docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matrices, docID)
	return nil
}

func (s *memVectorStore) has(docID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.matrices[docID]
	return ok
}

type memWriteHandle struct {
	store *memVectorStore
	docID string
	dim   int
}

func (h *memWriteHandle) WriteRow(row int, vec []float32) error {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	matrix := h.store.matrices[h.docID]
	if row < 0 || row >= len(matrix) {
		return fmt.Errorf("%w: row %d", domain.ErrInvalidInput, row)
	}
	if len(vec) != h.dim {
		return fmt.Errorf("%w: width %d", domain.ErrInvalidInput, len(vec))
	}
	copy(matrix[row], vec)
	return nil
}

func (h *memWriteHandle) Flush() error { return nil }
func (h *memWriteHandle) Close() error { return nil }

type memReadHandle struct {
	matrix [][]float32
	dim    int
}

func (h *memReadHandle) ReadAll() ([][]float32, error) {
	out := make([][]float32, len(h.matrix))
	for i, row := range h.matrix {
		out[i] = append([]float32(nil), row...)
	}
	return out, nil
}

func (h *memReadHandle) Rows() int    { return len(h.matrix) }
func (h *memReadHandle) Dim() int     { return h.dim }
func (h *memReadHandle) Close() error { return nil }
