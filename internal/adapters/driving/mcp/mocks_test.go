package mcp

import (
	"context"

	"github.com/paperchat/paperchat/internal/core/domain"
)

// mockQuerier is a mock implementation of driving.Querier.
type mockQuerier struct {
	reply string
	err   error
}

func (m *mockQuerier) stream() (<-chan string, <-chan error) {
	deltas := make(chan string)
	errs := make(chan error, 1)
	go func() {
		defer close(deltas)
		defer close(errs)
		if m.err != nil {
			errs <- m.err
			return
		}
		for _, r := range m.reply {
			deltas <- string(r)
		}
	}()
	return deltas, errs
}

func (m *mockQuerier) Ask(_ context.Context, _, _, _ string) (<-chan string, <-chan error) {
	return m.stream()
}

func (m *mockQuerier) Summarize(_ context.Context, _, _ string) (<-chan string, <-chan error) {
	return m.stream()
}

func (m *mockQuerier) Review(_ context.Context, _, _, _ string) (<-chan string, <-chan error) {
	return m.stream()
}

func (m *mockQuerier) Chat(_ context.Context, _, _ string) (<-chan string, <-chan error) {
	return m.stream()
}

// mockIngestor is a mock implementation of driving.Ingestor.
type mockIngestor struct {
	docID  string
	events []domain.IngestEvent
	err    error
	busy   bool
}

func (m *mockIngestor) Ingest(_ context.Context, _ string) (string, <-chan domain.IngestEvent, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	events := make(chan domain.IngestEvent, len(m.events))
	for _, ev := range m.events {
		events <- ev
	}
	close(events)
	return m.docID, events, nil
}

func (m *mockIngestor) Busy() bool {
	return m.busy
}

// mockDocuments is a mock implementation of driving.DocumentManager.
type mockDocuments struct {
	documents []domain.Document
	document  *domain.Document
	err       error
}

func (m *mockDocuments) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocuments) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocuments) Delete(_ context.Context, _ string) error {
	return m.err
}
