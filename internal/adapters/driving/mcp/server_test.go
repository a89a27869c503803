package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperchat/paperchat/internal/core/domain"
)

func TestNewServer_RequiresQuerier(t *testing.T) {
	_, err := NewServer(&Ports{})
	assert.ErrorIs(t, err, ErrMissingQuerier)
}

func TestNewServer_QuerierAlone(t *testing.T) {
	server, err := NewServer(&Ports{Querier: &mockQuerier{}})
	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestHandleAsk_CollectsStream(t *testing.T) {
	server, err := NewServer(&Ports{Querier: &mockQuerier{reply: "grounded answer [Page 2]"}})
	require.NoError(t, err)

	_, out, err := server.handleAsk(context.Background(), nil, AskInput{
		DocumentID: "paper",
		Question:   "what?",
	})
	require.NoError(t, err)
	assert.Equal(t, "grounded answer [Page 2]", out.Answer)
}

func TestHandleAsk_PropagatesError(t *testing.T) {
	server, err := NewServer(&Ports{Querier: &mockQuerier{err: domain.ErrNotFound}})
	require.NoError(t, err)

	_, _, err = server.handleAsk(context.Background(), nil, AskInput{DocumentID: "ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHandleSummarize_CollectsStream(t *testing.T) {
	server, err := NewServer(&Ports{Querier: &mockQuerier{reply: "a summary"}})
	require.NoError(t, err)

	_, out, err := server.handleSummarize(context.Background(), nil, SummarizeInput{DocumentID: "paper"})
	require.NoError(t, err)
	assert.Equal(t, "a summary", out.Summary)
}

func TestHandleReview_CollectsStream(t *testing.T) {
	server, err := NewServer(&Ports{Querier: &mockQuerier{reply: "a critical review"}})
	require.NoError(t, err)

	_, out, err := server.handleReview(context.Background(), nil, ReviewInput{
		DocumentID: "paper",
		Role:       "editor",
	})
	require.NoError(t, err)
	assert.Equal(t, "a critical review", out.Review)
}

func TestHandleIngest_ReportsTerminalState(t *testing.T) {
	ingestor := &mockIngestor{
		docID: "paper",
		events: []domain.IngestEvent{
			{Kind: domain.IngestProgress, Current: 1, Total: 3},
			{Kind: domain.IngestProgress, Current: 3, Total: 3},
			{Kind: domain.IngestReady, State: domain.StateReady},
		},
	}
	server, err := NewServer(&Ports{Querier: &mockQuerier{}, Ingestor: ingestor})
	require.NoError(t, err)

	_, out, err := server.handleIngest(context.Background(), nil, IngestInput{Path: "/tmp/paper.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "paper", out.DocumentID)
	assert.Equal(t, string(domain.StateReady), out.State)
	assert.Equal(t, 3, out.Chunks)
	assert.Empty(t, out.Error)
}

func TestHandleIngest_ReportsFailure(t *testing.T) {
	ingestor := &mockIngestor{
		docID: "paper",
		events: []domain.IngestEvent{
			{Kind: domain.IngestFailed, State: domain.StateFailed, Err: domain.ErrNoExtractableText},
		},
	}
	server, err := NewServer(&Ports{Querier: &mockQuerier{}, Ingestor: ingestor})
	require.NoError(t, err)

	_, out, err := server.handleIngest(context.Background(), nil, IngestInput{Path: "/tmp/scan.pdf"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateFailed), out.State)
	assert.NotEmpty(t, out.Error)
}

func TestHandleIngest_BusyIsSoftError(t *testing.T) {
	ingestor := &mockIngestor{err: domain.ErrBusy}
	server, err := NewServer(&Ports{Querier: &mockQuerier{}, Ingestor: ingestor})
	require.NoError(t, err)

	_, out, err := server.handleIngest(context.Background(), nil, IngestInput{Path: "/tmp/p.pdf"})
	require.NoError(t, err)
	assert.Contains(t, out.Error, "already running")
}
