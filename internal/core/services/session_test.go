package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperchat/paperchat/internal/core/domain"
)

func TestSessionCreate_GeneratesIDAndDefaultName(t *testing.T) {
	svc := NewSessionService(NewCatalog())

	session, err := svc.Create("", "")
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.NotEmpty(t, session.Name)
	assert.False(t, session.CreatedAt.IsZero())
}

func TestSessionCreate_KeepsGivenName(t *testing.T) {
	svc := NewSessionService(NewCatalog())

	session, err := svc.Create("reading group", "paper")
	require.NoError(t, err)

	assert.Equal(t, "reading group", session.Name)
	assert.Equal(t, "paper", session.DocumentID)
}

func TestSessionGet_NotFound(t *testing.T) {
	svc := NewSessionService(NewCatalog())

	_, err := svc.Get("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionAppend_BuildsTranscript(t *testing.T) {
	svc := NewSessionService(NewCatalog())
	session, err := svc.Create("", "")
	require.NoError(t, err)

	require.NoError(t, svc.Append(session.ID, domain.Message{Role: domain.RoleUser, Content: "hi"}))
	require.NoError(t, svc.Append(session.ID, domain.Message{Role: domain.RoleAssistant, Content: "hello"}))

	got, err := svc.Get(session.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "hi", got.Messages[0].Content)
	assert.Equal(t, "hello", got.Messages[1].Content)
}

func TestSessionAppend_UnknownSession(t *testing.T) {
	svc := NewSessionService(NewCatalog())

	err := svc.Append("missing", domain.Message{Role: domain.RoleUser, Content: "hi"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionGet_ReturnsCopy(t *testing.T) {
	svc := NewSessionService(NewCatalog())
	session, err := svc.Create("", "")
	require.NoError(t, err)
	require.NoError(t, svc.Append(session.ID, domain.Message{Role: domain.RoleUser, Content: "hi"}))

	first, err := svc.Get(session.ID)
	require.NoError(t, err)
	first.Messages[0].Content = "mutated"

	second, err := svc.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", second.Messages[0].Content)
}

func TestSessionList_CreationOrder(t *testing.T) {
	svc := NewSessionService(NewCatalog())

	a, err := svc.Create("a", "")
	require.NoError(t, err)
	b, err := svc.Create("b", "")
	require.NoError(t, err)

	sessions := svc.List()
	require.Len(t, sessions, 2)
	assert.Equal(t, a.ID, sessions[0].ID)
	assert.Equal(t, b.ID, sessions[1].ID)
}

func TestSessionDelete_AbsentIsNotAnError(t *testing.T) {
	svc := NewSessionService(NewCatalog())

	svc.Delete("missing")
	assert.Empty(t, svc.List())
}

func TestSessionDeleteByDocument_RemovesOnlyBoundSessions(t *testing.T) {
	svc := NewSessionService(NewCatalog())

	bound, err := svc.Create("bound", "paper")
	require.NoError(t, err)
	free, err := svc.Create("free", "")
	require.NoError(t, err)

	svc.DeleteByDocument("paper")

	_, err = svc.Get(bound.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Get(free.ID)
	assert.NoError(t, err)
}

func TestCatalog_IngestSlotIsExclusive(t *testing.T) {
	catalog := NewCatalog()

	assert.True(t, catalog.TryAcquireIngest())
	assert.True(t, catalog.IngestBusy())
	assert.False(t, catalog.TryAcquireIngest())

	catalog.ReleaseIngest()
	assert.False(t, catalog.IngestBusy())
	assert.True(t, catalog.TryAcquireIngest())
}
