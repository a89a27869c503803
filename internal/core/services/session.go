package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/paperchat/paperchat/internal/core/domain"
	"github.com/paperchat/paperchat/internal/core/ports/driving"
)

// Ensure SessionService implements the interface.
var _ driving.SessionManager = (*SessionService)(nil)

// SessionService manages in-memory conversation sessions through the
// catalog. Sessions are never persisted.
type SessionService struct {
	catalog *Catalog
}

// NewSessionService creates a session service over the given catalog.
func NewSessionService(catalog *Catalog) *SessionService {
	return &SessionService{catalog: catalog}
}

// Create opens a new session. docID may be empty for plain chat.
func (s *SessionService) Create(name, docID string) (*domain.Session, error) {
	if name == "" {
		name = "Chat " + time.Now().Format("15:04:05")
	}

	session := &domain.Session{
		ID:         uuid.New().String(),
		Name:       name,
		DocumentID: docID,
		CreatedAt:  time.Now(),
	}
	s.catalog.putSession(session)
	return session, nil
}

// Get returns a session by ID.
func (s *SessionService) Get(id string) (*domain.Session, error) {
	session := s.catalog.session(id)
	if session == nil {
		return nil, fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	return session, nil
}

// List returns all active sessions in creation order.
func (s *SessionService) List() []domain.Session {
	return s.catalog.listSessions()
}

// Append adds a message to a session's transcript.
func (s *SessionService) Append(id string, msg domain.Message) error {
	if !s.catalog.appendMessage(id, msg) {
		return fmt.Errorf("%w: session %s", domain.ErrNotFound, id)
	}
	return nil
}

// Delete discards a session. Absence is not an error.
func (s *SessionService) Delete(id string) {
	s.catalog.deleteSession(id)
}

// DeleteByDocument discards every session bound to a document.
func (s *SessionService) DeleteByDocument(docID string) {
	s.catalog.deleteSessionsByDocument(docID)
}
