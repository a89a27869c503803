package driving

import "github.com/paperchat/paperchat/internal/core/domain"

// SessionManager owns the in-memory conversation sessions. Sessions exist
// only while their ID is in the active session map; nothing is persisted.
type SessionManager interface {
	// Create opens a new session. docID may be empty for plain chat.
	Create(name, docID string) (*domain.Session, error)

	// Get returns a session by ID. Returns domain.ErrNotFound if absent.
	Get(id string) (*domain.Session, error)

	// List returns all active sessions in creation order.
	List() []domain.Session

	// Append adds a message to a session's transcript.
	Append(id string, msg domain.Message) error

	// Delete discards a session. Absence is not an error.
	Delete(id string)

	// DeleteByDocument discards every session bound to a document.
	DeleteByDocument(docID string)
}
