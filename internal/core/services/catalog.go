package services

import (
	"sync"

	"github.com/paperchat/paperchat/internal/core/domain"
)

// Catalog is the single owner of the process's mutable shared state: the
// active session map and the one ingestion slot. It is passed into the
// services that need it rather than accessed as ambient globals.
type Catalog struct {
	mu        sync.RWMutex
	sessions  map[string]*domain.Session
	order     []string
	ingesting bool
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		sessions: make(map[string]*domain.Session),
	}
}

// TryAcquireIngest claims the single ingestion slot. It returns false
// without blocking when an ingestion is already in flight; callers must
// surface domain.ErrBusy rather than queue.
func (c *Catalog) TryAcquireIngest() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ingesting {
		return false
	}
	c.ingesting = true
	return true
}

// ReleaseIngest frees the ingestion slot.
func (c *Catalog) ReleaseIngest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ingesting = false
}

// IngestBusy reports whether an ingestion is in flight.
func (c *Catalog) IngestBusy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ingesting
}

// putSession stores a session under its ID.
func (c *Catalog) putSession(s *domain.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.sessions[s.ID]; !exists {
		c.order = append(c.order, s.ID)
	}
	c.sessions[s.ID] = s
}

// session returns a copy of the session, or nil when absent. The message
// slice is copied so callers never observe concurrent appends.
func (c *Catalog) session(id string) *domain.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.sessions[id]
	if !ok {
		return nil
	}
	copied := *s
	copied.Messages = append([]domain.Message(nil), s.Messages...)
	return &copied
}

// appendMessage adds a message to a session's transcript.
func (c *Catalog) appendMessage(id string, msg domain.Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[id]
	if !ok {
		return false
	}
	s.Messages = append(s.Messages, msg)
	return true
}

// listSessions returns copies of all sessions in creation order.
func (c *Catalog) listSessions() []domain.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Session, 0, len(c.order))
	for _, id := range c.order {
		s, ok := c.sessions[id]
		if !ok {
			continue
		}
		copied := *s
		copied.Messages = append([]domain.Message(nil), s.Messages...)
		out = append(out, copied)
	}
	return out
}

// deleteSession removes a session by ID.
func (c *Catalog) deleteSession(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.sessions[id]; !ok {
		return
	}
	delete(c.sessions, id)
	for i, sid := range c.order {
		if sid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// deleteSessionsByDocument removes every session bound to a document.
func (c *Catalog) deleteSessionsByDocument(docID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.order[:0]
	for _, sid := range c.order {
		s := c.sessions[sid]
		if s != nil && s.DocumentID == docID {
			delete(c.sessions, sid)
			continue
		}
		kept = append(kept, sid)
	}
	c.order = kept
}
