package domain

import "time"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single role-tagged entry in a session transcript.
type Message struct {
	// Role is one of RoleUser or RoleAssistant. RoleSystem messages are
	// assembled per request and never stored in the transcript.
	Role string

	// Content is the message text.
	Content string
}

// Session is a named, ordered conversation held only in process memory.
// A session with a non-empty DocumentID is a document session: sending a
// message routes through the query pipeline instead of plain chat.
type Session struct {
	// ID uniquely identifies the session.
	ID string

	// Name is the display name.
	Name string

	// DocumentID links the session to an ingested document, or is empty
	// for plain chat.
	DocumentID string

	// Messages is the ordered transcript.
	Messages []Message

	// CreatedAt is when the session was opened.
	CreatedAt time.Time
}
