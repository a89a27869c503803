package domain

// IngestEventKind discriminates ingestion progress events.
type IngestEventKind string

const (
	// IngestProgress reports embedding progress (Current of Total rows).
	IngestProgress IngestEventKind = "progress"
	// IngestReady reports successful completion; the store is queryable.
	IngestReady IngestEventKind = "ready"
	// IngestFailed reports an aborted ingestion; Err carries the cause and
	// no partial store remains.
	IngestFailed IngestEventKind = "failed"
)

// IngestEvent is emitted by the ingestion pipeline as a document moves
// through its lifecycle. Consumers subscribe to a channel of these rather
// than polling shared state.
type IngestEvent struct {
	Kind       IngestEventKind
	DocumentID string

	// State is the document state at the time of the event.
	State DocumentState

	// Current and Total describe embedding progress for IngestProgress.
	Current int
	Total   int

	// Err is set for IngestFailed.
	Err error
}
