package driving

import "context"

// Querier answers questions grounded in an ingested document and streams
// the reply.
//
// Streaming follows the connector channel convention: deltas arrive on
// the first channel, at most one error on the second, and both close when
// the stream ends. Partial output already delivered is never retracted;
// the caller decides how to render a trailing error.
type Querier interface {
	// Ask embeds the question, ranks the document's stored vectors,
	// assembles a grounded prompt and streams the completion.
	// When sessionID is non-empty the exchange is appended to that
	// session's transcript on completion.
	Ask(ctx context.Context, docID, sessionID, question string) (<-chan string, <-chan error)

	// Summarize streams a concise summary of the document's full text.
	Summarize(ctx context.Context, docID, sessionID string) (<-chan string, <-chan error)

	// Review streams a critical review of the document's full text from
	// the chosen reviewer role's perspective. Empty or unknown roles get
	// a general peer review.
	Review(ctx context.Context, docID, sessionID, role string) (<-chan string, <-chan error)

	// Chat streams a plain completion over the session's history without
	// document grounding.
	Chat(ctx context.Context, sessionID, prompt string) (<-chan string, <-chan error)
}
