package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The vector dimensionality is whatever the provider returns for the
// configured model; callers must discover it from the first response
// rather than assume a fixed width.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI-compatible endpoints (text-embedding-3-small, ...)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts. It is an
	// optimisation over calling Embed in a loop, not a correctness
	// requirement.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
