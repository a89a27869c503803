package driven

import "context"

// LLMService provides chat completion against the configured model.
//
// Implementations may include:
//   - Ollama (local models)
//   - OpenAI-compatible endpoints
type LLMService interface {
	// Chat conducts a multi-turn conversation and returns the full reply.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ChatStream conducts a conversation as a streaming request, calling
	// fn once per incremental content delta as it arrives. A non-nil
	// error from fn stops the stream and is returned. The stream is
	// finite and not restartable; re-asking requires a fresh call.
	ChatStream(ctx context.Context, messages []ChatMessage, opts ChatOptions, fn func(delta string) error) error

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
