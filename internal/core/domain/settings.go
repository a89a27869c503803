package domain

// Provider identifies an AI backend type.
type Provider string

const (
	// ProviderOllama targets a local Ollama server.
	ProviderOllama Provider = "ollama"
	// ProviderOpenAI targets an OpenAI-compatible API.
	ProviderOpenAI Provider = "openai"
)

// IsValid reports whether the provider is a known backend.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderOllama, ProviderOpenAI:
		return true
	}
	return false
}

// Settings is the full application configuration.
type Settings struct {
	// Provider selects the AI backend for embedding and completion.
	Provider Provider `toml:"provider"`

	// BaseURL overrides the provider's default endpoint.
	BaseURL string `toml:"base_url"`

	// APIKey authenticates OpenAI-compatible endpoints. Unused for Ollama.
	APIKey string `toml:"api_key"`

	// EmbeddingModel is the embedding model name.
	EmbeddingModel string `toml:"embedding_model"`

	// ChatModel is the completion model name.
	ChatModel string `toml:"chat_model"`

	// CacheDir holds the per-document vector store files.
	CacheDir string `toml:"cache_dir"`

	// DataDir holds the document catalog database.
	DataDir string `toml:"data_dir"`

	// ChunkWindow is the chunk size in characters.
	ChunkWindow int `toml:"chunk_window"`

	// ChunkOverlap is the overlap between consecutive chunks in characters.
	ChunkOverlap int `toml:"chunk_overlap"`

	// TopK is the number of chunks retrieved per query.
	TopK int `toml:"top_k"`
}

// DefaultSettings returns the configuration used when no file exists.
// Window/overlap/top-K carry the tuned defaults; they are a deployment
// configuration surface, not fixed constants.
func DefaultSettings() Settings {
	return Settings{
		Provider:       ProviderOllama,
		EmbeddingModel: "nomic-embed-text",
		ChatModel:      "llama3.2",
		ChunkWindow:    1000,
		ChunkOverlap:   200,
		TopK:           5,
	}
}
