package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Ingestion Errors.

	// ErrBusy indicates an ingestion is already running.
	// Only one document may be ingested at a time; callers retry later.
	ErrBusy = errors.New("ingestion in progress")

	// ErrEncryptedDocument indicates the source PDF is password protected.
	ErrEncryptedDocument = errors.New("document is encrypted")

	// ErrEmptyDocument indicates the source PDF has no pages.
	ErrEmptyDocument = errors.New("document has no pages")

	// ErrNoExtractableText indicates no text could be extracted from any
	// page, e.g. a scanned-image PDF without an OCR layer. Fatal for the
	// document; a different file must be supplied.
	ErrNoExtractableText = errors.New("no extractable text in document")

	// Provider Errors.

	// ErrProviderUnavailable indicates the embedding or completion endpoint
	// is unreachable. Retrying is a caller decision, never automatic.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrEmbeddingFailed indicates the provider returned a malformed or
	// empty vector for a chunk. Aborts the enclosing ingestion.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// Vector Store Errors.

	// ErrStoreNotFound indicates the vector store file for a document is
	// absent. The document must be re-ingested.
	ErrStoreNotFound = errors.New("vector store not found")

	// ErrStoreSizeMismatch indicates the vector store file size does not
	// match the expected rows*dim*2 bytes. The store is stale or partial
	// and must be rebuilt; it is never served as truncated results.
	ErrStoreSizeMismatch = errors.New("vector store size mismatch")

	// Service Errors.

	// ErrLLMUnavailable indicates the completion service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
