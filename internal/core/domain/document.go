package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// DocumentState tracks a document through the ingestion lifecycle.
type DocumentState string

const (
	// StateQueued means ingestion has been accepted but not started.
	StateQueued DocumentState = "queued"
	// StateExtracting means page text is being extracted from the PDF.
	StateExtracting DocumentState = "extracting"
	// StateChunking means page text is being split into chunks.
	StateChunking DocumentState = "chunking"
	// StateEmbedding means chunk vectors are being generated and written.
	StateEmbedding DocumentState = "embedding"
	// StateReady means the vector store is complete and queryable.
	StateReady DocumentState = "ready"
	// StateFailed means ingestion aborted; no partial store remains.
	StateFailed DocumentState = "failed"
)

// Document represents an ingested PDF and its retrieval metadata.
type Document struct {
	// ID is the stable identifier, derived from the source filename.
	ID string

	// Title is the human-readable name (the source filename).
	Title string

	// Path is the original file location.
	Path string

	// Pages is the page count of the source PDF.
	Pages int

	// ChunkCount is the number of chunks (vector store rows).
	ChunkCount int

	// Dim is the embedding dimensionality, discovered from the provider's
	// first embedding response. Zero until embedding starts.
	Dim int

	// State is the current ingestion state.
	State DocumentState

	// CreatedAt is when ingestion started.
	CreatedAt time.Time

	// UpdatedAt is when the document last changed state.
	UpdatedAt time.Time
}

// Chunk is a bounded text window extracted from one page, the unit of
// embedding and retrieval. Immutable once created.
type Chunk struct {
	// DocumentID links to the parent Document.
	DocumentID string

	// Index is the chunk's position in the document sequence and its row
	// offset in the vector store.
	Index int

	// Page is the 1-based source page number.
	Page int

	// Text is the window content.
	Text string
}

// Page is raw extracted text for one source page.
type Page struct {
	// Number is the 1-based page number.
	Number int

	// Text is the extracted plain text, possibly empty.
	Text string
}

// DocumentID derives the stable document identifier from a file path.
// The identifier is the base filename without its extension, which keeps
// vector store filenames readable and collision behaviour obvious.
func DocumentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
