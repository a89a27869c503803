// Package chunker splits per-page document text into overlapping
// fixed-size windows for embedding and retrieval.
package chunker

import (
	"github.com/paperchat/paperchat/internal/core/domain"
)

// DefaultWindow is the default number of characters per chunk.
const DefaultWindow = 1000

// DefaultOverlap is the default number of characters shared between
// consecutive chunks. Overlap biases retrieval towards recall: context
// straddling a cut point appears whole in at least one window.
const DefaultOverlap = 200

// Chunker splits page text into overlapping windows. Windows never cross
// a page boundary, so every chunk carries an unambiguous page number.
type Chunker struct {
	window  int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithWindow sets the window size in characters.
func WithWindow(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.window = size
		}
	}
}

// WithOverlap sets the overlap between consecutive windows in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		window:  DefaultWindow,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Overlap must leave a positive stride.
	if c.overlap >= c.window {
		c.overlap = c.window / 4
	}

	return c
}

// Window returns the configured window size in characters.
func (c *Chunker) Window() int {
	return c.window
}

// Stride returns the distance between consecutive window starts.
func (c *Chunker) Stride() int {
	return c.window - c.overlap
}

// Chunk splits the ordered pages of a document into chunks. Window and
// stride count characters, not bytes, so multi-byte text is never cut
// mid-rune. Pages with empty text contribute no chunks. The returned
// slice may be empty when no page has any text; the ingestion pipeline
// treats that as fatal.
func (c *Chunker) Chunk(docID string, pages []domain.Page) []domain.Chunk {
	stride := c.Stride()

	var chunks []domain.Chunk
	for _, page := range pages {
		text := []rune(page.Text)
		if len(text) == 0 {
			continue
		}

		for start := 0; start < len(text); start += stride {
			end := start + c.window
			if end > len(text) {
				end = len(text)
			}

			chunks = append(chunks, domain.Chunk{
				DocumentID: docID,
				Index:      len(chunks),
				Page:       page.Number,
				Text:       string(text[start:end]),
			})
		}
	}

	return chunks
}
