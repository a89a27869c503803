package driven

import (
	"context"

	"github.com/paperchat/paperchat/internal/core/domain"
)

// Extractor opens a source document and extracts per-page plain text.
type Extractor interface {
	// Validate cheaply checks the file opens, is not encrypted and has at
	// least one page. Returns domain.ErrEncryptedDocument,
	// domain.ErrEmptyDocument or domain.ErrInvalidInput accordingly.
	Validate(ctx context.Context, path string) error

	// Extract returns the ordered page texts. Pages without extractable
	// text are returned with empty Text rather than omitted.
	Extract(ctx context.Context, path string) ([]domain.Page, error)
}
