// Package pdf extracts per-page plain text from PDF files.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/paperchat/paperchat/internal/core/domain"
	"github.com/paperchat/paperchat/internal/core/ports/driven"
	"github.com/paperchat/paperchat/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor reads PDFs with a pure-Go parser. Scanned pages without a
// text layer yield empty page text; OCR is out of scope.
type Extractor struct{}

// New creates a PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Validate cheaply checks the file opens, is not encrypted and has at
// least one page.
func (e *Extractor) Validate(_ context.Context, path string) error {
	f, r, err := pdf.Open(path)
	if err != nil {
		return classifyOpenError(err)
	}
	defer f.Close()

	if r.NumPage() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrEmptyDocument, path)
	}
	return nil
}

// Extract returns the ordered page texts. A page whose text cannot be
// decoded is returned empty rather than failing the document; the
// chunker skips empty pages and the pipeline fails only when every page
// is empty.
func (e *Extractor) Extract(ctx context.Context, path string) ([]domain.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, classifyOpenError(err)
	}
	defer f.Close()

	total := r.NumPage()
	if total == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrEmptyDocument, path)
	}

	pages := make([]domain.Page, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := domain.Page{Number: i}

		p := r.Page(i)
		if !p.V.IsNull() {
			text, err := p.GetPlainText(nil)
			if err != nil {
				logger.Warn("Page %d of %s: text extraction failed: %v", i, path, err)
			} else {
				page.Text = text
			}
		}

		pages = append(pages, page)
	}

	return pages, nil
}

// classifyOpenError maps parser failures onto the domain taxonomy.
func classifyOpenError(err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "encrypt") || strings.Contains(msg, "password") {
		return fmt.Errorf("%w: %v", domain.ErrEncryptedDocument, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}
