package driven

// VectorStore persists one fixed-width half-precision vector matrix per
// document and reads it back for full-scan similarity search.
//
// The backing file is a flat, fixed-record-length binary layout of shape
// [rows, dim] in 16-bit floats. A file is only valid when its byte length
// equals rows*dim*2; anything else signals a stale or partial store that
// must be rebuilt. There is no valid-prefix concept.
type VectorStore interface {
	// Create allocates (or truncates) the store file for a document,
	// sized exactly rows*dim*2 bytes.
	Create(docID string, rows, dim int) (WriteHandle, error)

	// Open maps or loads the store read-only. Returns
	// domain.ErrStoreNotFound when the file is absent and
	// domain.ErrStoreSizeMismatch when its length does not match
	// rows*dim*2.
	Open(docID string, rows, dim int) (ReadHandle, error)

	// Delete removes the backing file. Absence is not an error.
	Delete(docID string) error
}

// WriteHandle writes rows into a store under construction. Rows may be
// written in any order; writing a row twice overwrites it.
type WriteHandle interface {
	// WriteRow writes one vector at row*dim*2 bytes. The vector length
	// must equal the dim the store was created with.
	WriteRow(row int, vec []float32) error

	// Flush forces all written rows to durable storage.
	Flush() error

	// Close releases the handle. It does not flush.
	Close() error
}

// ReadHandle reads a complete, validated store.
type ReadHandle interface {
	// ReadAll returns the full rows x dim matrix.
	ReadAll() ([][]float32, error)

	// Rows returns the row count the handle was opened with.
	Rows() int

	// Dim returns the vector width the handle was opened with.
	Dim() int

	// Close releases the handle.
	Close() error
}
