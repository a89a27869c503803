// Package vectorcache stores one half-precision vector matrix per document
// as a flat binary file under the cache directory.
//
// The layout is fixed-record: rows*dim little-endian 16-bit floats, no
// header. Fixed records give O(1) random-offset writes during incremental
// ingestion and a single contiguous read for full-scan similarity search.
// Integrity is enforced on open by an exact size check; a partial or stale
// file never reads as a truncated matrix.
package vectorcache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/x448/float16"

	"github.com/paperchat/paperchat/internal/core/domain"
	"github.com/paperchat/paperchat/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Ext is the vector store file extension.
const Ext = ".f16"

// bytesPerValue is the on-disk width of one float16 value.
const bytesPerValue = 2

// Store is a file-based implementation of driven.VectorStore.
type Store struct {
	dir string
}

// NewStore creates a vector store rooted at dir, creating the directory
// if needed. If dir is empty, defaults to ~/.paperchat/vectors.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".paperchat", "vectors")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the backing file path for a document ID.
func (s *Store) Path(docID string) string {
	return filepath.Join(s.dir, docID+Ext)
}

// Create allocates (or truncates) the store file sized exactly
// rows*dim*2 bytes.
func (s *Store) Create(docID string, rows, dim int) (driven.WriteHandle, error) {
	if rows <= 0 || dim <= 0 {
		return nil, fmt.Errorf("%w: store shape %dx%d", domain.ErrInvalidInput, rows, dim)
	}

	path := s.Path(docID)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("creating store file: %w", err)
	}

	if err := f.Truncate(int64(rows) * int64(dim) * bytesPerValue); err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("sizing store file: %w", err)
	}

	return &writeHandle{f: f, rows: rows, dim: dim}, nil
}

// Open loads the store read-only after validating its exact size.
func (s *Store) Open(docID string, rows, dim int) (driven.ReadHandle, error) {
	path := s.Path(docID)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrStoreNotFound, docID)
	}
	if err != nil {
		return nil, fmt.Errorf("stat store file: %w", err)
	}

	want := int64(rows) * int64(dim) * bytesPerValue
	if info.Size() != want {
		return nil, fmt.Errorf("%w: %s has %d bytes, want %d",
			domain.ErrStoreSizeMismatch, docID, info.Size(), want)
	}

	return &readHandle{path: path, rows: rows, dim: dim}, nil
}

// Delete removes the backing file. Absence is not an error.
func (s *Store) Delete(docID string) error {
	err := os.Remove(s.Path(docID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing store file: %w", err)
	}
	return nil
}

// writeHandle writes rows at independent byte offsets.
type writeHandle struct {
	f    *os.File
	rows int
	dim  int
}

// WriteRow encodes one vector to float16 and writes it at row*dim*2.
// Rows may arrive out of order; rewriting a row overwrites it.
func (h *writeHandle) WriteRow(row int, vec []float32) error {
	if row < 0 || row >= h.rows {
		return fmt.Errorf("%w: row %d outside store of %d rows", domain.ErrInvalidInput, row, h.rows)
	}
	if len(vec) != h.dim {
		return fmt.Errorf("%w: vector width %d, store dim %d", domain.ErrInvalidInput, len(vec), h.dim)
	}

	buf := make([]byte, h.dim*bytesPerValue)
	for i, v := range vec {
		binary.LittleEndian.PutUint16(buf[i*bytesPerValue:], float16.Fromfloat32(v).Bits())
	}

	if _, err := h.f.WriteAt(buf, int64(row)*int64(h.dim)*bytesPerValue); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

// Flush forces written rows to durable storage.
func (h *writeHandle) Flush() error {
	if err := h.f.Sync(); err != nil {
		return fmt.Errorf("syncing store file: %w", err)
	}
	return nil
}

// Close releases the file handle without flushing.
func (h *writeHandle) Close() error {
	return h.f.Close()
}

// readHandle reads the full matrix with one contiguous read. The store is
// read-only after ingestion completes, so no locking is needed for
// concurrent readers.
type readHandle struct {
	path string
	rows int
	dim  int
}

// ReadAll decodes the whole file into a rows x dim float32 matrix.
func (h *readHandle) ReadAll() ([][]float32, error) {
	data, err := os.ReadFile(h.path)
	if err != nil {
		return nil, fmt.Errorf("reading store file: %w", err)
	}

	want := h.rows * h.dim * bytesPerValue
	if len(data) != want {
		// The file changed between Open and ReadAll.
		return nil, fmt.Errorf("%w: %s has %d bytes, want %d",
			domain.ErrStoreSizeMismatch, filepath.Base(h.path), len(data), want)
	}

	matrix := make([][]float32, h.rows)
	for r := 0; r < h.rows; r++ {
		row := make([]float32, h.dim)
		base := r * h.dim * bytesPerValue
		for c := 0; c < h.dim; c++ {
			bits := binary.LittleEndian.Uint16(data[base+c*bytesPerValue:])
			row[c] = float16.Frombits(bits).Float32()
		}
		matrix[r] = row
	}
	return matrix, nil
}

// Rows returns the row count the handle was opened with.
func (h *readHandle) Rows() int {
	return h.rows
}

// Dim returns the vector width the handle was opened with.
func (h *readHandle) Dim() int {
	return h.dim
}

// Close releases the handle.
func (h *readHandle) Close() error {
	return nil
}
