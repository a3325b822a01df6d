// Package flat provides an exact inner-product similarity index.
//
// The index is a flat (brute-force) structure: every query is scored
// against every stored vector. Exact search keeps the ordering and
// integrity contracts trivial to reason about; swapping in a tree-based
// or quantized backend only requires honouring the same VectorStore
// port.
package flat

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/traceleaf/docrag/internal/core/domain"
	"github.com/traceleaf/docrag/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorStore = (*Index)(nil)

// File format constants for the persisted index.
const (
	// formatVersion is bumped on any incompatible layout change.
	formatVersion uint32 = 1
)

// magic identifies a docrag flat index file.
var magic = [4]byte{'D', 'R', 'F', 'I'}

// header is the fixed-size prologue of the index file. The stored count
// is the explicit integrity token: restore cross-checks it against both
// the vector payload length and the metadata entry count.
type header struct {
	Magic      [4]byte
	Version    uint32
	Generation [16]byte
	Dimensions uint32
	Count      uint32
}

// Index stores chunk vectors and serves exact nearest-neighbour search
// by inner product. One Index holds at most one generation in memory;
// Build and Restore replace it wholesale.
//
// Safe for a single writer and any number of readers.
type Index struct {
	mu         sync.RWMutex
	vectors    [][]float32
	chunks     []domain.Chunk
	dimensions int
	generation uuid.UUID
	built      bool
}

// New creates an empty index. Search and Persist fail with
// domain.ErrIndexNotBuilt until Build or Restore succeeds.
func New() *Index {
	return &Index{}
}

// Build constructs a fresh generation from vectors and their chunks.
func (idx *Index) Build(vectors [][]float32, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return domain.ErrEmptyIndex
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("flat: %d vectors for %d chunks", len(vectors), len(chunks))
	}

	dim := len(vectors[0])
	if dim == 0 {
		return errors.New("flat: zero-dimension vectors")
	}
	for i, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("flat: vector %d has dimension %d, want %d", i, len(v), dim)
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.vectors = vectors
	idx.chunks = chunks
	idx.dimensions = dim
	idx.generation = uuid.New()
	idx.built = true

	return nil
}

// Persist writes the similarity structure and the aligned metadata to the
// two given paths, creating parent directories as needed. Both files are
// written on every successful call; if one write fails the operation
// reports failure and the files may be left inconsistent - recovery is a
// re-ingest.
func (idx *Index) Persist(indexPath, metadataPath string) error {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.built {
		return domain.ErrIndexNotBuilt
	}

	for _, p := range []string{indexPath, metadataPath} {
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return fmt.Errorf("flat: create directory %s: %w", dir, err)
			}
		}
	}

	if err := idx.writeIndexFile(indexPath); err != nil {
		return fmt.Errorf("flat: write index: %w", err)
	}
	if err := idx.writeMetadataFile(metadataPath); err != nil {
		return fmt.Errorf("flat: write metadata: %w", err)
	}

	return nil
}

func (idx *Index) writeIndexFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h := header{
		Magic:      magic,
		Version:    formatVersion,
		Generation: idx.generation,
		Dimensions: uint32(idx.dimensions),
		Count:      uint32(len(idx.vectors)),
	}
	if err := binary.Write(f, binary.LittleEndian, h); err != nil {
		return err
	}

	for _, v := range idx.vectors {
		if err := binary.Write(f, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	return f.Close()
}

func (idx *Index) writeMetadataFile(path string) error {
	data, err := json.MarshalIndent(idx.chunks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Restore loads a generation from disk, replacing any in-memory state.
// Restore is idempotent and may be called before every query to pick up
// the latest generation.
func (idx *Index) Restore(indexPath, metadataPath string) error {
	for _, p := range []string{indexPath, metadataPath} {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("%w: %s", domain.ErrIndexNotFound, p)
			}
			return fmt.Errorf("flat: stat %s: %w", p, err)
		}
	}

	vectors, dim, gen, err := readIndexFile(indexPath)
	if err != nil {
		return err
	}

	chunks, err := readMetadataFile(metadataPath)
	if err != nil {
		return err
	}

	// Integrity check: the two halves of a generation are written
	// together, so their counts must agree.
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: %d vectors, %d metadata entries",
			domain.ErrIndexCorrupt, len(vectors), len(chunks))
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.vectors = vectors
	idx.chunks = chunks
	idx.dimensions = dim
	idx.generation = gen
	idx.built = true

	return nil
}

func readIndexFile(path string) ([][]float32, int, uuid.UUID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, uuid.Nil, fmt.Errorf("flat: open index: %w", err)
	}
	defer f.Close()

	var h header
	if err := binary.Read(f, binary.LittleEndian, &h); err != nil {
		return nil, 0, uuid.Nil, fmt.Errorf("%w: short header", domain.ErrIndexCorrupt)
	}
	if h.Magic != magic {
		return nil, 0, uuid.Nil, fmt.Errorf("%w: bad magic", domain.ErrIndexCorrupt)
	}
	if h.Version != formatVersion {
		return nil, 0, uuid.Nil, fmt.Errorf("%w: unsupported format version %d",
			domain.ErrIndexCorrupt, h.Version)
	}
	if h.Dimensions == 0 || h.Count == 0 {
		return nil, 0, uuid.Nil, fmt.Errorf("%w: empty header", domain.ErrIndexCorrupt)
	}

	vectors := make([][]float32, h.Count)
	for i := range vectors {
		v := make([]float32, h.Dimensions)
		if err := binary.Read(f, binary.LittleEndian, v); err != nil {
			return nil, 0, uuid.Nil, fmt.Errorf("%w: truncated vector payload",
				domain.ErrIndexCorrupt)
		}
		vectors[i] = v
	}

	// Trailing bytes mean the header count lied.
	var extra [1]byte
	if _, err := f.Read(extra[:]); err != io.EOF {
		return nil, 0, uuid.Nil, fmt.Errorf("%w: trailing data after vector payload",
			domain.ErrIndexCorrupt)
	}

	return vectors, int(h.Dimensions), uuid.UUID(h.Generation), nil
}

func readMetadataFile(path string) ([]domain.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("flat: read metadata: %w", err)
	}

	var chunks []domain.Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("%w: metadata not a chunk array", domain.ErrIndexCorrupt)
	}

	return chunks, nil
}

// Search returns up to topK chunks ordered by descending inner-product
// similarity, ties broken by ascending insertion position. Fewer than
// topK stored vectors yield a shorter result, never an error.
func (idx *Index) Search(query []float32, topK int) ([]domain.RetrievedChunk, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if !idx.built {
		return nil, domain.ErrIndexNotBuilt
	}
	if len(query) != idx.dimensions {
		return nil, fmt.Errorf("flat: query dimension %d, index dimension %d",
			len(query), idx.dimensions)
	}
	if topK <= 0 {
		return []domain.RetrievedChunk{}, nil
	}

	results := make([]domain.RetrievedChunk, 0, len(idx.vectors))
	for i, v := range idx.vectors {
		results = append(results, domain.RetrievedChunk{
			Chunk: idx.chunks[i],
			Score: dot(query, v),
		})
	}

	// Stable sort keeps ascending insertion position on score ties.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK < len(results) {
		results = results[:topK]
	}

	return results, nil
}

// Len returns the number of stored vectors, zero when not built.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// Dimensions returns the vector dimensionality of the current generation.
func (idx *Index) Dimensions() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dimensions
}

// Generation returns the generation ID stamped at the last Build, or the
// one read back by Restore. Zero UUID when not built.
func (idx *Index) Generation() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if !idx.built {
		return ""
	}
	return idx.generation.String()
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
