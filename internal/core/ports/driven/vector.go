package driven

import "github.com/traceleaf/docrag/internal/core/domain"

// VectorStore is an exact nearest-neighbour index over chunk embeddings,
// keyed by inner-product similarity, with durable persistence.
//
// An index generation is the paired artifact of the similarity structure
// and the positionally aligned chunk metadata: metadata[i] belongs to the
// vector inserted at position i. The two halves are always written and
// read together; a mismatch on restore is domain.ErrIndexCorrupt.
//
// The store assumes a single writer and any number of readers. Enforcing
// the single-writer assumption is a deployment concern, not part of this
// contract.
type VectorStore interface {
	// Build constructs a fresh generation from vectors and their chunks.
	// Requires len(vectors) == len(chunks) > 0; zero chunks fail with
	// domain.ErrEmptyIndex. Any prior in-memory state is replaced.
	Build(vectors [][]float32, chunks []domain.Chunk) error

	// Persist writes the similarity structure and the aligned metadata
	// sequence to the two given paths, creating parent directories as
	// needed. Fails with domain.ErrIndexNotBuilt before a Build or
	// Restore. Both files are written on every successful call; if one
	// write fails the operation reports failure and recovery is a
	// re-ingest.
	Persist(indexPath, metadataPath string) error

	// Restore loads a generation from disk. Fails with
	// domain.ErrIndexNotFound if either file is absent and with
	// domain.ErrIndexCorrupt if the vector count does not match the
	// metadata count. Idempotent; may be called before every query to
	// pick up the latest generation.
	Restore(indexPath, metadataPath string) error

	// Search returns up to topK chunks ordered by descending similarity
	// to the query vector, ties broken by ascending insertion position.
	// An index holding fewer than topK vectors yields a shorter result,
	// never an error. Fails with domain.ErrIndexNotBuilt before a Build
	// or Restore.
	Search(query []float32, topK int) ([]domain.RetrievedChunk, error)

	// Len returns the number of stored vectors, zero when not built.
	Len() int

	// Dimensions returns the vector dimensionality of the current
	// generation, zero when not built.
	Dimensions() int
}
