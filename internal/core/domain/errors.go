package domain

import "errors"

// Domain errors represent business logic failures.
// Every component surfaces these unchanged to the orchestration layer
// and from there to the external shims: no retries, no silent degradation.
var (
	// ErrInvalidChunkConfig indicates bad segmentation parameters
	// (window size must exceed overlap, both positive).
	ErrInvalidChunkConfig = errors.New("invalid chunk configuration")

	// ErrSourceNotFound indicates the ingest document root does not exist.
	ErrSourceNotFound = errors.New("document source not found")

	// ErrEmbeddingFailed indicates the embedding provider failed,
	// e.g. an empty batch or an unreachable model.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrEmptyIndex indicates a build was attempted with zero chunks.
	ErrEmptyIndex = errors.New("no chunks to index")

	// ErrIndexNotBuilt indicates search or persist was called before
	// the index was built or restored.
	ErrIndexNotBuilt = errors.New("index not built")

	// ErrIndexNotFound indicates restore could not find the index or
	// metadata file on disk.
	ErrIndexNotFound = errors.New("index files not found")

	// ErrIndexCorrupt indicates the restored vector count does not match
	// the metadata count. The index and metadata files are always written
	// together; a mismatch means a half-written or truncated generation.
	ErrIndexCorrupt = errors.New("index corrupt: vector/metadata mismatch")
)
