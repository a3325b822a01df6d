package domain

// Chunk represents an immutable unit of retrievable document text.
// Chunks are created during ingest segmentation and never mutated;
// a full re-ingest replaces the entire index generation.
type Chunk struct {
	// ID is unique within an index generation, format "<source>:<sequence>".
	// Sequence numbers are monotonically increasing per source, starting
	// at 0, with no gaps for non-empty chunks.
	ID string `json:"chunk_id"`

	// Source identifies the originating document (e.g. a file path).
	Source string `json:"source"`

	// Title is a derived heading or snippet (at most 80 characters)
	// used for display.
	Title string `json:"title"`

	// Text is the chunk body with surrounding whitespace trimmed.
	// Always non-empty.
	Text string `json:"text"`
}

// RetrievedChunk pairs a chunk with its similarity score for one query.
// Higher scores mean more relevant. Created per query, never persisted.
type RetrievedChunk struct {
	Chunk Chunk

	// Score is the inner-product similarity to the query vector.
	Score float64
}
