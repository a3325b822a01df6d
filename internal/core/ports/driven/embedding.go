package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Vectors are L2-normalized and share a fixed dimensionality for the
// lifetime of one provider instance. The dimensionality is discovered at
// first use and reused for the whole index generation; the core never
// assumes a particular model.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, one vector per
	// input in the same order. An empty batch is a provider failure and
	// surfaces as domain.ErrEmbeddingFailed; the core performs no retry.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g. 384, 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
