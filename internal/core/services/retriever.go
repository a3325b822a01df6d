package services

import (
	"context"
	"fmt"

	"github.com/traceleaf/docrag/internal/core/domain"
	"github.com/traceleaf/docrag/internal/core/ports/driven"
	"github.com/traceleaf/docrag/internal/logger"
)

// Retriever answers nearest-neighbour lookups for natural-language
// queries: it embeds the query as a single-item batch and searches the
// vector store with the configured topK.
type Retriever struct {
	embedder    driven.EmbeddingService
	vectorStore driven.VectorStore
	topK        int
}

// NewRetriever creates a retriever over the given embedder and store.
func NewRetriever(embedder driven.EmbeddingService, vectorStore driven.VectorStore, topK int) *Retriever {
	return &Retriever{
		embedder:    embedder,
		vectorStore: vectorStore,
		topK:        topK,
	}
}

// Retrieve returns ranked, scored chunk references for the query.
// Results preserve the vector store's ordering; an empty corpus or an
// index smaller than topK yields a shorter (possibly empty) result,
// never an error.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]domain.RetrievedChunk, error) {
	vectors, err := r.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: %d vectors for single-item batch",
			domain.ErrEmbeddingFailed, len(vectors))
	}

	results, err := r.vectorStore.Search(vectors[0], r.topK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	logger.Debug("Retrieved %d of top %d chunks", len(results), r.topK)
	return results, nil
}
