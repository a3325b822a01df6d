package driving

import (
	"context"

	"github.com/traceleaf/docrag/internal/core/domain"
)

// Pipeline exposes the retrieval pipeline to external shims.
//
// Ingest and Ask are independent entry operations sharing the underlying
// storage: ingest builds a new index generation from scratch (full
// rebuild, no incremental merge); a query loads the most recent persisted
// generation and searches against it.
type Pipeline interface {
	// Ingest segments, embeds, indexes and persists all documents under
	// root, returning the number of indexed chunks. A failed ingest never
	// claims success, though it may leave stale files from a prior
	// generation overwritten mid-write.
	Ingest(ctx context.Context, root string) (int, error)

	// LoadIndex restores the latest persisted generation. Idempotent;
	// shims may call it before every query.
	LoadIndex() error

	// Ask retrieves relevant chunks for the query and composes a cited
	// answer. An empty retrieval yields the fixed no-context answer with
	// empty contexts, not an error.
	Ask(ctx context.Context, query string) (domain.Answer, error)
}
