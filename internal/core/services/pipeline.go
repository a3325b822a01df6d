package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/traceleaf/docrag/internal/core/domain"
	"github.com/traceleaf/docrag/internal/core/ports/driven"
	"github.com/traceleaf/docrag/internal/core/ports/driving"
	"github.com/traceleaf/docrag/internal/logger"
	"github.com/traceleaf/docrag/internal/segmenter"
)

// Ensure PipelineService implements the interface.
var _ driving.Pipeline = (*PipelineService)(nil)

// PipelineConfig carries the retrieval options one pipeline instance is
// scoped to. It is an explicit value, not process-wide state.
type PipelineConfig struct {
	// WindowSize is the segmentation window in characters.
	WindowSize int

	// Overlap is the segmentation overlap in characters.
	Overlap int

	// TopK is the maximum number of chunks a query retrieves.
	TopK int

	// IndexPath is the similarity-index file location.
	IndexPath string

	// MetadataPath is the chunk-metadata file location.
	MetadataPath string
}

// PipelineService composes the ingest path (segment -> embed -> build ->
// persist) and the query path (embed -> search -> compose). It owns the
// coupled lifecycle of the index and its metadata.
//
// Execution is synchronous: every operation runs to completion before the
// next begins. The service assumes a single writer (one ingest at a time)
// and any number of readers.
type PipelineService struct {
	cfg       PipelineConfig
	loader    driven.DocumentLoader
	embedder  driven.EmbeddingService
	store     driven.VectorStore
	composer  driven.AnswerComposer
	queryLog  driven.QueryLogStore
	segmenter *segmenter.Segmenter
	retriever *Retriever
}

// NewPipelineService wires the pipeline from its collaborators.
// The queryLog is optional: nil disables audit logging.
func NewPipelineService(
	cfg PipelineConfig,
	loader driven.DocumentLoader,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	composer driven.AnswerComposer,
	queryLog driven.QueryLogStore,
) *PipelineService {
	return &PipelineService{
		cfg:      cfg,
		loader:   loader,
		embedder: embedder,
		store:    store,
		composer: composer,
		queryLog: queryLog,
		segmenter: segmenter.New(
			segmenter.WithWindowSize(cfg.WindowSize),
			segmenter.WithOverlap(cfg.Overlap),
		),
		retriever: NewRetriever(embedder, store, cfg.TopK),
	}
}

// Ingest builds a new index generation from scratch: a full rebuild,
// never an incremental merge. Any stage failure surfaces the originating
// component's error; a failed ingest never claims success.
func (p *PipelineService) Ingest(ctx context.Context, root string) (int, error) {
	logger.Section("Ingest")
	logger.Debug("Document root: %s", root)

	docs, err := p.loader.Load(ctx, root)
	if err != nil {
		return 0, err
	}
	logger.Info("Loaded %d documents", len(docs))

	// Map order is random; segment in sorted source order so chunk
	// insertion positions are deterministic across runs.
	sources := make([]string, 0, len(docs))
	for source := range docs {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	var chunks []domain.Chunk
	for _, source := range sources {
		segmented, err := p.segmenter.Segment(source, docs[source])
		if err != nil {
			return 0, err
		}
		chunks = append(chunks, segmented...)
	}
	logger.Info("Segmented into %d chunks", len(chunks))

	if len(chunks) == 0 {
		return 0, domain.ErrEmptyIndex
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrEmbeddingFailed, err)
	}
	logger.Debug("Embedded %d chunks with %s", len(vectors), p.embedder.ModelName())

	if err := p.store.Build(vectors, chunks); err != nil {
		return 0, err
	}

	if err := p.store.Persist(p.cfg.IndexPath, p.cfg.MetadataPath); err != nil {
		return 0, err
	}
	logger.Info("Persisted generation: %d vectors", p.store.Len())

	return len(chunks), nil
}

// LoadIndex restores the most recent persisted generation. Idempotent.
func (p *PipelineService) LoadIndex() error {
	return p.store.Restore(p.cfg.IndexPath, p.cfg.MetadataPath)
}

// Ask retrieves relevant chunks and delegates answer composition.
// An empty retrieval is a valid "no relevant context found" answer.
func (p *PipelineService) Ask(ctx context.Context, query string) (domain.Answer, error) {
	logger.Section("Ask")
	logger.Debug("Query: %q", query)

	rows, err := p.retriever.Retrieve(ctx, query)
	if err != nil {
		return domain.Answer{}, err
	}

	contexts := make([]domain.AnswerContext, len(rows))
	for i, row := range rows {
		contexts[i] = domain.AnswerContext{
			Source:  row.Chunk.Source,
			ChunkID: row.Chunk.ID,
			Score:   row.Score,
			Text:    row.Chunk.Text,
		}
	}

	answer := domain.Answer{
		Query:    query,
		Answer:   p.composer.Compose(query, rows),
		Contexts: contexts,
	}

	p.recordQuery(ctx, query, rows)

	return answer, nil
}

// recordQuery appends the query to the audit log when one is configured.
// Audit failures are logged, never surfaced: they must not fail an ask.
func (p *PipelineService) recordQuery(ctx context.Context, query string, rows []domain.RetrievedChunk) {
	if p.queryLog == nil {
		return
	}

	rec := driven.QueryRecord{
		Query:       query,
		ResultCount: len(rows),
		AskedAt:     time.Now().UTC(),
	}
	if len(rows) > 0 {
		rec.TopScore = rows[0].Score
	}

	if err := p.queryLog.Record(ctx, rec); err != nil {
		logger.Warn("Query audit record failed: %v", err)
	}
}
