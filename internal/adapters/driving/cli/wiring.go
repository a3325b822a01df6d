package cli

import (
	"fmt"

	"github.com/traceleaf/docrag/internal/adapters/driven/embedding/ollama"
	"github.com/traceleaf/docrag/internal/adapters/driven/embedding/openai"
	"github.com/traceleaf/docrag/internal/adapters/driven/loader/filesystem"
	"github.com/traceleaf/docrag/internal/adapters/driven/storage/sqlite"
	"github.com/traceleaf/docrag/internal/adapters/driven/vector/flat"
	"github.com/traceleaf/docrag/internal/composer"
	"github.com/traceleaf/docrag/internal/config"
	"github.com/traceleaf/docrag/internal/core/ports/driven"
	"github.com/traceleaf/docrag/internal/core/services"
)

// ensurePipeline wires the pipeline from appConfig on first use.
// Tests bypass it by assigning pipelineService directly.
func ensurePipeline() error {
	if pipelineService != nil {
		return nil
	}

	pipeline, cleanup, err := buildPipeline(appConfig)
	if err != nil {
		return err
	}
	pipelineService = pipeline
	pipelineCleanup = cleanup
	return nil
}

// buildPipeline assembles a pipeline from configuration: filesystem
// loader, configured embedding provider, flat index, composer, and an
// optional SQLite query audit log.
func buildPipeline(cfg config.Config) (*services.PipelineService, func() error, error) {
	embedder, err := newEmbedder(cfg.Embedding)
	if err != nil {
		return nil, nil, err
	}

	var queryLog driven.QueryLogStore
	cleanup := func() error { return nil }
	if cfg.Storage.AuditDBPath != "" {
		store, err := sqlite.NewQueryLogStore(cfg.Storage.AuditDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open audit log: %w", err)
		}
		queryLog = store
		cleanup = store.Close
	}

	pipeline := services.NewPipelineService(
		services.PipelineConfig{
			WindowSize:   cfg.Chunking.WindowSize,
			Overlap:      cfg.Chunking.Overlap,
			TopK:         cfg.Retrieval.TopK,
			IndexPath:    cfg.Storage.IndexPath,
			MetadataPath: cfg.Storage.MetadataPath,
		},
		filesystem.New(),
		embedder,
		flat.New(),
		composer.New(),
		queryLog,
	)

	return pipeline, cleanup, nil
}

func newEmbedder(cfg config.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
