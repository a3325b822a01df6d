package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traceleaf/docrag/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with contexts", func(t *testing.T) {
		pipeline := &mockPipeline{
			answer: domain.Answer{
				Query:  "how are retries configured",
				Answer: "Retries are configured in the client section.",
				Contexts: []domain.AnswerContext{
					{Source: "client.md", ChunkID: "client.md:2", Score: 0.91, Text: "Retries..."},
				},
			},
		}

		server, err := NewServer(&Ports{Pipeline: pipeline})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Query: "how are retries configured"})

		require.NoError(t, err)
		assert.Equal(t, "Retries are configured in the client section.", output.Answer)
		require.Len(t, output.Contexts, 1)
		assert.Equal(t, "client.md", output.Contexts[0].Source)
		assert.Equal(t, "client.md:2", output.Contexts[0].ChunkID)
		assert.Equal(t, 0.91, output.Contexts[0].Score)
		assert.Equal(t, "how are retries configured", pipeline.lastQuery)
	})

	t.Run("reloads the index before asking", func(t *testing.T) {
		pipeline := &mockPipeline{}
		server, err := NewServer(&Ports{Pipeline: pipeline})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Query: "anything"})

		require.NoError(t, err)
		assert.Equal(t, 1, pipeline.loadCalls)
	})

	t.Run("propagates load errors", func(t *testing.T) {
		pipeline := &mockPipeline{loadErr: domain.ErrIndexNotFound}
		server, err := NewServer(&Ports{Pipeline: pipeline})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Query: "anything"})

		assert.ErrorIs(t, err, domain.ErrIndexNotFound)
	})

	t.Run("propagates ask errors", func(t *testing.T) {
		wantErr := errors.New("provider unavailable")
		pipeline := &mockPipeline{askErr: wantErr}
		server, err := NewServer(&Ports{Pipeline: pipeline})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Query: "anything"})

		assert.ErrorIs(t, err, wantErr)
	})
}

func TestServer_handleIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns indexed count", func(t *testing.T) {
		pipeline := &mockPipeline{ingestCount: 42}
		server, err := NewServer(&Ports{Pipeline: pipeline})
		require.NoError(t, err)

		_, output, err := server.handleIngest(ctx, nil, IngestInput{Path: "/docs"})

		require.NoError(t, err)
		assert.Equal(t, 42, output.Indexed)
		assert.Equal(t, "/docs", pipeline.lastIngest)
	})

	t.Run("propagates ingest errors", func(t *testing.T) {
		pipeline := &mockPipeline{ingestErr: domain.ErrSourceNotFound}
		server, err := NewServer(&Ports{Pipeline: pipeline})
		require.NoError(t, err)

		_, _, err = server.handleIngest(ctx, nil, IngestInput{Path: "/missing"})

		assert.ErrorIs(t, err, domain.ErrSourceNotFound)
	})
}
