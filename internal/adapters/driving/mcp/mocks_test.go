package mcp

import (
	"context"

	"github.com/traceleaf/docrag/internal/core/domain"
)

// mockPipeline is a configurable Pipeline implementation for tests.
type mockPipeline struct {
	answer      domain.Answer
	askErr      error
	loadErr     error
	ingestCount int
	ingestErr   error

	loadCalls  int
	lastQuery  string
	lastIngest string
}

func (m *mockPipeline) Ingest(_ context.Context, root string) (int, error) {
	m.lastIngest = root
	return m.ingestCount, m.ingestErr
}

func (m *mockPipeline) LoadIndex() error {
	m.loadCalls++
	return m.loadErr
}

func (m *mockPipeline) Ask(_ context.Context, query string) (domain.Answer, error) {
	m.lastQuery = query
	return m.answer, m.askErr
}
