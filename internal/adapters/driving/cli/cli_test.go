package cli

import (
	"context"

	"github.com/traceleaf/docrag/internal/core/domain"
)

// mockPipeline replaces the wired pipeline in command tests.
type mockPipeline struct {
	ingestCount int
	ingestErr   error
	loadErr     error
	answer      domain.Answer
	askErr      error
}

func (m *mockPipeline) Ingest(context.Context, string) (int, error) {
	return m.ingestCount, m.ingestErr
}

func (m *mockPipeline) LoadIndex() error { return m.loadErr }

func (m *mockPipeline) Ask(context.Context, string) (domain.Answer, error) {
	return m.answer, m.askErr
}

// setupTestPipeline injects a mock pipeline and returns a cleanup func.
func setupTestPipeline(p *mockPipeline) func() {
	old := pipelineService
	pipelineService = p
	return func() {
		pipelineService = old
	}
}
