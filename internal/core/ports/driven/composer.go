package driven

import "github.com/traceleaf/docrag/internal/core/domain"

// AnswerComposer assembles a cited answer from retrieved chunks.
// It is a pure function of the query and the ordered retrieval result;
// the pipeline treats answer quality as this collaborator's concern.
type AnswerComposer interface {
	// Compose returns the answer text for the query given its contexts.
	// An empty context slice produces the fixed no-context answer.
	Compose(query string, contexts []domain.RetrievedChunk) string
}
