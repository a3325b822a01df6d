// Package composer assembles cited, context-grounded answers from
// retrieved chunks. It is deterministic: the answer is a pure function
// of the query and the ordered retrieval result.
package composer

import (
	"fmt"
	"strings"

	"github.com/traceleaf/docrag/internal/core/domain"
	"github.com/traceleaf/docrag/internal/core/ports/driven"
)

// Ensure Composer implements the interface.
var _ driven.AnswerComposer = (*Composer)(nil)

// maxExcerptLen caps the cited text per context in the answer body.
const maxExcerptLen = 500

// Composer renders a cited draft answer from retrieval contexts.
type Composer struct{}

// New creates a new composer.
func New() *Composer {
	return &Composer{}
}

// Compose returns the answer text for the query given its contexts.
// An empty context slice yields the fixed no-context answer.
func (c *Composer) Compose(query string, contexts []domain.RetrievedChunk) string {
	if len(contexts) == 0 {
		return domain.NoContextAnswer
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\n", query)
	b.WriteString("Relevant context:\n")

	for i, row := range contexts {
		fmt.Fprintf(&b, "[%d] Source: %s | Score: %.3f\n", i+1, row.Chunk.Source, row.Score)
		excerpt := strings.ReplaceAll(row.Chunk.Text, "\n", " ")
		if runes := []rune(excerpt); len(runes) > maxExcerptLen {
			// Cap by rune so a multibyte character is never split.
			excerpt = string(runes[:maxExcerptLen])
		}
		b.WriteString(excerpt)
		b.WriteString("\n\n")
	}

	b.WriteString("Draft answer:\n")
	b.WriteString("Use the context above to implement or explain the documented behaviour. " +
		"Validate against the release notes and system-specific customisation.")

	return b.String()
}
