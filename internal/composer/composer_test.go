package composer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/traceleaf/docrag/internal/core/domain"
)

func TestCompose_WithContext(t *testing.T) {
	chunk := domain.Chunk{
		ID:     "x:0",
		Source: "x",
		Title:  "t",
		Text:   "SELECT statement example",
	}
	out := New().Compose("how to query", []domain.RetrievedChunk{{Chunk: chunk, Score: 0.9}})

	assert.Contains(t, out, "Question: how to query")
	assert.Contains(t, out, "SELECT statement example")
	assert.Contains(t, out, "[1] Source: x | Score: 0.900")
	assert.Contains(t, out, "Draft answer:")
}

func TestCompose_EmptyContexts(t *testing.T) {
	out := New().Compose("anything", nil)
	assert.Equal(t, domain.NoContextAnswer, out)
}

func TestCompose_OrderAndNewlines(t *testing.T) {
	contexts := []domain.RetrievedChunk{
		{Chunk: domain.Chunk{ID: "a:0", Source: "a", Text: "first\nhit"}, Score: 0.8},
		{Chunk: domain.Chunk{ID: "b:3", Source: "b", Text: "second hit"}, Score: 0.5},
	}
	out := New().Compose("q", contexts)

	// Citations keep retrieval order and excerpts are single-line.
	assert.Less(t, strings.Index(out, "[1] Source: a"), strings.Index(out, "[2] Source: b"))
	assert.Contains(t, out, "first hit")
	assert.NotContains(t, out, "first\nhit")
}

func TestCompose_LongExcerptTruncated(t *testing.T) {
	long := strings.Repeat("z", 2*maxExcerptLen)
	out := New().Compose("q", []domain.RetrievedChunk{
		{Chunk: domain.Chunk{ID: "a:0", Source: "a", Text: long}, Score: 1},
	})

	assert.Contains(t, out, strings.Repeat("z", maxExcerptLen))
	assert.NotContains(t, out, strings.Repeat("z", maxExcerptLen+1))
}

func TestCompose_MultibyteExcerptStaysValidUTF8(t *testing.T) {
	long := strings.Repeat("ü", 2*maxExcerptLen)
	out := New().Compose("q", []domain.RetrievedChunk{
		{Chunk: domain.Chunk{ID: "a:0", Source: "a", Text: long}, Score: 1},
	})

	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("ü", maxExcerptLen))
	assert.NotContains(t, out, strings.Repeat("ü", maxExcerptLen+1))
}
