package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traceleaf/docrag/internal/core/domain"
)

type mockPipeline struct {
	answer  domain.Answer
	askErr  error
	queries []string
}

func (m *mockPipeline) Ingest(context.Context, string) (int, error) { return 0, nil }
func (m *mockPipeline) LoadIndex() error                            { return nil }

func (m *mockPipeline) Ask(_ context.Context, query string) (domain.Answer, error) {
	m.queries = append(m.queries, query)
	return m.answer, m.askErr
}

func pressKey(m Model, key string) Model {
	var msg tea.Msg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func askedModel(t *testing.T, pipeline *mockPipeline, query string) Model {
	t.Helper()

	m := New(context.Background(), pipeline)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	m.input.SetValue(query)
	return pressKey(m, "enter")
}

func TestEnterAsksPipeline(t *testing.T) {
	pipeline := &mockPipeline{
		answer: domain.Answer{
			Query:  "how do I configure auth",
			Answer: "Auth is configured via the credentials file.",
			Contexts: []domain.AnswerContext{
				{Source: "auth.md", ChunkID: "auth.md:0", Score: 0.9, Text: "Credentials..."},
			},
		},
	}

	m := askedModel(t, pipeline, "how do I configure auth")

	require.Equal(t, []string{"how do I configure auth"}, pipeline.queries)
	assert.Contains(t, m.renderAnswer(), "Auth is configured via the credentials file.")
	assert.Contains(t, m.renderAnswer(), "auth.md")
}

func TestEnterIgnoresBlankQuery(t *testing.T) {
	pipeline := &mockPipeline{}

	m := New(context.Background(), pipeline)
	m.input.SetValue("   ")
	pressKey(m, "enter")

	assert.Empty(t, pipeline.queries)
}

func TestAskErrorShowsStatus(t *testing.T) {
	pipeline := &mockPipeline{askErr: errors.New("provider down")}

	m := askedModel(t, pipeline, "anything")

	assert.Contains(t, m.status, "provider down")
	assert.Equal(t, "No answer yet.", m.renderAnswer())
}

func TestCursorWrapsAroundContexts(t *testing.T) {
	pipeline := &mockPipeline{
		answer: domain.Answer{
			Answer: "answer",
			Contexts: []domain.AnswerContext{
				{Source: "a.md", ChunkID: "a.md:0", Score: 0.9, Text: "first"},
				{Source: "b.md", ChunkID: "b.md:0", Score: 0.8, Text: "second"},
			},
		},
	}

	m := askedModel(t, pipeline, "q")
	assert.Equal(t, 0, m.cursor)

	m = pressKey(m, "down")
	assert.Equal(t, 1, m.cursor)

	m = pressKey(m, "down")
	assert.Equal(t, 0, m.cursor, "cursor should wrap forward")

	m = pressKey(m, "up")
	assert.Equal(t, 1, m.cursor, "cursor should wrap backward")
}

func TestViewBeforeWindowSize(t *testing.T) {
	m := New(context.Background(), &mockPipeline{})

	assert.Equal(t, "Loading...", m.View())
}
