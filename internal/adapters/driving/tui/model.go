// Package tui implements the interactive terminal interface for asking
// questions against the indexed documentation.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/traceleaf/docrag/internal/core/domain"
	"github.com/traceleaf/docrag/internal/core/ports/driving"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	answerStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// Model is the Bubble Tea model for the ask interface.
type Model struct {
	pipeline driving.Pipeline
	ctx      context.Context

	input    textinput.Model
	viewport viewport.Model

	answer domain.Answer
	cursor int
	status string
	ready  bool
	asked  bool
}

// New creates a TUI model over the given pipeline.
func New(ctx context.Context, pipeline driving.Pipeline) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	vp := viewport.New(0, 0)

	return Model{
		pipeline: pipeline,
		ctx:      ctx,
		input:    ti,
		viewport: vp,
		status:   "Index loaded. Type to ask.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ah := answerStyle.GetFrameSize()
		_, qh := queryStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, query box, spacer
		vh := msg.Height - reserved - ah
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderAnswer())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			query := strings.TrimSpace(m.input.Value())
			if query != "" {
				m.ask(query)
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		case "down":
			if len(m.answer.Contexts) > 0 {
				m.cursor = (m.cursor + 1) % len(m.answer.Contexts)
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		case "up":
			if len(m.answer.Contexts) > 0 {
				m.cursor = (m.cursor - 1 + len(m.answer.Contexts)) % len(m.answer.Contexts)
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ask runs a query against the pipeline and records the outcome.
func (m *Model) ask(query string) {
	answer, err := m.pipeline.Ask(m.ctx, query)
	if err != nil {
		m.status = errorStyle.Render("Error: " + err.Error())
		m.answer = domain.Answer{}
		m.asked = false
		return
	}
	m.answer = answer
	m.cursor = 0
	m.asked = true
	m.status = statusStyle.Render(fmt.Sprintf("Answered %q with %d source(s)", query, len(answer.Contexts)))
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("docrag")
	answer := answerStyle.Render(m.viewport.View())
	input := queryStyle.Render(m.input.View())
	return header + "\n" + answer + "\n" + input + "\n" + m.status
}

// renderAnswer renders the current answer with the selected context.
func (m Model) renderAnswer() string {
	if !m.asked {
		return "No answer yet."
	}

	var b strings.Builder
	b.WriteString(m.answer.Answer)

	if len(m.answer.Contexts) > 0 {
		ctx := m.answer.Contexts[m.cursor]
		b.WriteString("\n\n")
		b.WriteString(contextStyle.Render(
			fmt.Sprintf("Source %d/%d  %s  score=%.3f", m.cursor+1, len(m.answer.Contexts), ctx.Source, ctx.Score)))
		b.WriteString("\n\n")
		b.WriteString(ctx.Text)
		b.WriteString("\n\n")
		b.WriteString(sourceStyle.Render("up/down to browse sources, ctrl+c to quit"))
	}
	return b.String()
}
