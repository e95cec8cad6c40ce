// Package playground implements a bubbletea Model that drives the vim core
// interactively, one real keypress at a time, for manual exploration of a
// challenge fixture outside of a scored run.
package playground

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vimgolf-core/vimgolf/internal/vim"
)

const footerHeight = 2

var (
	statusBarStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cursorLineStyle = lipgloss.NewStyle().Background(lipgloss.Color("236"))

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Model is the tea.Model for the interactive playground.
type Model struct {
	state       *vim.EditorState
	challengeID string
	keystrokes  []string // tokens fed so far, for the footer counter
	vp          viewport.Model
	ready       bool
	quitting    bool
}

// New creates a playground seeded with startText. challengeID is shown in
// the status bar and may be empty for an unnamed buffer.
func New(challengeID, startText string) Model {
	return Model{
		state:       vim.NewDriverState(startText),
		challengeID: challengeID,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-footerHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - footerHeight
		}
		m.vp.SetContent(m.renderBuffer())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}

		tok := tokenFromKey(msg)
		if tok == "" {
			return m, nil
		}
		_ = m.state.Step(tok)
		m.keystrokes = append(m.keystrokes, tok)
		if m.ready {
			m.vp.SetContent(m.renderBuffer())
			m.followCursor()
		}
		return m, nil
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "initializing...\n"
	}

	status := fmt.Sprintf(" %s | %d,%d | %d keys ",
		m.state.Mode.String(), m.state.Cursor.Line+1, m.state.Cursor.Col+1, len(m.keystrokes))
	if m.challengeID != "" {
		status = fmt.Sprintf(" %s ", m.challengeID) + status
	}
	if m.state.Mode == vim.ModeCommandLine && m.state.CommandLine != nil {
		status += m.state.CommandLine.Prefix + m.state.CommandLine.Buffer
	}

	var b strings.Builder
	b.WriteString(m.vp.View())
	b.WriteByte('\n')
	b.WriteString(statusBarStyle.Render(status))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render("ctrl-c to quit"))

	return b.String()
}

// renderBuffer renders every line of the buffer, highlighting the cursor's
// grapheme on the cursor's line.
func (m Model) renderBuffer() string {
	var b strings.Builder
	for i, line := range m.state.Lines {
		if i == m.state.Cursor.Line {
			b.WriteString(renderCursorLine(line, m.state.Cursor.Col))
		} else {
			b.WriteString(line)
		}
		if i < len(m.state.Lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// followCursor scrolls the viewport so the cursor's line stays visible.
func (m *Model) followCursor() {
	line := m.state.Cursor.Line
	if line < m.vp.YOffset {
		m.vp.SetYOffset(line)
	} else if line >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(line - m.vp.Height + 1)
	}
}

// renderCursorLine highlights the grapheme at col within line.
func renderCursorLine(line string, col int) string {
	clusters := splitGraphemes(line)
	if col < 0 || col >= len(clusters) {
		return line + cursorLineStyle.Render(" ")
	}
	before := strings.Join(clusters[:col], "")
	at := clusters[col]
	after := strings.Join(clusters[col+1:], "")
	return before + cursorLineStyle.Render(at) + after
}

func splitGraphemes(s string) []string {
	var out []string
	iter := vim.NewGraphemeIterator(s)
	for iter.Next() {
		out = append(out, iter.Cluster())
	}
	return out
}
