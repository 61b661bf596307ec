package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/hkapoor246/rag-ai-app/internal/chat"
)

// ─── Chat keys ──────────────────────────────────────────────────────────────

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focusInput {
		switch msg.String() {
		case "enter":
			turn, ok := m.orch.Submit(m.textarea.Value())
			if !ok {
				// Blank input or a turn still in flight: per the
				// backpressure policy the submit is dropped silently
				// and the typed input stays put.
				return m, nil
			}
			m.textarea.Reset()
			m.viewport.Height = m.viewportHeight()
			m.updateViewport()
			return m, tea.Batch(exchangeCmd(turn), m.spinner.Tick)
		case "tab":
			m.focusInput = false
			m.textarea.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		return m, cmd
	}

	// Transcript focused
	switch msg.String() {
	case "tab", "esc", "i":
		m.focusInput = true
		m.textarea.Focus()
		return m, textarea.Blink
	case "up", "k":
		m.viewport.LineUp(1)
	case "down", "j":
		m.viewport.LineDown(1)
	case "pgup":
		m.viewport.HalfViewUp()
	case "pgdown":
		m.viewport.HalfViewDown()
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	case "p":
		if len(m.sourced) > 0 && m.selected > 0 {
			m.selected--
			m.refreshTranscript()
		}
	case "n":
		if len(m.sourced) > 0 && m.selected < len(m.sourced)-1 {
			m.selected++
			m.refreshTranscript()
		}
	case "enter", "o":
		if m.selected >= 0 && m.selected < len(m.sourced) {
			m.session.Attribution.Toggle(m.sourced[m.selected])
			m.refreshTranscript()
		}
	}
	return m, nil
}

// ─── Transcript rendering ───────────────────────────────────────────────────

// updateViewport rebuilds the transcript and pins the viewport to the
// newest message. Called whenever the log or the in-flight state changes.
func (m *Model) updateViewport() {
	msgs := m.session.Log.Snapshot()

	grew := false
	prev := len(m.sourced)
	m.sourced = m.sourced[:0]
	for _, msg := range msgs {
		if msg.Sender == chat.SenderAssistant && msg.HasSources() {
			m.sourced = append(m.sourced, msg.ID)
		}
	}
	if len(m.sourced) > prev {
		grew = true
	}
	if grew || m.selected >= len(m.sourced) {
		m.selected = len(m.sourced) - 1
	}

	m.viewport.SetContent(m.renderTranscript(msgs))
	m.viewport.GotoBottom()
}

// refreshTranscript re-renders without moving the scroll position, used
// for selection and panel toggles that don't grow the log.
func (m *Model) refreshTranscript() {
	offset := m.viewport.YOffset
	m.viewport.SetContent(m.renderTranscript(m.session.Log.Snapshot()))
	m.viewport.SetYOffset(offset)
}

func (m *Model) renderTranscript(msgs []chat.Message) string {
	var b strings.Builder
	contentWidth := m.contentWidth()

	for _, msg := range msgs {
		switch msg.Sender {
		case chat.SenderUser:
			m.renderUserMessage(&b, msg, contentWidth)
		case chat.SenderAssistant:
			m.renderAssistantMessage(&b, msg, contentWidth)
		}
	}

	if m.orch.Sending() {
		thinking := lipgloss.NewStyle().Foreground(m.theme.TextMuted).Italic(true)
		b.WriteString(m.spinner.View() + thinking.Render("Thinking...") + "\n")
	}

	if b.Len() == 0 {
		welcome := lipgloss.NewStyle().Foreground(m.theme.TextMuted)
		b.WriteString(welcome.Render("Upload documents with ctrl+d, then ask away.") + "\n")
	}

	return b.String()
}

func (m *Model) renderUserMessage(b *strings.Builder, msg chat.Message, width int) {
	label := lipgloss.NewStyle().Bold(true).Foreground(m.theme.User).Render("You")
	body := lipgloss.NewStyle().
		Border(lipgloss.Border{Left: "┃"}, false, false, false, true).
		BorderForeground(m.theme.User).
		PaddingLeft(1).
		Width(width).
		Render(msg.Text)
	b.WriteString(label + "\n" + body + "\n\n")
}

func (m *Model) renderAssistantMessage(b *strings.Builder, msg chat.Message, width int) {
	label := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Assistant).Render("Assistant")
	b.WriteString(label + "\n")

	text := msg.Text
	if m.markdown != nil {
		text = m.markdown.Render(msg.Text)
	}
	b.WriteString(strings.TrimRight(text, "\n") + "\n")

	if msg.HasSources() {
		m.renderSourceFooter(b, msg, width)
	}
	b.WriteString("\n")
}

// renderSourceFooter draws the attribution toggle line and, when this
// message's panel is expanded, the retrieved passages themselves.
func (m *Model) renderSourceFooter(b *strings.Builder, msg chat.Message, width int) {
	muted := lipgloss.NewStyle().Foreground(m.theme.TextMuted)
	accent := lipgloss.NewStyle().Foreground(m.theme.Accent)

	marker := "▸"
	if m.session.Attribution.Visible(msg.ID) {
		marker = "▾"
	}
	line := fmt.Sprintf("%s %d source", marker, len(msg.Sources))
	if len(msg.Sources) != 1 {
		line += "s"
	}
	if m.isSelected(msg.ID) {
		line = accent.Render(line + "  (enter to toggle)")
	} else {
		line = muted.Render(line)
	}
	b.WriteString(line + "\n")

	if !m.session.Attribution.Visible(msg.ID) {
		return
	}

	excerptStyle := lipgloss.NewStyle().
		Foreground(m.theme.TextMuted).
		PaddingLeft(2).
		Width(width)
	for _, src := range msg.Sources {
		origin := runewidth.Truncate(src.Origin, width-4, "…")
		b.WriteString("  " + accent.Render(origin) + "\n")
		excerpt := src.Excerpt
		if len(excerpt) > 500 {
			excerpt = excerpt[:500] + "…"
		}
		b.WriteString(excerptStyle.Render(excerpt) + "\n")
	}
}

func (m *Model) isSelected(id string) bool {
	return m.selected >= 0 && m.selected < len(m.sourced) && m.sourced[m.selected] == id
}

func (m *Model) contentWidth() int {
	w := m.viewport.Width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// ─── Chat view ──────────────────────────────────────────────────────────────

func (m Model) viewChat() string {
	borderColor := m.theme.Border
	if m.focusInput {
		borderColor = m.theme.Primary
	}
	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(m.width - 2).
		Render(m.textarea.View())

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), input)
}
