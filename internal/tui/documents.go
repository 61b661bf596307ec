package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) updateDocuments(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.view = ViewChat
		return m, nil
	case "r":
		m.docsLoading = true
		return m, tea.Batch(m.loadDocumentsCmd(), m.spinner.Tick)
	}
	return m, nil
}

func (m Model) viewDocuments() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)
	muted := lipgloss.NewStyle().Foreground(m.theme.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Indexed documents") + "\n\n")

	switch {
	case m.docsLoading:
		b.WriteString(m.spinner.View() + muted.Render("Loading...") + "\n")
	case m.docsErr != nil:
		errStyle := lipgloss.NewStyle().Foreground(m.theme.Error)
		b.WriteString(errStyle.Render("Could not list documents: "+m.docsErr.Error()) + "\n")
	case len(m.docs) == 0:
		b.WriteString(muted.Render("No documents indexed yet. Use `ragchat upload <file>` to add some.") + "\n")
	default:
		bullet := lipgloss.NewStyle().Foreground(m.theme.Accent)
		for _, name := range m.docs {
			b.WriteString(fmt.Sprintf("  %s %s\n", bullet.Render("•"), name))
		}
		b.WriteString("\n" + muted.Render(fmt.Sprintf("%d document(s)", len(m.docs))) + "\n")
	}

	return m.fillBody(b.String())
}

// fillBody pads a view to the viewport height so the footer stays put.
func (m Model) fillBody(s string) string {
	return lipgloss.NewStyle().
		PaddingLeft(1).
		Height(m.viewportHeight() + 5).
		Render(s)
}
