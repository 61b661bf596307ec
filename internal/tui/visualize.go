package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hkapoor246/rag-ai-app/internal/tui/components"
)

func (m Model) updateMap(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.view = ViewChat
		return m, nil
	case "r":
		m.mapLoading = true
		return m, tea.Batch(m.loadPointsCmd(), m.spinner.Tick)
	}
	return m, nil
}

func (m Model) viewMap() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)
	muted := lipgloss.NewStyle().Foreground(m.theme.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Embedding map") + "\n\n")

	switch {
	case m.mapLoading:
		b.WriteString(m.spinner.View() + muted.Render("Projecting embeddings...") + "\n")
	case m.pointsErr != nil:
		errStyle := lipgloss.NewStyle().Foreground(m.theme.Error)
		b.WriteString(errStyle.Render("Could not load embedding map: "+m.pointsErr.Error()) + "\n")
	case len(m.points) == 0:
		b.WriteString(muted.Render("Nothing to plot. Upload a document first.") + "\n")
	default:
		plot := components.NewScatterPlot(m.width-4, m.viewportHeight()-2)
		b.WriteString(plot.Render(m.points))
	}

	return m.fillBody(b.String())
}
