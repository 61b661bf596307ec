package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hkapoor246/rag-ai-app/internal/chat"
)

func (m Model) updateModelPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	models := chat.SupportedModels()

	switch msg.String() {
	case "esc", "q":
		m.view = ViewChat
		return m, nil
	case "up", "k":
		if m.modelIdx > 0 {
			m.modelIdx--
		}
	case "down", "j":
		if m.modelIdx < len(models)-1 {
			m.modelIdx++
		}
	case "enter":
		if err := m.session.Models.Select(models[m.modelIdx]); err != nil {
			m.setStatus(err.Error())
		} else {
			m.setStatus("Model set to " + models[m.modelIdx])
		}
		m.view = ViewChat
		return m, nil
	}
	return m, nil
}

func (m Model) viewModelPicker() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)
	cursor := lipgloss.NewStyle().Foreground(m.theme.Accent)
	current := lipgloss.NewStyle().Foreground(m.theme.Success)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Select model") + "\n\n")

	active := m.session.Models.Current()
	for i, id := range chat.SupportedModels() {
		line := "  " + id
		if id == active {
			line += current.Render("  (current)")
		}
		if i == m.modelIdx {
			line = cursor.Render("▸ " + id)
			if id == active {
				line += current.Render("  (current)")
			}
		}
		b.WriteString(line + "\n")
	}

	return m.fillBody(b.String())
}
