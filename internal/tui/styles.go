package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme for the TUI.
type Theme struct {
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Border    lipgloss.Color
	User      lipgloss.Color
	Assistant lipgloss.Color
}

var darkTheme = Theme{
	Primary:   "#CBA6F7",
	Accent:    "#89B4FA",
	Success:   "#A6E3A1",
	Warning:   "#F9E2AF",
	Error:     "#F38BA8",
	Text:      "#CDD6F4",
	TextMuted: "#6C7086",
	Border:    "#45475A",
	User:      "#89B4FA",
	Assistant: "#A6E3A1",
}

var lightTheme = Theme{
	Primary:   "#8839EF",
	Accent:    "#1E66F5",
	Success:   "#40A02B",
	Warning:   "#DF8E1D",
	Error:     "#D20F39",
	Text:      "#4C4F69",
	TextMuted: "#9CA0B0",
	Border:    "#BCC0CC",
	User:      "#1E66F5",
	Assistant: "#40A02B",
}

// themeFor maps a config theme name to a Theme. Unknown names fall back
// to dark.
func themeFor(name string) Theme {
	if name == "light" {
		return lightTheme
	}
	return darkTheme
}
