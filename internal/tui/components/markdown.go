// Package components holds reusable rendering pieces for the ragchat TUI.
package components

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderer renders assistant answers, which the backend formats as
// markdown (lists, bolding, headings).
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
	width    int
	theme    string // preserved for SetWidth recreation
}

// ptr helpers
func boolPtr(b bool) *bool    { return &b }
func uintPtr(u uint) *uint    { return &u }
func strPtr(s string) *string { return &s }

// chatStyle builds a glamour StyleConfig with zero document margins so the
// output aligns with the transcript's message blocks.
func chatStyle(base ansi.StyleConfig) ansi.StyleConfig {
	s := base

	s.Document.Margin = uintPtr(0)
	s.Document.Indent = uintPtr(0)
	s.Paragraph.Margin = uintPtr(0)
	s.Paragraph.Indent = uintPtr(0)

	s.H1.Bold = boolPtr(true)
	s.H1.Color = strPtr("#CBA6F7")
	s.H1.Prefix = "  "
	s.H1.BlockPrefix = "\n"
	s.H1.BlockSuffix = "\n"
	s.H1.Margin = uintPtr(0)

	s.H2.Bold = boolPtr(true)
	s.H2.Color = strPtr("#89B4FA")
	s.H2.Prefix = "  "
	s.H2.BlockPrefix = "\n"
	s.H2.BlockSuffix = "\n"
	s.H2.Margin = uintPtr(0)

	s.H3.Bold = boolPtr(true)
	s.H3.Color = strPtr("#A6E3A1")
	s.H3.Prefix = "  "
	s.H3.BlockPrefix = "\n"
	s.H3.BlockSuffix = "\n"
	s.H3.Margin = uintPtr(0)

	s.List.Indent = uintPtr(2)
	s.List.LevelIndent = 2
	s.Item.Prefix = "• "
	s.Item.Color = strPtr("#CDD6F4")

	s.Enumeration.Color = strPtr("#89B4FA")
	s.Enumeration.Bold = boolPtr(false)

	s.Code.Color = strPtr("#F38BA8")
	s.Code.Bold = boolPtr(false)

	s.Emph.Italic = boolPtr(true)
	s.Emph.Color = strPtr("#A6ADC8")
	s.Strong.Bold = boolPtr(true)
	s.Strong.Color = strPtr("#CDD6F4")

	s.Link.Color = strPtr("#89B4FA")
	s.Link.Underline = boolPtr(true)
	s.LinkText.Color = strPtr("#89B4FA")

	s.BlockQuote.Indent = uintPtr(1)
	s.BlockQuote.IndentToken = strPtr("┃ ")
	s.BlockQuote.Color = strPtr("#A6ADC8")
	s.BlockQuote.Italic = boolPtr(true)
	s.BlockQuote.Margin = uintPtr(0)

	s.HorizontalRule.Color = strPtr("#45475A")
	s.HorizontalRule.Format = "────────────────────────────────────────\n"

	s.CodeBlock.Margin = uintPtr(0)
	s.CodeBlock.Indent = uintPtr(0)

	return s
}

// NewMarkdownRenderer creates a markdown renderer for the given wrap width
// and theme name.
func NewMarkdownRenderer(width int, theme string) (*MarkdownRenderer, error) {
	if width < 10 {
		width = 10
	}

	buildRenderer := func(base ansi.StyleConfig) (*glamour.TermRenderer, error) {
		return glamour.NewTermRenderer(glamour.WithStyles(chatStyle(base)), glamour.WithWordWrap(width))
	}

	var renderer *glamour.TermRenderer
	var err error
	switch theme {
	case "light":
		renderer, err = buildRenderer(styles.LightStyleConfig)
	case "notty":
		renderer, err = buildRenderer(styles.NoTTYStyleConfig)
	default:
		renderer, err = buildRenderer(styles.DarkStyleConfig)
	}
	if err != nil {
		// Fallback: plain word-wrap only
		renderer, _ = glamour.NewTermRenderer(glamour.WithWordWrap(width))
	}

	return &MarkdownRenderer{renderer: renderer, width: width, theme: theme}, nil
}

// Render renders markdown to terminal output. On failure the raw markdown
// is returned so the answer is never lost.
func (mr *MarkdownRenderer) Render(markdown string) string {
	if mr.renderer == nil {
		return markdown
	}
	rendered, err := mr.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

// SetWidth rebuilds the renderer at a new wrap width, preserving the theme.
func (mr *MarkdownRenderer) SetWidth(width int) {
	if width == mr.width {
		return
	}
	updated, err := NewMarkdownRenderer(width, mr.theme)
	if err == nil {
		mr.renderer = updated.renderer
		mr.width = width
	}
}
