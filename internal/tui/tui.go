// Package tui is the interactive terminal frontend: a chat view over the
// conversation session, plus thin views for the indexed document list and
// the embedding map.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hkapoor246/rag-ai-app/internal/api"
	"github.com/hkapoor246/rag-ai-app/internal/chat"
	"github.com/hkapoor246/rag-ai-app/internal/config"
	"github.com/hkapoor246/rag-ai-app/internal/tui/components"
)

// View identifies which screen is showing.
type View int

const (
	ViewChat View = iota
	ViewDocuments
	ViewMap
	ViewModels
)

// Model is the bubbletea model for the whole TUI.
type Model struct {
	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	markdown *components.MarkdownRenderer

	// Dependencies. The session outlives any one view: switching to the
	// documents or map screen and back never resets the conversation.
	session *chat.Session
	orch    *chat.Orchestrator
	client  *api.Client
	cfg     *config.Config
	theme   Theme

	// State
	view         View
	width        int
	height       int
	focusInput   bool // true = textarea focused, false = transcript focused
	statusMsg    string
	statusExpiry time.Time

	// Source-panel selection: IDs of assistant messages carrying sources,
	// in log order, and the index the n/p keys move.
	sourced  []string
	selected int

	// Documents view
	docs        []string
	docsErr     error
	docsLoading bool

	// Map view
	points     []api.Point
	pointsErr  error
	mapLoading bool

	// Model picker
	modelIdx int
}

// New builds the TUI model around an existing session and orchestrator.
func New(session *chat.Session, orch *chat.Orchestrator, client *api.Client, cfg *config.Config) Model {
	ta := textarea.New()
	ta.Placeholder = "Ask a question about your documents..."
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.CharLimit = 0
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	theme := themeFor(cfg.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	vp := viewport.New(80, 20)

	md, _ := components.NewMarkdownRenderer(76, cfg.Theme)

	return Model{
		viewport:   vp,
		textarea:   ta,
		spinner:    sp,
		markdown:   md,
		session:    session,
		orch:       orch,
		client:     client,
		cfg:        cfg,
		theme:      theme,
		view:       ViewChat,
		focusInput: true,
		selected:   -1,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// ─── Messages ───────────────────────────────────────────────────────────────

// turnDoneMsg signals that an exchange finished. The outcome is already in
// the log; err is kept for the status line only.
type turnDoneMsg struct {
	err error
}

type documentsMsg struct {
	names []string
	err   error
}

type pointsMsg struct {
	points []api.Point
	err    error
}

// ─── Commands ───────────────────────────────────────────────────────────────

func exchangeCmd(turn *chat.Turn) tea.Cmd {
	return func() tea.Msg {
		return turnDoneMsg{err: turn.Exchange(context.Background())}
	}
}

func (m Model) loadDocumentsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		names, err := client.ListDocuments(context.Background())
		return documentsMsg{names: names, err: err}
	}
}

func (m Model) loadPointsCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		points, err := client.Visualize(context.Background())
		return pointsMsg{points: points, err: err}
	}
}

// ─── Update ─────────────────────────────────────────────────────────────────

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 2
		m.viewport.Height = m.viewportHeight()
		m.textarea.SetWidth(msg.Width - 4)
		if m.markdown != nil {
			m.markdown.SetWidth(m.viewport.Width - 4)
		}
		m.updateViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case turnDoneMsg:
		if msg.err != nil {
			m.setStatus("Exchange failed: " + msg.err.Error())
		}
		m.viewport.Height = m.viewportHeight()
		m.updateViewport()
		return m, nil

	case documentsMsg:
		m.docsLoading = false
		m.docs = msg.names
		m.docsErr = msg.err
		return m, nil

	case pointsMsg:
		m.mapLoading = false
		m.points = msg.points
		m.pointsErr = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.orch.Sending() || m.docsLoading || m.mapLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Forward everything else to the focused components.
	if m.view == ViewChat && m.focusInput {
		var cmd tea.Cmd
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+d":
		m.view = ViewDocuments
		m.docsLoading = true
		return m, tea.Batch(m.loadDocumentsCmd(), m.spinner.Tick)
	case "ctrl+e":
		m.view = ViewMap
		m.mapLoading = true
		return m, tea.Batch(m.loadPointsCmd(), m.spinner.Tick)
	case "ctrl+p":
		m.view = ViewModels
		m.modelIdx = indexOfModel(m.session.Models.Current())
		return m, nil
	}

	switch m.view {
	case ViewChat:
		return m.updateChat(msg)
	case ViewDocuments:
		return m.updateDocuments(msg)
	case ViewMap:
		return m.updateMap(msg)
	case ViewModels:
		return m.updateModelPicker(msg)
	}
	return m, nil
}

// ─── Layout helpers ─────────────────────────────────────────────────────────

// viewportHeight reserves rows for header, input block, and footer.
func (m *Model) viewportHeight() int {
	h := m.height - 1 - 5 - 1 // header, textarea block, footer
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusExpiry = time.Now().Add(5 * time.Second)
}

func indexOfModel(name string) int {
	for i, id := range chat.SupportedModels() {
		if id == name {
			return i
		}
	}
	return 0
}

// ─── View ───────────────────────────────────────────────────────────────────

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	switch m.view {
	case ViewChat:
		body = m.viewChat()
	case ViewDocuments:
		body = m.viewDocuments()
	case ViewMap:
		body = m.viewMap()
	case ViewModels:
		body = m.viewModelPicker()
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render("ragchat")
	model := lipgloss.NewStyle().Foreground(m.theme.Accent).Render(m.session.Models.Current())
	server := lipgloss.NewStyle().Foreground(m.theme.TextMuted).Render(m.client.BaseURL())
	return fmt.Sprintf(" %s  %s  %s", title, model, server)
}

func (m Model) renderFooter() string {
	if m.statusMsg != "" && time.Now().Before(m.statusExpiry) {
		return lipgloss.NewStyle().Foreground(m.theme.Warning).Render(" " + m.statusMsg)
	}

	var help string
	switch m.view {
	case ViewChat:
		help = "enter send · tab transcript · ctrl+p model · ctrl+d docs · ctrl+e map · ctrl+c quit"
		if !m.focusInput {
			help = "j/k scroll · n/p pick answer · enter sources · esc input · ctrl+c quit"
		}
	case ViewDocuments:
		help = "r refresh · esc back · ctrl+c quit"
	case ViewMap:
		help = "r refresh · esc back · ctrl+c quit"
	case ViewModels:
		help = "j/k move · enter select · esc cancel"
	}
	return lipgloss.NewStyle().Foreground(m.theme.TextMuted).Render(" " + help)
}
