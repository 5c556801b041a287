package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/scorelog"
)

// Rows used by the title, notice and help bar around the viewport.
const scoresChrome = 6

// ScoreboardKeyMap defines the key bindings for the score log viewer.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the score log verbatim, one run per line.
type ScoreboardModel struct {
	lines     []string
	notice    string
	viewport  viewport.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel loads the log and creates the viewer. A read failure is
// logged and leaves the viewer empty with a notice.
func NewScoreboardModel(backend scorelog.Backend, logger *log.Logger, width, height int) ScoreboardModel {
	if logger == nil {
		logger = log.Default()
	}

	m := ScoreboardModel{
		keys:     DefaultScoreboardKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
		viewport: viewport.New(width, max(1, height-scoresChrome)),
	}

	if backend == nil {
		m.notice = "Score saving is disabled."
	} else if lines, err := backend.ReadAll(); err != nil {
		logger.Error("could not read scores", "error", err)
		m.notice = fmt.Sprintf("Could not read scores: %v", err)
	} else {
		m.lines = lines
	}

	m.viewport.SetContent(m.content())
	return m
}

func (m ScoreboardModel) content() string {
	if len(m.lines) == 0 {
		return mutedStyle.Italic(true).Render("No scores recorded yet.")
	}
	return strings.Join(m.lines, "\n")
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-scoresChrome)
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("SCORES (%d)", len(m.lines))
	b.WriteString(titleStyle.MarginBottom(1).Render(centerText(title, m.width)))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(errorStyle.Render(m.notice))
	}
	b.WriteString("\n")

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("240"))
	b.WriteString(box.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Lines returns the loaded log lines.
func (m ScoreboardModel) Lines() []string {
	return m.lines
}

// Notice returns the message shown when the log could not be loaded.
func (m ScoreboardModel) Notice() string {
	return m.notice
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the score log viewer.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(backend scorelog.Backend, logger *log.Logger, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(backend, logger, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
