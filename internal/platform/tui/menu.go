package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

const usernameLimit = 32

// StartKeyMap defines the key bindings for the start form.
type StartKeyMap struct {
	Start  key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StartKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StartKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultStartKeyMap returns default key bindings. Letters are left to the
// text field.
func DefaultStartKeyMap() StartKeyMap {
	return StartKeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start game"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// StartModel is the Bubble Tea model for the start form.
type StartModel struct {
	input      textinput.Model
	keys       StartKeyMap
	help       help.Model
	config     core.RuntimeConfig
	width      int
	height     int
	err        error
	username   string
	wantScores bool
	quitting   bool
}

// NewStartModel creates the start form, prefilled with the last username.
func NewStartModel(cfg core.RuntimeConfig, lastUsername string) StartModel {
	ti := textinput.New()
	ti.Placeholder = "Enter username"
	ti.CharLimit = usernameLimit
	ti.Width = usernameLimit
	ti.Prompt = "> "
	ti.SetValue(lastUsername)
	ti.Focus()

	return StartModel{
		input:  ti,
		keys:   DefaultStartKeyMap(),
		help:   help.New(),
		config: cfg,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
}

// Init starts the cursor blinking.
func (m StartModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the start form.
func (m StartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Scores):
			m.wantScores = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Start):
			name, err := snake.ValidateUsername(m.input.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.username = name
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if _, typed := msg.(tea.KeyMsg); typed {
		m.err = nil
	}
	return m, cmd
}

// View renders the start form.
func (m StartModel) View() string {
	if m.quitting || m.wantScores || m.username != "" {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S N A K E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Username", m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(centerText(errorStyle.Render(m.err.Error()), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText(mutedStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Username returns the validated username once the form was submitted.
func (m StartModel) Username() string {
	return m.username
}

// Err returns the validation error currently shown, if any.
func (m StartModel) Err() error {
	return m.err
}

// WantsScores returns true if user requested the score log.
func (m StartModel) WantsScores() bool {
	return m.wantScores
}

// IsQuitting returns true if user requested to quit.
func (m StartModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m StartModel) Config() core.RuntimeConfig {
	return m.config
}

// StartResult holds the result of running the start form.
type StartResult struct {
	Username    string
	Config      core.RuntimeConfig
	WantsScores bool
	Quit        bool
}

// RunStart runs the start form and returns the user's choice.
func RunStart(cfg core.RuntimeConfig, lastUsername string) (StartResult, error) {
	model := NewStartModel(cfg, lastUsername)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return StartResult{Config: cfg}, err
	}

	m, ok := finalModel.(StartModel)
	if !ok {
		return StartResult{Config: cfg, Quit: true}, nil
	}

	result := StartResult{Config: m.Config()}
	switch {
	case m.WantsScores():
		result.WantsScores = true
	case m.Username() != "":
		result.Username = m.Username()
	default:
		result.Quit = true
	}
	return result, nil
}
