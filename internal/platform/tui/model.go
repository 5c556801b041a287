package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// footerHeight is the number of terminal rows below the game screen.
const footerHeight = 1

// Model is the Bubble Tea model for a running snake session.
type Model struct {
	session    *snake.Session
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	keys       GameKeyMap
	help       help.Model
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	saveErr    error
	quitting   bool
	back       bool
}

// NewModel creates a new Bubble Tea model and starts the first run.
func NewModel(session *snake.Session, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	gameCfg := cfg
	gameCfg.ScreenH = max(0, cfg.ScreenH-footerHeight)
	session.Start(gameCfg)

	return Model{
		session:    session,
		screen:     core.NewScreen(gameCfg.ScreenW, gameCfg.ScreenH),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		keys:       DefaultGameKeyMap(session.Game().Rules().Cheats),
		help:       help.New(),
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		gameState:  session.Game().State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Direction keys are applied at once so
// the latest accepted turn wins; everything else waits for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if d, ok := snake.DirectionFromAction(action); ok {
		m.session.Game().Turn(d)
		return m, nil
	}

	switch action {
	case core.ActionBack:
		if m.gameState.GameOver {
			m.back = true
			return m, tea.Quit
		}
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	case core.ActionGrow, core.ActionPause:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize keeps the run going and only re-lays out the board.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := max(0, msg.Height-footerHeight)
	m.screen.Resize(msg.Width, h)
	m.session.Game().Resize(msg.Width, h)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result, err := m.session.Step(m.inputFrame)
	m.gameState = result.State
	if err != nil {
		m.saveErr = err
	} else if wasOver && !result.State.GameOver {
		m.saveErr = nil
	}

	m.inputFrame.Clear()
	m.keys.gameOver = m.gameState.GameOver

	return m, tickCmd(m.config.TickInterval)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.session.Game().Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

func (m Model) footer() string {
	if m.saveErr != nil {
		return errorStyle.Render(fmt.Sprintf("%s | score not saved: %v", m.session.Username(), m.saveErr))
	}
	status := m.session.Username() + " | "
	if best, ok := m.session.Best(); ok && m.gameState.GameOver {
		status = fmt.Sprintf("%s | best %d | ", m.session.Username(), best)
	}
	return mutedStyle.Render(status) + m.help.View(m.keys)
}

// Back returns true if the user asked to return to the start menu.
func (m Model) Back() bool {
	return m.back
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// GameResult holds the outcome of a game screen.
type GameResult struct {
	Config core.RuntimeConfig
	Back   bool
	Quit   bool
}

// Run starts the game screen for the session and blocks until the user
// leaves it.
func Run(session *snake.Session, cfg core.RuntimeConfig, logger *log.Logger) (GameResult, error) {
	model := NewModel(session, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return GameResult{Config: cfg}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return GameResult{Config: cfg, Quit: true}, nil
	}
	return GameResult{Config: m.Config(), Back: m.Back(), Quit: m.IsQuitting()}, nil
}
