package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "up", "w", "k":
		return core.ActionUp, false
	case "down", "s", "j":
		return core.ActionDown, false
	case "left", "a", "h":
		return core.ActionLeft, false
	case "right", "d", "l":
		return core.ActionRight, false
	case "o":
		return core.ActionGrow, false
	case "p":
		return core.ActionPause, false
	case "r", "enter":
		return core.ActionRestart, false
	case "esc":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// GameKeyMap lists the in-game bindings for the help bar.
type GameKeyMap struct {
	Move    key.Binding
	Pause   key.Binding
	Grow    key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding

	cheats   bool
	gameOver bool
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	if k.gameOver {
		return []key.Binding{k.Restart, k.Back, k.Quit}
	}
	bindings := []key.Binding{k.Move, k.Pause}
	if k.cheats {
		bindings = append(bindings, k.Grow)
	}
	return append(bindings, k.Quit)
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Pause, k.Grow},
		{k.Restart, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns default in-game key bindings.
func DefaultGameKeyMap(cheats bool) GameKeyMap {
	return GameKeyMap{
		Move: key.NewBinding(
			key.WithKeys("up", "down", "left", "right", "w", "a", "s", "d", "h", "j", "k", "l"),
			key.WithHelp("arrows/wasd/hjkl", "move"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Grow: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "grow"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r/enter", "play again"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		cheats: cheats,
	}
}
