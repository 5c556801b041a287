// Package snake implements the Snake simulation: a pure tick function over
// State, a Game adapter driven by the platform's tick source, a headless
// Loop and a Session that records the final score of each run.
package snake

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Game wraps the pure State with an RNG, pause handling and rendering.
type Game struct {
	cfg   core.RuntimeConfig
	board Rules
	rng   *rand.Rand
	state State

	paused   bool
	tooSmall bool

	screenW int
	screenH int
}

// New creates a game played under the given rules.
func New(rules Rules) *Game {
	return &Game{board: rules}
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Rules returns the board rules the game was created with.
func (g *Game) Rules() Rules {
	return g.board
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tooSmall = !g.fits(cfg.ScreenW, cfg.ScreenH)
	g.state = NewState(g.board, g.rng)
}

// Resize adapts to a new terminal size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = !g.fits(w, h)
}

// Current returns the current simulation state.
func (g *Game) Current() State {
	return g.state
}

// Turn queues a direction change for the next tick.
func (g *Game) Turn(d Direction) bool {
	if g.paused {
		return false
	}
	var ok bool
	g.state, ok = SetDirection(g.state, d)
	return ok
}

// Cheat grows the snake by one segment when cheats are enabled.
func (g *Game) Cheat() bool {
	if !g.board.Cheats || g.paused {
		return false
	}
	g.state = AddGrowth(g.state, 1)
	return true
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if input.Has(core.ActionRestart) && !g.state.Alive {
		cfg := g.cfg
		cfg.Seed = g.rng.Int63()
		cfg.ScreenW, cfg.ScreenH = g.screenW, g.screenH
		g.Reset(cfg)
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && g.state.Alive {
		g.paused = !g.paused
	}

	if !g.state.Alive || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionGrow) {
		g.Cheat()
	}

	g.state = Tick(g.state, g.rng, g.board)

	return core.StepResult{
		State: g.State(),
		Ended: !g.state.Alive,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score(g.board),
		GameOver: !g.state.Alive,
		Paused:   g.paused,
	}
}

// Layout

const hudHeight = 2

// cellWidth returns how many terminal columns one grid cell takes.
// Cells are drawn two columns wide when the terminal allows it, which
// keeps the board roughly square.
func (g *Game) cellWidth(screenW int) int {
	if screenW >= g.board.Columns()*2+2 {
		return 2
	}
	return 1
}

// fits reports whether the board fits a w x h terminal. A zero size means
// the game runs headless.
func (g *Game) fits(w, h int) bool {
	if w <= 0 && h <= 0 {
		return true
	}
	return w >= g.board.Columns()+2 && h >= g.board.Rows()+hudHeight+2
}

// boardRect returns the on-screen frame around the board.
func (g *Game) boardRect(dst *core.Screen) (core.Rect, int) {
	cw := g.cellWidth(dst.Width())
	w := g.board.Columns()*cw + 2
	h := g.board.Rows() + 2
	x := core.Max((dst.Width()-w)/2, 0)
	return core.NewRect(x, hudHeight, w, h), cw
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", g.board.Columns()+2, g.board.Rows()+hudHeight+2))
		return
	}

	frame, cw := g.boardRect(dst)
	dst.DrawBox(frame, core.ColorGray)

	toScreen := func(p core.Point) (int, int) {
		return frame.X + 1 + (p.X/g.board.CellSize)*cw, frame.Y + 1 + p.Y/g.board.CellSize
	}

	if g.state.Apple != NoApple {
		x, y := toScreen(g.state.Apple)
		dst.SetColored(x, y, '●', core.ColorRed)
	}

	// Tail first so the head wins on overlap.
	for i := len(g.state.Body) - 1; i >= 0; i-- {
		seg := g.state.Body[i]
		if !g.board.Bounds().ContainsPoint(seg) {
			continue
		}
		x, y := toScreen(seg)
		if i == 0 {
			dst.SetColored(x, y, headGlyph(g.state.Dir), core.ColorBrightGreen)
		} else {
			dst.SetColored(x, y, 'o', core.ColorGreen)
		}
	}

	switch {
	case !g.state.Alive:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Apples eaten: %d", g.state.Score(g.board)))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func headGlyph(d Direction) rune {
	switch d {
	case DirUp:
		return '▲'
	case DirDown:
		return '▼'
	case DirLeft:
		return '◀'
	default:
		return '▶'
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Apples: %d  Length: %d", g.Title(), g.state.Score(g.board), g.state.Len())
	if g.board.Policy == PolicyLegacy {
		hud += "  [legacy apples]"
	}
	dst.DrawText(0, 0, hud)

	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	maxLen := core.Max(len([]rune(line1)), len([]rune(line2)))
	boxW := maxLen + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Score: %d\n", g.state.Ticks, g.state.Score(g.board))
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s\n", g.state.Len(), g.state.Dir)
	fmt.Fprintf(&b, "Head: (%d, %d), Apple: (%d, %d)\n",
		g.state.Head().X, g.state.Head().Y, g.state.Apple.X, g.state.Apple.Y)
	fmt.Fprintf(&b, "GameOver: %v, Paused: %v\n", !g.state.Alive, g.paused)
	return b.String()
}
