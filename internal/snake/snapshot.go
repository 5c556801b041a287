package snake

// GameStateType represents the current game state.
type GameStateType string

const (
	StateRunning     GameStateType = "running"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and the
// headless runner's report.
type Snapshot struct {
	Tick     uint64
	Score    int
	Apples   int
	SnakeLen int
	HeadX    int
	HeadY    int
	Dir      Direction
	AppleX   int
	AppleY   int
	State    GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StateRunning
	switch {
	case !g.state.Alive:
		state = StateGameOver
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	}

	head := g.state.Head()
	return Snapshot{
		Tick:     g.state.Ticks,
		Score:    g.state.Score(g.board),
		Apples:   g.state.Apples,
		SnakeLen: g.state.Len(),
		HeadX:    head.X,
		HeadY:    head.Y,
		Dir:      g.state.Dir,
		AppleX:   g.state.Apple.X,
		AppleY:   g.state.Apple.Y,
		State:    state,
	}
}
