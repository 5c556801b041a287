package snake

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
)

func newTestGame(seed int64) *Game {
	g := New(DefaultRules())
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 40})
	return g
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(12345)
	g2 := newTestGame(12345)

	turns := map[int]Direction{5: DirDown, 12: DirRight, 20: DirUp}
	for i := 0; i < 40; i++ {
		if d, ok := turns[i]; ok {
			g1.Turn(d)
			g2.Turn(d)
		}
		g1.Step(core.NewInputFrame())
		g2.Step(core.NewInputFrame())
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
}

func TestTurnAppliesOnNextStep(t *testing.T) {
	g := newTestGame(1)
	g.state.Apple = core.Point{X: 200, Y: 200}

	if !g.Turn(DirDown) {
		t.Fatal("Turn(down) should be accepted while heading right")
	}
	if g.Turn(DirLeft) {
		t.Error("Turn(left) reverses the last move and should be rejected")
	}
	g.Step(core.NewInputFrame())

	if g.state.Dir != DirDown {
		t.Errorf("Dir = %v, expected down", g.state.Dir)
	}
	if g.state.Head() != (core.Point{X: 50, Y: 60}) {
		t.Errorf("head = %v, expected (50,60)", g.state.Head())
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(2)

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	res := g.Step(input)
	if !res.State.Paused {
		t.Fatal("game should be paused")
	}

	before := g.Snapshot()
	g.Step(core.NewInputFrame())
	if after := g.Snapshot(); after.Tick != before.Tick {
		t.Error("paused game should not advance")
	}
	if g.Turn(DirDown) {
		t.Error("turns should be ignored while paused")
	}

	g.Step(input)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestStepReportsEndOnce(t *testing.T) {
	g := newTestGame(3)
	g.state = State{Body: pts(290, 50, 280, 50, 270, 50), Dir: DirRight, Next: DirRight, Apple: core.Point{X: 0, Y: 0}, Alive: true}

	res := g.Step(core.NewInputFrame())
	if !res.Ended || !res.State.GameOver {
		t.Fatalf("expected the run to end, got %+v", res)
	}

	res = g.Step(core.NewInputFrame())
	if res.Ended {
		t.Error("Ended should only be reported on the transition")
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("State = %s, expected game_over", g.Snapshot().State)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(4)
	g.state.Alive = false

	input := core.NewInputFrame()
	input.Set(core.ActionRestart)
	g.Step(input)

	if !g.state.Alive || g.state.Len() != DefaultInitialLength {
		t.Error("restart should begin a fresh run")
	}
}

func TestCheatRequiresFlag(t *testing.T) {
	g := newTestGame(5)
	if g.Cheat() {
		t.Error("cheat should be disabled by default")
	}

	rules := DefaultRules()
	rules.Cheats = true
	g = New(rules)
	g.Reset(core.RuntimeConfig{Seed: 5})
	g.state.Apple = core.Point{X: 200, Y: 200}

	input := core.NewInputFrame()
	input.Set(core.ActionGrow)
	g.Step(input)
	if g.state.Len() != 4 {
		t.Errorf("length after cheat = %d, expected 4", g.state.Len())
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := New(DefaultRules())
	g.Reset(core.RuntimeConfig{Seed: 333, ScreenW: 10, ScreenH: 5})

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State should be paused_small_window, got %s", g.Snapshot().State)
	}
	g.Step(core.NewInputFrame())
	if g.state.Ticks != 0 {
		t.Error("game should not advance while the window is too small")
	}

	g.Resize(80, 40)
	if g.Snapshot().State != StateRunning {
		t.Errorf("State after resize = %s, expected running", g.Snapshot().State)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(444)
	screen := core.NewScreen(80, 40)
	g.Render(screen)

	content := screen.String()
	if !strings.Contains(content, "Snake") {
		t.Error("HUD should contain 'Snake'")
	}
	if !strings.ContainsRune(content, '▶') {
		t.Error("head should be drawn facing right")
	}
	if !strings.ContainsRune(content, '●') {
		t.Error("apple should be drawn")
	}
	if strings.Count(content, "o") < 2 {
		t.Error("body segments should be drawn")
	}
}

func TestRenderGameOver(t *testing.T) {
	g := newTestGame(5)
	g.state.Alive = false
	screen := core.NewScreen(80, 40)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Game Over") {
		t.Error("game over overlay should be drawn")
	}
}
