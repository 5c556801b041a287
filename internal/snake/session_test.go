package snake

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/scorelog"
)

type memRecorder struct {
	records []scorelog.Record
	err     error
}

func (m *memRecorder) Append(rec scorelog.Record) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestValidateUsername(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := ValidateUsername(name); !errors.Is(err, ErrEmptyUsername) {
			t.Errorf("ValidateUsername(%q) = %v, expected ErrEmptyUsername", name, err)
		}
	}

	got, err := ValidateUsername("  alice ")
	if err != nil || got != "alice" {
		t.Errorf("ValidateUsername = %q, %v", got, err)
	}

	for _, name := range []string{"eve\nmallory: 99", "eve\rx", "a\x00b", "tab\tname"} {
		if _, err := ValidateUsername(name); !errors.Is(err, ErrInvalidUsername) {
			t.Errorf("ValidateUsername(%q) = %v, expected ErrInvalidUsername", name, err)
		}
	}

	if _, err := NewSession(" ", New(DefaultRules()), nil, quietLogger()); !errors.Is(err, ErrEmptyUsername) {
		t.Error("NewSession should reject a blank username")
	}
}

func TestSessionWritesScoreOnGameOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.txt")
	logFile, err := scorelog.New(path)
	if err != nil {
		t.Fatal(err)
	}

	g := New(DefaultRules())
	sess, err := NewSession("alice", g, logFile, quietLogger())
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	sess.Start(core.RuntimeConfig{Seed: 9})

	// One segment already eaten, heading down at the bottom row.
	g.state = State{
		Body:  pts(50, 290, 50, 280, 50, 270, 50, 260),
		Dir:   DirDown,
		Next:  DirDown,
		Apple: core.Point{X: 200, Y: 200},
		Alive: true,
	}

	res, err := sess.Step(core.NewInputFrame())
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if !res.State.GameOver {
		t.Fatal("head at y = height should end the game")
	}

	// Further ticks must not write again.
	sess.Step(core.NewInputFrame())
	sess.Step(core.NewInputFrame())

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading score log: %v", err)
	}
	if string(data) != "alice: 1\n" {
		t.Errorf("score log = %q, expected %q", data, "alice: 1\n")
	}

	if best, ok := sess.Best(); !ok || best != 1 {
		t.Errorf("Best() = %d, %v, expected 1, true", best, ok)
	}
}

func TestSessionBestNeedsHighScorer(t *testing.T) {
	rec := &memRecorder{}
	g := New(DefaultRules())
	sess, _ := NewSession("carol", g, rec, quietLogger())
	sess.Start(core.RuntimeConfig{Seed: 1})
	g.state = State{Body: pts(0, 50, 10, 50, 20, 50), Dir: DirLeft, Next: DirLeft, Alive: true}

	if _, err := sess.Step(core.NewInputFrame()); err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if _, ok := sess.Best(); ok {
		t.Error("Best() should be unknown when the recorder cannot report it")
	}
}

func TestSessionRecordFailureIsNonFatal(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	g := New(DefaultRules())
	sess, _ := NewSession("bob", g, rec, quietLogger())
	sess.Start(core.RuntimeConfig{Seed: 1})
	g.state = State{Body: pts(0, 50, 10, 50, 20, 50), Dir: DirLeft, Next: DirLeft, Alive: true}

	res, err := sess.Step(core.NewInputFrame())
	if err == nil {
		t.Error("recording failure should be reported")
	}
	if !res.State.GameOver {
		t.Error("game should still be over")
	}
}

func TestSessionRecordsEachRun(t *testing.T) {
	rec := &memRecorder{}
	g := New(DefaultRules())
	sess, _ := NewSession("carol", g, rec, quietLogger())
	sess.Start(core.RuntimeConfig{Seed: 1})

	firstRun := sess.RunID()
	g.state = State{Body: pts(0, 50, 10, 50, 20, 50), Dir: DirLeft, Next: DirLeft, Alive: true}
	sess.Step(core.NewInputFrame())

	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	sess.Step(restart)
	if sess.RunID() == firstRun {
		t.Error("restart should start a new run id")
	}

	g.state = State{Body: pts(0, 50, 10, 50, 20, 50), Dir: DirLeft, Next: DirLeft, Alive: true}
	sess.Step(core.NewInputFrame())

	if len(rec.records) != 2 {
		t.Errorf("expected one record per run, got %d", len(rec.records))
	}
}

func TestLoopScriptRunsToCollision(t *testing.T) {
	rec := &memRecorder{}
	g := New(DefaultRules())
	sess, _ := NewSession("dave", g, rec, quietLogger())
	sess.Start(core.RuntimeConfig{Seed: 21})

	snap, err := NewLoop(sess).Script(context.Background(), nil, 0)
	if err != nil {
		t.Fatalf("Script() failed: %v", err)
	}

	// Head starts at x=50 heading right on a 300-wide board.
	if snap.Tick != 25 {
		t.Errorf("collision at tick %d, expected 25", snap.Tick)
	}
	if snap.State != StateGameOver {
		t.Errorf("State = %s, expected game_over", snap.State)
	}
	if len(rec.records) != 1 || rec.records[0].Username != "dave" || rec.records[0].Apples != snap.Score {
		t.Errorf("records = %+v, expected one for dave with score %d", rec.records, snap.Score)
	}
}

func TestLoopScriptTurns(t *testing.T) {
	g := New(DefaultRules())
	sess, _ := NewSession("erin", g, nil, quietLogger())
	sess.Start(core.RuntimeConfig{Seed: 22})

	dirs := []Direction{DirDown, DirKeep, DirLeft}
	snap, err := NewLoop(sess).Script(context.Background(), dirs, 3)
	if err != nil {
		t.Fatalf("Script() failed: %v", err)
	}

	if snap.HeadX != 40 || snap.HeadY != 70 {
		t.Errorf("head = (%d,%d), expected (40,70)", snap.HeadX, snap.HeadY)
	}
	if snap.Dir != DirLeft || snap.State != StateRunning {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestLoopCancel(t *testing.T) {
	g := New(DefaultRules())
	sess, _ := NewSession("frank", g, nil, quietLogger())
	sess.Start(core.RuntimeConfig{Seed: 1})

	ctx, cancel := context.WithCancel(context.Background())
	ticks := make(chan time.Time)
	turns := make(chan Direction, 1)
	turns <- DirUp

	done := make(chan error, 1)
	go func() {
		_, err := NewLoop(sess).Run(ctx, ticks, turns)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, expected context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
