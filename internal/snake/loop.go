package snake

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Loop drives a Session without a terminal. Between ticks it waits for
// exactly two things: the next tick or the next turn.
type Loop struct {
	session *Session
}

// NewLoop creates a loop for the session.
func NewLoop(s *Session) *Loop {
	return &Loop{session: s}
}

// Run processes turns and ticks until the run ends, the tick channel closes
// or ctx is cancelled. Turns received between two ticks are applied in
// order; the last accepted one is used by the next move.
func (l *Loop) Run(ctx context.Context, ticks <-chan time.Time, turns <-chan Direction) (Snapshot, error) {
	game := l.session.Game()
	frame := core.NewInputFrame()

	for {
		select {
		case <-ctx.Done():
			return game.Snapshot(), ctx.Err()

		case d, ok := <-turns:
			if !ok {
				turns = nil
				continue
			}
			game.Turn(d)

		case _, ok := <-ticks:
			if !ok {
				return game.Snapshot(), nil
			}
			res, err := l.session.Step(frame)
			if res.Ended {
				return game.Snapshot(), err
			}
		}
	}
}

// Script feeds one scripted direction per tick. Step i's direction is
// applied before tick i; DirKeep leaves the heading alone. After the script
// runs out the snake keeps its heading until it collides or maxTicks is hit.
func (l *Loop) Script(ctx context.Context, dirs []Direction, maxTicks int) (Snapshot, error) {
	ticks := make(chan time.Time)
	turns := make(chan Direction)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		defer close(ticks)
		for i := 0; maxTicks <= 0 || i < maxTicks; i++ {
			if i < len(dirs) && dirs[i] != DirKeep {
				select {
				case turns <- dirs[i]:
				case <-ctx.Done():
					return
				}
			}
			select {
			case ticks <- time.Time{}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return l.Run(ctx, ticks, turns)
}
