package snake

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// State is one snapshot of the simulation. Tick never mutates its input;
// it returns a fresh State with its own body slice.
type State struct {
	Body   []core.Point // Head at index 0
	Dir    Direction    // Heading used by the last move
	Next   Direction    // Heading the next move will use
	Apple  core.Point
	Alive  bool
	Grow   int    // Segments still to be added, one per move
	Apples int    // Apples eaten, not counting cheat growth
	Ticks  uint64 // Moves performed
}

// NewState builds the opening position: a horizontal body of
// rules.InitialLength cells with the head at rules.Start, heading right.
func NewState(rules Rules, rng *rand.Rand) State {
	body := make([]core.Point, rules.InitialLength)
	for i := range body {
		body[i] = rules.Start.Add(-i*rules.CellSize, 0)
	}

	return State{
		Body:  body,
		Dir:   DirRight,
		Next:  DirRight,
		Apple: placeApple(rng, rules, body),
		Alive: true,
	}
}

// Head returns the head cell.
func (s State) Head() core.Point {
	return s.Body[0]
}

// Len returns the current body length.
func (s State) Len() int {
	return len(s.Body)
}

// Score is the number of segments earned beyond the initial length,
// including growth still pending.
func (s State) Score(rules Rules) int {
	return len(s.Body) + s.Grow - rules.InitialLength
}

// Occupies reports whether any body segment covers p.
func (s State) Occupies(p core.Point) bool {
	return slices.Contains(s.Body, p)
}

// SetDirection queues d for the next move. A turn straight back onto the
// current heading is rejected and reported with false.
func SetDirection(s State, d Direction) (State, bool) {
	if !s.Alive || d == DirKeep {
		return s, false
	}
	if d == s.Dir.Opposite() {
		return s, false
	}
	s.Next = d
	return s, true
}

// AddGrowth schedules extra segments without eating an apple.
func AddGrowth(s State, n int) State {
	if s.Alive && n > 0 {
		s.Grow += n
	}
	return s
}

// Tick advances a running state by one move: apple check, move, collision
// check, then apple relocation. A terminal state is returned unchanged.
func Tick(s State, rng *rand.Rand, rules Rules) State {
	if !s.Alive {
		return s
	}

	next := s
	next.Ticks++

	eaten := s.Apple != NoApple && s.Head() == s.Apple
	if eaten {
		next.Grow++
		next.Apples++
	}

	next.Dir = s.Next
	dx, dy := next.Dir.Delta()
	head := s.Head().Add(dx*rules.CellSize, dy*rules.CellSize)

	keep := len(s.Body)
	if next.Grow > 0 {
		keep++
		next.Grow--
	}
	body := make([]core.Point, 0, keep)
	body = append(body, head)
	body = append(body, s.Body[:keep-1]...)
	next.Body = body

	if collides(body, rules) {
		next.Alive = false
		return next
	}

	if eaten {
		next.Apple = placeApple(rng, rules, body)
	}
	return next
}

// collides reports whether the head left the board or ran into the body.
func collides(body []core.Point, rules Rules) bool {
	head := body[0]
	if !rules.Bounds().ContainsPoint(head) {
		return true
	}
	return slices.Contains(body[1:], head)
}
