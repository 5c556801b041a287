package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp

	// DirKeep is a scripted step that leaves the heading unchanged.
	DirKeep Direction = -1
)

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Delta returns the unit step for the direction in grid cells.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirKeep:
		return "keep"
	default:
		return "unknown"
	}
}

// DirectionFromAction maps a directional action to a Direction.
func DirectionFromAction(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return DirRight, false
}

// ParseDirections parses a move script such as "RRDDL" or "right,down".
// Single letters U/D/L/R are accepted, as are comma separated names.
func ParseDirections(script string) ([]Direction, error) {
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, nil
	}

	var tokens []string
	if strings.Contains(script, ",") {
		tokens = strings.Split(script, ",")
	} else {
		for _, r := range script {
			tokens = append(tokens, string(r))
		}
	}

	dirs := make([]Direction, 0, len(tokens))
	for _, tok := range tokens {
		switch strings.ToLower(strings.TrimSpace(tok)) {
		case "u", "up":
			dirs = append(dirs, DirUp)
		case "d", "down":
			dirs = append(dirs, DirDown)
		case "l", "left":
			dirs = append(dirs, DirLeft)
		case "r", "right":
			dirs = append(dirs, DirRight)
		case "", ".":
			dirs = append(dirs, DirKeep)
		default:
			return nil, fmt.Errorf("snake: unknown direction %q", tok)
		}
	}
	return dirs, nil
}
