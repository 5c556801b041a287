package snake

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ApplePolicy decides where a relocated apple may land.
type ApplePolicy string

const (
	// PolicyStrict picks uniformly among cells not covered by the body.
	PolicyStrict ApplePolicy = "strict"
	// PolicyLegacy picks uniformly over the whole grid and may land on the body.
	PolicyLegacy ApplePolicy = "legacy"
)

// ErrUnknownPolicy is returned for an apple policy other than strict or legacy.
var ErrUnknownPolicy = errors.New("snake: unknown apple policy")

// NoApple marks a board with no free cell left for the apple.
var NoApple = core.Point{X: -1, Y: -1}

// ParsePolicy converts a config or flag value to an ApplePolicy.
// The empty string selects the strict policy.
func ParsePolicy(s string) (ApplePolicy, error) {
	switch ApplePolicy(s) {
	case "", PolicyStrict:
		return PolicyStrict, nil
	case PolicyLegacy:
		return PolicyLegacy, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// placeApple picks the apple position for the given body.
func placeApple(rng *rand.Rand, rules Rules, body []core.Point) core.Point {
	cols, rows := rules.Columns(), rules.Rows()

	if rules.Policy == PolicyLegacy {
		x := rng.Intn(cols)
		y := rng.Intn(rows)
		return core.Point{X: x * rules.CellSize, Y: y * rules.CellSize}
	}

	occupied := make(map[core.Point]bool, len(body))
	for _, seg := range body {
		occupied[seg] = true
	}

	free := make([]core.Point, 0, max(0, cols*rows-len(occupied)))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			p := core.Point{X: x * rules.CellSize, Y: y * rules.CellSize}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		return NoApple
	}
	return free[rng.Intn(len(free))]
}
