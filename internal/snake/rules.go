package snake

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Defaults match the classic 300x300 board with 10-unit cells.
const (
	DefaultBoardWidth    = 300
	DefaultBoardHeight   = 300
	DefaultCellSize      = 10
	DefaultInitialLength = 3
)

// Rules describes the board geometry and the rules a game is played under.
// Coordinates are in board units; every body cell and the apple sit on
// multiples of CellSize.
type Rules struct {
	Width         int
	Height        int
	CellSize      int
	InitialLength int
	Start         core.Point // Initial head position
	Policy        ApplePolicy
	Cheats        bool // Enables the grow key
}

// DefaultRules returns the rules of the classic game.
func DefaultRules() Rules {
	return Rules{
		Width:         DefaultBoardWidth,
		Height:        DefaultBoardHeight,
		CellSize:      DefaultCellSize,
		InitialLength: DefaultInitialLength,
		Start:         core.Point{X: 5 * DefaultCellSize, Y: 5 * DefaultCellSize},
		Policy:        PolicyStrict,
	}
}

// Bounds returns the playable area.
func (r Rules) Bounds() core.Rect {
	return core.NewRect(0, 0, r.Width, r.Height)
}

// Columns returns the number of grid columns.
func (r Rules) Columns() int {
	return r.Width / r.CellSize
}

// Rows returns the number of grid rows.
func (r Rules) Rows() int {
	return r.Height / r.CellSize
}

// Cells returns the total number of grid cells, the upper bound on body length.
func (r Rules) Cells() int {
	return r.Columns() * r.Rows()
}

// Validate checks that the rules describe a playable board.
func (r Rules) Validate() error {
	var errs []error
	if r.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell size must be positive, got %d", r.CellSize))
	} else {
		if r.Width <= 0 || r.Width%r.CellSize != 0 {
			errs = append(errs, fmt.Errorf("width %d must be a positive multiple of cell size %d", r.Width, r.CellSize))
		}
		if r.Height <= 0 || r.Height%r.CellSize != 0 {
			errs = append(errs, fmt.Errorf("height %d must be a positive multiple of cell size %d", r.Height, r.CellSize))
		}
		if r.Start.X%r.CellSize != 0 || r.Start.Y%r.CellSize != 0 {
			errs = append(errs, fmt.Errorf("start %v is not aligned to the grid", r.Start))
		}
	}
	if r.InitialLength < 1 {
		errs = append(errs, fmt.Errorf("initial length must be at least 1, got %d", r.InitialLength))
	}
	if len(errs) > 0 {
		return fmt.Errorf("snake: invalid rules: %w", errors.Join(errs...))
	}

	// The initial body extends to the left of the start cell.
	tail := r.Start.Add(-(r.InitialLength-1)*r.CellSize, 0)
	if !r.Bounds().ContainsPoint(r.Start) || !r.Bounds().ContainsPoint(tail) {
		return fmt.Errorf("snake: invalid rules: initial body from %v to %v leaves the board", r.Start, tail)
	}
	if _, err := ParsePolicy(string(r.Policy)); err != nil {
		return err
	}
	return nil
}
