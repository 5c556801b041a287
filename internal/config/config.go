// Package config provides YAML-based configuration loading for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Score backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Snake  SnakeParams  `yaml:"snake"`
	TickMS int          `yaml:"tick_ms"`
	Apple  AppleConfig  `yaml:"apple"`
	Cheats bool         `yaml:"cheats"`
	Scores ScoresConfig `yaml:"scores"`
	Log    LogConfig    `yaml:"log"`
}

// BoardConfig defines the board geometry in board units.
type BoardConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`
}

// SnakeParams defines the initial snake.
type SnakeParams struct {
	InitialLength int `yaml:"initial_length"`
	StartX        int `yaml:"start_x"`
	StartY        int `yaml:"start_y"`
}

// AppleConfig defines apple placement.
type AppleConfig struct {
	Policy string `yaml:"policy"` // strict or legacy
}

// ScoresConfig selects where finished runs are recorded.
type ScoresConfig struct {
	Backend string `yaml:"backend"` // file or sqlite
	Path    string `yaml:"path"`
}

// LogConfig defines logger output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty means stderr
}

// Rules converts the configuration into simulation rules.
func (c SnakeConfig) Rules() snake.Rules {
	return snake.Rules{
		Width:         c.Board.Width,
		Height:        c.Board.Height,
		CellSize:      c.Board.CellSize,
		InitialLength: c.Snake.InitialLength,
		Start:         core.Point{X: c.Snake.StartX, Y: c.Snake.StartY},
		Policy:        snake.ApplePolicy(c.Apple.Policy),
		Cheats:        c.Cheats,
	}
}

// TickInterval returns the time between moves.
func (c SnakeConfig) TickInterval() time.Duration {
	if c.TickMS <= 0 {
		return core.DefaultTickInterval
	}
	return time.Duration(c.TickMS) * time.Millisecond
}

// Validate checks every section and reports all problems at once.
func (c SnakeConfig) Validate() error {
	var errs []error
	if err := c.Rules().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.TickMS < 0 {
		errs = append(errs, fmt.Errorf("tick_ms must not be negative, got %d", c.TickMS))
	}
	switch c.Scores.Backend {
	case BackendFile, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown scores backend %q", c.Scores.Backend))
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log level: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
