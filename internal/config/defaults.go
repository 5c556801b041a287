package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-snake/internal/scorelog"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultSnakeYAML))
	copy(out, defaultSnakeYAML)
	return out
}

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	r := snake.DefaultRules()
	return SnakeConfig{
		Board: BoardConfig{
			Width:    r.Width,
			Height:   r.Height,
			CellSize: r.CellSize,
		},
		Snake: SnakeParams{
			InitialLength: r.InitialLength,
			StartX:        r.Start.X,
			StartY:        r.Start.Y,
		},
		TickMS: 140,
		Apple: AppleConfig{
			Policy: string(r.Policy),
		},
		Scores: ScoresConfig{
			Backend: BackendFile,
			Path:    scorelog.DefaultPath,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
