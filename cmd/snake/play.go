package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the menu and play",
	Long: `Start the game in interactive mode.

Type a username and press Enter to start. After a game ends
press Esc to return to the menu or R to play again.

Controls:
  Arrows/WASD/HJKL  - Turn
  P                 - Pause
  O                 - Grow (only with cheats: true)
  R/Enter           - Play again (after game over)
  Esc               - Back to menu (after game over)
  Q/Ctrl+C          - Quit

Examples:
  snake play
  snake play --seed 42
  snake play --scores ~/snake-scores.txt`,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Logs go to a buffer while the alt screen is up unless a log file is set.
	var buffered bytes.Buffer
	logger, closeLog, err := newLogger(cfg, &buffered)
	if err != nil {
		return err
	}
	defer func() {
		closeLog.Close()
		os.Stderr.Write(buffered.Bytes())
	}()

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		logger.Warn("could not open score log, scores will not be saved", "error", err)
		backend = nil
	} else {
		defer closeBackend.Close()
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:      width,
		ScreenH:      height,
		TickInterval: cfg.TickInterval(),
		Seed:         flagSeed,
	}
	rules := cfg.Rules()
	username := ""

	// Menu loop
	for {
		start, err := tui.RunStart(rt, username)
		if err != nil {
			return fmt.Errorf("start menu: %w", err)
		}
		rt = start.Config

		if start.Quit {
			return nil
		}

		if start.WantsScores {
			goBack, sbErr := tui.RunScoreboard(backend, logger, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				return fmt.Errorf("scores: %w", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil
		}

		username = start.Username
		var recorder snake.Recorder
		if backend != nil {
			recorder = backend
		}
		session, err := snake.NewSession(username, snake.New(rules), recorder, logger)
		if err != nil {
			return err
		}

		result, err := tui.Run(session, rt, logger)
		if err != nil {
			return fmt.Errorf("game: %w", err)
		}
		rt = result.Config
		// A fixed seed replays the same apples each run; otherwise reseed.
		if flagSeed == 0 {
			rt.Seed = 0
		}

		if result.Quit {
			return nil
		}
	}
}
