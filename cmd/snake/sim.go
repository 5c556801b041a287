package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

var (
	flagUser     string
	flagMaxTicks int
	flagRecord   bool
)

var simCmd = &cobra.Command{
	Use:   "sim [moves]",
	Short: "Run a scripted game without a terminal",
	Long: `Play one run headless. Each character of the move script is applied
before one tick: U, D, L, R turn, "." keeps the heading. Comma separated
names (up,down,left,right) work too. After the script runs out the snake
keeps going until it collides or --max-ticks is reached.

With --record the final score is appended to the score log.

Examples:
  snake sim
  snake sim RRRDDDLLL --seed 7
  snake sim up,up,left --max-ticks 10
  snake sim --user alice --record`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagUser, "user", "sim", "Username for the run")
	simCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 1000, "Stop after this many ticks (0 = until collision)")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Append the score to the score log")
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog.Close()

	var dirs []snake.Direction
	if len(args) == 1 {
		dirs, err = snake.ParseDirections(args[0])
		if err != nil {
			return err
		}
	}

	var recorder snake.Recorder
	if flagRecord {
		backend, closeBackend, err := openBackend(cfg)
		if err != nil {
			return err
		}
		defer closeBackend.Close()
		recorder = backend
	}

	session, err := snake.NewSession(flagUser, snake.New(cfg.Rules()), recorder, logger)
	if err != nil {
		return err
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session.Start(core.RuntimeConfig{Seed: seed})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap, err := snake.NewLoop(session).Script(ctx, dirs, flagMaxTicks)
	if err != nil && ctx.Err() == nil {
		// The run finished but its score could not be saved.
		logger.Warn("run ended without saving", "error", err)
	} else if err != nil {
		return err
	}

	logger.Debug("final state\n" + session.Game().DebugState())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "state:  %s\n", snap.State)
	fmt.Fprintf(out, "ticks:  %d\n", snap.Tick)
	fmt.Fprintf(out, "apples: %d\n", snap.Apples)
	fmt.Fprintf(out, "length: %d\n", snap.SnakeLen)
	fmt.Fprintf(out, "head:   (%d,%d) %s\n", snap.HeadX, snap.HeadY, snap.Dir)
	fmt.Fprintf(out, "score:  %s\n", session.Record())
	return nil
}
