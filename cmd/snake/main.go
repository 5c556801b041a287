// snake is a terminal Snake game with a username start menu and a score log.
//
// Usage:
//
//	snake                - Start menu, then play
//	snake play           - Same as above
//	snake scores         - Print the score log
//	snake sim <moves>    - Run a scripted game without a terminal
//	snake config         - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Custom YAML config
//	--scores <path>      - Score log path (overrides config)
//	--seed <value>       - RNG seed for reproducible apples
//	--policy <name>      - Apple placement: strict or legacy
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagScores   string
	flagSeed     int64
	flagPolicy   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - eat apples, avoid walls and yourself",
	Long: `Snake in your terminal.

Enter a username to start. Every finished run appends one line
"<username>: <apples>" to the score log.

Available commands:
  play     - Start menu and game (default)
  scores   - Print the score log
  sim      - Run a scripted game headless
  config   - Print the effective configuration

Examples:
  snake
  snake --seed 42 --policy legacy
  snake scores --best
  snake sim RRRDDDLLL`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagScores, "scores", "", "Path to score log (default from config: scores.txt)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagPolicy, "policy", "", "Apple placement policy: strict or legacy")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}
