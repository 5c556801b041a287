package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run runs the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	// Flags are package globals; reset them between runs.
	flagConfig, flagScores, flagPolicy, flagLogLevel, flagLogFile = "", "", "", "", ""
	flagSeed = 0
	flagBest, flagStats, flagDefaults, flagRecord = false, false, false, false
	flagLimit, flagMaxTicks, flagUser = 10, 1000, "sim"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// execute is run for commands expected to succeed.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("snake %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestSimRunsToCollision(t *testing.T) {
	out := execute(t, "sim", "--seed", "1", "--max-ticks", "0")

	if !strings.Contains(out, "state:  game_over") {
		t.Errorf("output missing game over:\n%s", out)
	}
	if !strings.Contains(out, "ticks:  25") {
		t.Errorf("expected collision on tick 25:\n%s", out)
	}
}

func TestSimRecordAppendsScore(t *testing.T) {
	scores := filepath.Join(t.TempDir(), "scores.txt")
	execute(t, "sim", "DDD", "--seed", "3", "--user", "alice", "--record", "--scores", scores)

	data, err := os.ReadFile(scores)
	if err != nil {
		t.Fatalf("score log not written: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "alice: ") {
		t.Errorf("score log = %q, expected one line for alice", data)
	}

	out := execute(t, "scores", "--scores", scores)
	if strings.TrimSpace(out) != lines[0] {
		t.Errorf("scores printed %q, expected %q", out, lines[0])
	}
}

func TestScoresBest(t *testing.T) {
	scores := filepath.Join(t.TempDir(), "scores.txt")
	if err := os.WriteFile(scores, []byte("alice: 2\nbob: 5\nalice: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := execute(t, "scores", "--best", "--scores", scores)
	alice := strings.Index(out, "alice")
	bob := strings.Index(out, "bob")
	if alice < 0 || bob < 0 || alice > bob {
		t.Errorf("expected alice (7) ranked above bob (5):\n%s", out)
	}
}

func TestConfigDefaults(t *testing.T) {
	out := execute(t, "config", "--defaults")
	if !strings.Contains(out, "tick_ms: 140") {
		t.Errorf("default config missing tick_ms:\n%s", out)
	}

	out = execute(t, "config", "--policy", "legacy")
	if !strings.Contains(out, "policy: legacy") {
		t.Errorf("flag override not applied:\n%s", out)
	}
}

func TestSimRejectsMultilineUser(t *testing.T) {
	scores := filepath.Join(t.TempDir(), "scores.txt")
	_, err := run(t, "sim", "--user", "eve\nmallory: 99", "--record", "--scores", scores)
	if err == nil {
		t.Fatal("expected a username with a line break to be rejected")
	}
	if _, statErr := os.Stat(scores); !os.IsNotExist(statErr) {
		t.Error("no score line should be written for a rejected username")
	}
}

func TestScoresReadFailureIsNonFatal(t *testing.T) {
	// A directory opens but cannot be read as a log.
	dir := t.TempDir()

	out := execute(t, "scores", "--scores", dir)
	if !strings.Contains(out, "No scores recorded yet.") {
		t.Errorf("expected empty fallback, got:\n%s", out)
	}
}

func TestScoresBestSQLite(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "snake.yaml")
	db := filepath.Join(tmp, "scores.db")
	cfg := "scores:\n  backend: sqlite\n  path: " + db + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	execute(t, "sim", "--config", cfgPath, "--seed", "1", "--user", "alice", "--record")
	execute(t, "sim", "--config", cfgPath, "--seed", "2", "--user", "bob", "--record")
	execute(t, "sim", "--config", cfgPath, "--seed", "3", "--user", "alice", "--record")

	out := execute(t, "scores", "--config", cfgPath)
	if got := strings.Count(out, "\n"); got != 3 {
		t.Errorf("expected 3 runs in the log, got %d:\n%s", got, out)
	}

	out = execute(t, "scores", "--config", cfgPath, "--best")
	if strings.Count(out, "alice") != 1 || strings.Count(out, "bob") != 1 {
		t.Errorf("--best should list each player once:\n%s", out)
	}
}
