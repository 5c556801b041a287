package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/scorelog"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReadAllKeepsAppendOrder(t *testing.T) {
	store := openTestStore(t)

	recs := []scorelog.Record{
		{Username: "alice", Apples: 4},
		{Username: "bob", Apples: 9},
		{Username: "alice", Apples: 1},
	}
	for _, r := range recs {
		if err := store.Append(r); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	lines, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	expected := []string{"alice: 4", "bob: 9", "alice: 1"}
	if len(lines) != len(expected) {
		t.Fatalf("Expected %d lines, got %d", len(expected), len(lines))
	}
	for i := range expected {
		if lines[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], expected[i])
		}
	}
}

func TestStoreReadAllEmpty(t *testing.T) {
	store := openTestStore(t)

	lines, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Expected no lines, got %q", lines)
	}
}

func TestStoreTopScoresPerPlayer(t *testing.T) {
	store := openTestStore(t)

	runs := []scorelog.Record{
		{Username: "alice", Apples: 2},
		{Username: "bob", Apples: 5},
		{Username: "alice", Apples: 7},
		{Username: "carol", Apples: 5},
		{Username: "bob", Apples: 1},
		{Username: "dave", Apples: 0},
	}
	for _, r := range runs {
		if _, err := store.SaveScore(r); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	expected := []scorelog.Record{
		{Username: "alice", Apples: 7},
		{Username: "bob", Apples: 5},
		{Username: "carol", Apples: 5},
	}
	if len(scores) != len(expected) {
		t.Fatalf("Expected %d scores with limit, got %d", len(expected), len(scores))
	}
	for i, want := range expected {
		if scores[i].Record() != want {
			t.Errorf("TopScores()[%d] = %v, expected %v", i, scores[i].Record(), want)
		}
	}
	if scores[0].RunID == "" || scores[0].RunID == scores[1].RunID {
		t.Error("each run should get its own run id")
	}

	// Same ranking as the flat log computes.
	lines, _ := store.ReadAll()
	best := scorelog.Best(lines)
	for i := range scores {
		if scores[i].Record() != best[i] {
			t.Errorf("TopScores()[%d] = %v, Best()[%d] = %v", i, scores[i].Record(), i, best[i])
		}
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("nobody")
	if err != nil || high != 0 {
		t.Errorf("HighScore() for unknown player = %d, %v", high, err)
	}

	store.Append(scorelog.Record{Username: "alice", Apples: 3})
	store.Append(scorelog.Record{Username: "bob", Apples: 8})
	store.Append(scorelog.Record{Username: "alice", Apples: 6})

	high, err = store.HighScore("alice")
	if err != nil || high != 6 {
		t.Errorf("HighScore(alice) = %d, %v, expected 6", high, err)
	}
}

func TestStoreRejectsLineBreaks(t *testing.T) {
	store := openTestStore(t)

	err := store.Append(scorelog.Record{Username: "eve\nmallory: 99", Apples: 1})
	if !errors.Is(err, scorelog.ErrInvalidRecord) {
		t.Errorf("Append() = %v, expected ErrInvalidRecord", err)
	}
	lines, _ := store.ReadAll()
	if len(lines) != 0 {
		t.Errorf("rejected record was stored: %q", lines)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() on empty store failed: %v", err)
	}
	if stats.Runs != 0 || stats.HighScore != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	store.Append(scorelog.Record{Username: "alice", Apples: 2})
	store.Append(scorelog.Record{Username: "bob", Apples: 4})

	stats, err = store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.Players != 2 || stats.HighScore != 4 || stats.AvgScore != 3 {
		t.Errorf("stats = %+v", stats)
	}
}
