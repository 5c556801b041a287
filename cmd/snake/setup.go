package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/scorelog"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

const defaultSQLitePath = "scores.db"

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagScores != "" {
		cfg.Scores.Path = flagScores
	}
	if flagPolicy != "" {
		cfg.Apple.Policy = flagPolicy
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the process logger. When the config names a log file it
// is used instead of w. The returned closer must be called on exit.
func newLogger(cfg config.SnakeConfig, w io.Writer) (*log.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}

	if cfg.Log.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	level := log.InfoLevel
	if cfg.Log.Level != "" {
		lvl, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			closer.Close()
			return nil, nil, err
		}
		level = lvl
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "snake",
		Level:           level,
	})
	return logger, closer, nil
}

// openBackend opens the score backend named by the config.
func openBackend(cfg config.SnakeConfig) (scorelog.Backend, io.Closer, error) {
	switch cfg.Scores.Backend {
	case config.BackendSQLite:
		path := cfg.Scores.Path
		if path == "" || path == scorelog.DefaultPath {
			path = defaultSQLitePath
		}
		store, err := storage.Open(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil

	case config.BackendFile, "":
		l, err := scorelog.New(cfg.Scores.Path)
		if err != nil {
			return nil, nil, err
		}
		return l, nopCloser{}, nil
	}
	return nil, nil, errors.New("unknown scores backend " + cfg.Scores.Backend)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
