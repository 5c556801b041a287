package snake

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/scorelog"
)

// ErrEmptyUsername is returned when the start form is submitted blank.
var ErrEmptyUsername = errors.New("username cannot be empty or only contain white spaces")

// ErrInvalidUsername is returned for a name containing control characters
// such as line breaks, which would split its score line.
var ErrInvalidUsername = errors.New("username cannot contain control characters")

// ValidateUsername trims the name and rejects it if nothing is left or if
// it contains control characters.
func ValidateUsername(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyUsername
	}
	if strings.ContainsFunc(name, unicode.IsControl) {
		return "", ErrInvalidUsername
	}
	return name, nil
}

// Recorder persists the final score of a run.
type Recorder interface {
	Append(rec scorelog.Record) error
}

// HighScorer is implemented by recorders that can report a player's best run.
type HighScorer interface {
	HighScore(username string) (int, error)
}

// Session is one player's sitting: a game, the player's name and the place
// finished runs are written to. Each run is recorded exactly once, on the
// tick it ends.
type Session struct {
	username string
	game     *Game
	recorder Recorder
	logger   *log.Logger
	runID    string
	best     int
	hasBest  bool
}

// NewSession validates the username and binds it to a game.
// A nil recorder disables score persistence.
func NewSession(username string, game *Game, recorder Recorder, logger *log.Logger) (*Session, error) {
	name, err := ValidateUsername(username)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		username: name,
		game:     game,
		recorder: recorder,
		logger:   logger,
		runID:    uuid.NewString(),
	}, nil
}

// Username returns the validated player name.
func (s *Session) Username() string {
	return s.username
}

// Game returns the session's game.
func (s *Session) Game() *Game {
	return s.game
}

// RunID identifies the current run in log output.
func (s *Session) RunID() string {
	return s.runID
}

// Start resets the game for a fresh run.
func (s *Session) Start(cfg core.RuntimeConfig) {
	s.game.Reset(cfg)
	s.runID = uuid.NewString()
	s.logger.Debug("run started", "user", s.username, "run", s.runID, "seed", cfg.Seed)
}

// Step advances the game one tick. When the run ends on this tick the score
// is recorded; a recording failure is logged and returned but leaves the
// game unaffected.
func (s *Session) Step(in core.InputFrame) (core.StepResult, error) {
	wasOver := s.game.State().GameOver
	res := s.game.Step(in)

	if wasOver && !res.State.GameOver {
		s.runID = uuid.NewString()
		s.logger.Debug("run restarted", "user", s.username, "run", s.runID)
	}

	if !res.Ended {
		return res, nil
	}
	return res, s.record(res.State.Score)
}

// Record returns the score record for the current run.
func (s *Session) Record() scorelog.Record {
	return scorelog.Record{Username: s.username, Apples: s.game.State().Score}
}

func (s *Session) record(score int) error {
	rec := scorelog.Record{Username: s.username, Apples: score}
	s.logger.Info("game over", "user", s.username, "apples", score, "run", s.runID)

	if s.recorder == nil {
		return nil
	}
	if err := s.recorder.Append(rec); err != nil {
		s.logger.Error("could not save score", "user", s.username, "error", err)
		return fmt.Errorf("save score: %w", err)
	}

	if hs, ok := s.recorder.(HighScorer); ok {
		best, err := hs.HighScore(s.username)
		if err != nil {
			s.logger.Warn("could not read high score", "user", s.username, "error", err)
			s.hasBest = false
			return nil
		}
		s.best, s.hasBest = best, true
	}
	return nil
}

// Best returns the player's best recorded run as of the last game over.
// The second result is false when the recorder cannot report it.
func (s *Session) Best() (int, bool) {
	return s.best, s.hasBest
}
