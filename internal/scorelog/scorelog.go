// Package scorelog stores finished runs as plain text, one
// "<username>: <applesEaten>" line per run, appended in play order.
package scorelog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultPath is the log file used when none is configured.
const DefaultPath = "scores.txt"

const separator = ": "

// ErrInvalidRecord is returned for a record that would not fit on one line.
var ErrInvalidRecord = errors.New("scorelog: username must not contain line breaks")

// Record is one finished run.
type Record struct {
	Username string
	Apples   int
}

// String formats the record as a log line without the trailing newline.
func (r Record) String() string {
	return r.Username + separator + strconv.Itoa(r.Apples)
}

// Validate reports whether the record can be written as a single line.
func (r Record) Validate() error {
	if strings.ContainsAny(r.Username, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidRecord, r.Username)
	}
	return nil
}

// ParseLine parses a log line. Usernames may contain ": ", so the line is
// split on the last separator.
func ParseLine(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	i := strings.LastIndex(line, separator)
	if i < 0 {
		return Record{}, fmt.Errorf("scorelog: malformed line %q", line)
	}
	apples, err := strconv.Atoi(strings.TrimSpace(line[i+len(separator):]))
	if err != nil {
		return Record{}, fmt.Errorf("scorelog: malformed score in %q: %w", line, err)
	}
	return Record{Username: line[:i], Apples: apples}, nil
}

// Backend is implemented by every score store.
type Backend interface {
	Append(rec Record) error
	ReadAll() ([]string, error)
}

// Log is the flat-file score log. It assumes a single writer.
type Log struct {
	path string
}

// New returns a log stored at path, expanding a leading ~ to the home directory.
func New(path string) (*Log, error) {
	if path == "" {
		path = DefaultPath
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("scorelog: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return &Log{path: path}, nil
}

// Path returns the file the log is stored in.
func (l *Log) Path() string {
	return l.path
}

// Append opens the log for appending, writes one line and closes it.
func (l *Log) Append(rec Record) (err error) {
	if err := rec.Validate(); err != nil {
		return err
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("scorelog: cannot create directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("scorelog: cannot open %s: %w", l.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("scorelog: cannot close %s: %w", l.path, cerr)
		}
	}()

	if _, err := f.WriteString(rec.String() + "\n"); err != nil {
		return fmt.Errorf("scorelog: cannot write %s: %w", l.path, err)
	}
	return nil
}

// ReadAll returns every line of the log in append order. A log that was
// never written reads as empty.
func (l *Log) ReadAll() ([]string, error) {
	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scorelog: cannot open %s: %w", l.path, err)
	}
	defer f.Close()

	// Lines have no length limit.
	lines := []string{}
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("scorelog: cannot read %s: %w", l.path, err)
		}
	}
}

// HighScore returns the player's best run, or 0 if they have none.
func (l *Log) HighScore(username string) (int, error) {
	lines, err := l.ReadAll()
	if err != nil {
		return 0, err
	}
	best := 0
	for _, line := range lines {
		rec, err := ParseLine(line)
		if err == nil && rec.Username == username && rec.Apples > best {
			best = rec.Apples
		}
	}
	return best, nil
}

// Best returns each player's best run, highest first. Lines that do not
// parse are skipped. Ties keep the order players first appeared in.
func Best(lines []string) []Record {
	best := make(map[string]int)
	var order []string
	for _, line := range lines {
		rec, err := ParseLine(line)
		if err != nil {
			continue
		}
		prev, seen := best[rec.Username]
		if !seen {
			order = append(order, rec.Username)
		}
		if !seen || rec.Apples > prev {
			best[rec.Username] = rec.Apples
		}
	}

	out := make([]Record, 0, len(order))
	for _, name := range order {
		out = append(out, Record{Username: name, Apples: best[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Apples > out[j].Apples
	})
	return out
}

var _ Backend = (*Log)(nil)
