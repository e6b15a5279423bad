// Package logbook appends leveled, timestamped lines to a plain text file so
// console activity can be inspected after the program exits.
package logbook

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level tags how serious an entry is.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// Entry is one line of the activity log.
type Entry struct {
	At      time.Time
	Level   Level
	Message string
}

// String renders the entry as "<RFC3339 UTC> <LEVEL> <message>" with the
// message folded onto a single line.
func (e Entry) String() string {
	return fmt.Sprintf("%s %-5s %s",
		e.At.UTC().Format(time.RFC3339),
		string(e.Level),
		strings.Join(strings.Fields(e.Message), " "),
	)
}

// Option customizes a Logbook.
type Option func(*Logbook)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Logbook) {
		if now != nil {
			l.now = now
		}
	}
}

// Logbook is the planboard activity log. The console writes plan changes and
// rejected drafts to it, the store reports dropped change events through
// Printf, and the log panel reads the newest lines back with Tail. A nil
// *Logbook discards everything.
type Logbook struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// New opens the activity log at path, creating its directory if needed.
// The file itself is created on first write.
func New(path string, opts ...Option) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure log dir: %w", err)
	}
	l := &Logbook{path: path, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l, nil
}

// Path is the log file location, shown in the console's panel title.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append stamps message with the logbook clock and writes it. Write errors
// are dropped so logging never interrupts the console.
func (l *Logbook) Append(level Level, message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := Entry{At: l.now(), Level: level, Message: message}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = file.WriteString(entry.String() + "\n")
}

// Tail reads the newest maxLines entries, oldest first, and how many entries
// the file holds in total. Only maxLines lines are kept in memory.
func (l *Logbook) Tail(maxLines int) ([]string, int) {
	if l == nil || maxLines <= 0 {
		return nil, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	file, err := os.Open(l.path)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	ring := make([]string, 0, maxLines)
	total := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		total++
		if len(ring) == maxLines {
			ring = ring[1:]
		}
		ring = append(ring, scanner.Text())
	}
	if total == 0 {
		return nil, 0
	}
	return ring, total
}

func (l *Logbook) logf(level Level, format string, args []any) {
	if l == nil {
		return
	}
	l.Append(level, fmt.Sprintf(format, args...))
}

// Info records routine console activity such as added or toggled plans.
func (l *Logbook) Info(format string, args ...any) {
	l.logf(LevelInfo, format, args)
}

// Warn records rejected input and dropped events.
func (l *Logbook) Warn(format string, args ...any) {
	l.logf(LevelWarn, format, args)
}

func (l *Logbook) Error(format string, args ...any) {
	l.logf(LevelError, format, args)
}

// Printf logs at WARN, so a Logbook can serve as plan.Logger.
func (l *Logbook) Printf(format string, args ...any) {
	l.logf(LevelWarn, format, args)
}
