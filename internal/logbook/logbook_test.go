package logbook

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "planboard.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestAppendFormatsLevelAndTimestamp(t *testing.T) {
	stamp := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	book, err := New(filepath.Join(t.TempDir(), "logs", "planboard.log"), WithClock(func() time.Time { return stamp }))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Error("plan %d\nfailed", 3)
	book.Printf("dropped %s", "change")
	lines, total := book.Tail(10)
	if total != 2 {
		t.Fatalf("total lines = %d, want 2", total)
	}
	if lines[0] != "2026-03-04T05:06:07Z ERROR plan 3 failed" {
		t.Fatalf("unexpected error line %q", lines[0])
	}
	if !strings.Contains(lines[1], "WARN  dropped change") {
		t.Fatalf("unexpected printf line %q", lines[1])
	}
}

func TestTailOnMissingFileOrNilBook(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "empty.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	if lines, total := book.Tail(4); lines != nil || total != 0 {
		t.Fatalf("expected no lines, got %v (%d)", lines, total)
	}
	var nilBook *Logbook
	nilBook.Info("ignored")
	if lines, _ := nilBook.Tail(2); lines != nil {
		t.Fatalf("nil logbook returned lines")
	}
}

func TestEntryStringFoldsMessage(t *testing.T) {
	entry := Entry{
		At:      time.Date(2026, 3, 4, 5, 6, 7, 0, time.FixedZone("CET", 3600)),
		Level:   LevelInfo,
		Message: "  Plan 3 added\n\t· Lite ",
	}
	if got := entry.String(); got != "2026-03-04T04:06:07Z INFO  Plan 3 added · Lite" {
		t.Fatalf("entry = %q", got)
	}
}
