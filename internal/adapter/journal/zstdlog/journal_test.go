package zstdlog

import (
	"os"
	"testing"
	"time"

	"wayfarer/internal/app/ports"
)

func TestJournalRotatesHourly(t *testing.T) {
	dir := t.TempDir()
	j := New(dir)
	first := time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	entries := []ports.JournalEntry{
		{At: first, SessionID: "s-1", EntityID: "hero", ActionType: "time.wait", Success: true, Message: "You wait."},
		{At: first.Add(time.Minute), SessionID: "s-1", EntityID: "hero", ActionType: "object.open", Message: "object chest not found"},
		{At: second, SessionID: "s-1", EntityID: "hero", ActionType: "time.check", Success: true},
	}
	for _, e := range entries {
		if err := j.Record(e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	got, err := ReadFile(j.PathForHour(first))
	if err != nil {
		t.Fatalf("read first hour: %v", err)
	}
	if len(got) != 2 || got[1].ActionType != "object.open" || got[1].Success {
		t.Fatalf("unexpected first hour %+v", got)
	}
	got, err = ReadFile(j.PathForHour(second))
	if err != nil {
		t.Fatalf("read second hour: %v", err)
	}
	if len(got) != 1 || got[0].ActionType != "time.check" {
		t.Fatalf("unexpected second hour %+v", got)
	}
}

func TestJournalAppendsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 2; i++ {
		j := New(dir)
		if err := j.Record(ports.JournalEntry{At: at, ActionType: "time.wait"}); err != nil {
			t.Fatalf("record: %v", err)
		}
		if err := j.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
	got, err := ReadFile(New(dir).PathForHour(at))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both frames decoded, got %d", len(got))
	}
}

func TestJournalStampsMissingTime(t *testing.T) {
	dir := t.TempDir()
	j := New(dir)
	fixed := time.Date(2026, 3, 1, 7, 30, 0, 0, time.UTC)
	j.now = func() time.Time { return fixed }
	if err := j.Record(ports.JournalEntry{ActionType: "time.check"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	_ = j.Close()
	if _, err := os.Stat(j.PathForHour(fixed)); err != nil {
		t.Fatalf("expected file for stamped hour: %v", err)
	}
}
