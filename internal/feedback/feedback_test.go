package feedback

import (
	"testing"
	"time"

	"claimcheck/internal/store"
)

func TestAppendAndList(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	log := NewLog(fs)
	stamp := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	log.now = func() time.Time { return stamp }

	if err := log.Append("verdicts", "latency", "add citations"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := log.Append("sources", "", ""); err != nil {
		t.Fatalf("append second: %v", err)
	}

	entries, err := log.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries got %d", len(entries))
	}
	if entries[0].Liked != "verdicts" || entries[0].Disliked != "latency" || entries[0].Suggestion != "add citations" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[0].Timestamp != stamp.Format(time.RFC3339) {
		t.Fatalf("unexpected timestamp %q", entries[0].Timestamp)
	}
	if entries[1].Liked != "sources" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
}

func TestListEmptyLog(t *testing.T) {
	fs, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	log := NewLog(fs)

	entries, err := log.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries got %d", len(entries))
	}
}
