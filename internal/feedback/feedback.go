package feedback

import (
	"fmt"
	"sync"
	"time"

	"claimcheck/internal/store"
)

const documentKey = "feedback"

// Entry is one submitted piece of user feedback. Entries are appended and
// never mutated or deleted.
type Entry struct {
	Timestamp  string `json:"timestamp"`
	Liked      string `json:"liked"`
	Disliked   string `json:"disliked"`
	Suggestion string `json:"suggestion"`
}

// Log stores feedback entries as one whole document.
type Log struct {
	kv  store.KV
	now func() time.Time
	mu  sync.Mutex
}

// NewLog builds a feedback log over the given store.
func NewLog(kv store.KV) *Log {
	return &Log{kv: kv, now: time.Now}
}

// Append records a feedback entry with the current timestamp.
func (l *Log) Append(liked, disliked, suggestion string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := []Entry{}
	if _, err := l.kv.Read(documentKey, &entries); err != nil {
		return fmt.Errorf("read feedback log: %w", err)
	}

	entries = append(entries, Entry{
		Timestamp:  l.now().Format(time.RFC3339),
		Liked:      liked,
		Disliked:   disliked,
		Suggestion: suggestion,
	})

	if err := l.kv.Write(documentKey, entries); err != nil {
		return fmt.Errorf("write feedback log: %w", err)
	}
	return nil
}

// List returns all recorded feedback entries in submission order.
func (l *Log) List() ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := []Entry{}
	if _, err := l.kv.Read(documentKey, &entries); err != nil {
		return nil, fmt.Errorf("read feedback log: %w", err)
	}
	return entries, nil
}
