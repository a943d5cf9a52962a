package ledger

import (
	"fmt"
	"sync"
	"time"

	"claimcheck/internal/store"
)

const documentKey = "verdict_log"

const dateFormat = "2006-01-02"

// Ledger counts classification outcomes per day. The whole log is one
// document mapping date -> verdict label -> count. Counts only increase; a
// (date, label) pair is created with count 1 on first occurrence.
type Ledger struct {
	kv  store.KV
	now func() time.Time
	mu  sync.Mutex
}

// New builds a ledger over the given store.
func New(kv store.KV) *Ledger {
	return &Ledger{kv: kv, now: time.Now}
}

// Increment adds one occurrence of verdict for today and persists the full
// log. The read-modify-write pair is serialized by the ledger's lock so
// concurrent requests on the same day cannot lose counts.
func (l *Ledger) Increment(verdict string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	log := map[string]map[string]int{}
	if _, err := l.kv.Read(documentKey, &log); err != nil {
		return fmt.Errorf("read verdict log: %w", err)
	}

	today := l.now().Format(dateFormat)
	if log[today] == nil {
		log[today] = map[string]int{}
	}
	log[today][verdict]++

	if err := l.kv.Write(documentKey, log); err != nil {
		return fmt.Errorf("write verdict log: %w", err)
	}
	return nil
}

// Snapshot returns the full verdict log.
func (l *Ledger) Snapshot() (map[string]map[string]int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	log := map[string]map[string]int{}
	if _, err := l.kv.Read(documentKey, &log); err != nil {
		return nil, fmt.Errorf("read verdict log: %w", err)
	}
	return log, nil
}
