package quota

import (
	"fmt"
	"sync"
	"time"

	"claimcheck/internal/store"
)

// DefaultDailyLimit caps requests per calendar day when no limit is
// configured.
const DefaultDailyLimit = 20

const documentKey = "usage_log"

const dateFormat = "2006-01-02"

// Tracker counts requests per calendar day against a fixed ceiling. The
// usage record is one whole document keyed by ISO date, read and written in
// full. Counts only grow within a day and dates are never removed.
type Tracker struct {
	kv    store.KV
	limit int
	now   func() time.Time
	mu    sync.Mutex
}

// NewTracker builds a tracker over the given store. A non-positive limit
// falls back to DefaultDailyLimit.
func NewTracker(kv store.KV, limit int) *Tracker {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	return &Tracker{kv: kv, limit: limit, now: time.Now}
}

// Limit returns the configured daily ceiling.
func (t *Tracker) Limit() int {
	return t.limit
}

// ReadUsage returns today's date, today's count (0 if absent) and the full
// record for later write-back. A missing record is empty initial state; a
// record that exists but cannot be decoded is an error.
func (t *Tracker) ReadUsage() (string, int, map[string]int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	today := t.now().Format(dateFormat)
	record := map[string]int{}
	if _, err := t.kv.Read(documentKey, &record); err != nil {
		return today, 0, nil, fmt.Errorf("read usage log: %w", err)
	}
	return today, record[today], record, nil
}

// WriteUsage sets record[today] = count and persists the full record.
func (t *Tracker) WriteUsage(today string, count int, record map[string]int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if record == nil {
		record = map[string]int{}
	}
	record[today] = count
	if err := t.kv.Write(documentKey, record); err != nil {
		return fmt.Errorf("write usage log: %w", err)
	}
	return nil
}
