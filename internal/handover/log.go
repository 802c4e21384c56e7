package handover

import (
	"errors"
	"sync"

	"github.com/slocops/handover/internal/model"
)

// ErrDuplicateID is returned when a record with the same ID is already logged.
var ErrDuplicateID = errors.New("duplicate handover id")

// Log is the append-only handover log. Records are never removed and only
// their summary may be filled in after the fact.
type Log struct {
	mu      sync.RWMutex
	records []model.HandoverRecord
	index   map[string]int
}

// NewLog creates a log holding the given records in order.
func NewLog(records []model.HandoverRecord) *Log {
	l := &Log{index: make(map[string]int, len(records))}
	for _, r := range records {
		_ = l.Append(r)
	}
	return l
}

// Append adds a record to the end of the log.
func (l *Log) Append(rec model.HandoverRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.index[rec.ID]; ok {
		return ErrDuplicateID
	}
	l.index[rec.ID] = len(l.records)
	l.records = append(l.records, rec.Clone())
	return nil
}

// AttachSummary sets the summary of a record that has none yet.
// It reports whether the summary was attached.
func (l *Log) AttachSummary(id, summary string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[id]
	if !ok || l.records[i].Summary != "" {
		return false
	}
	l.records[i].Summary = summary
	return true
}

// Has reports whether a record with the given ID is logged.
func (l *Log) Has(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.index[id]
	return ok
}

// Get returns a copy of the record with the given ID.
func (l *Log) Get(id string) (model.HandoverRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[id]
	if !ok {
		return model.HandoverRecord{}, false
	}
	return l.records[i].Clone(), true
}

// List returns copies of all records in chronological order.
func (l *Log) List() []model.HandoverRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.HandoverRecord, len(l.records))
	for i, r := range l.records {
		out[i] = r.Clone()
	}
	return out
}

// Recent returns up to n records, newest first. n <= 0 returns all.
func (l *Log) Recent(n int) []model.HandoverRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > len(l.records) {
		n = len(l.records)
	}
	out := make([]model.HandoverRecord, 0, n)
	for i := len(l.records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, l.records[i].Clone())
	}
	return out
}

// Len returns the number of records.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
