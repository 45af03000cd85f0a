package audit

import (
	"context"
	"sync"
	"time"
)

// MemoryLog accumulates entries in-memory for tests and scaffolding.
type MemoryLog struct {
	mu      sync.Mutex
	entries []Entry
	err     error
	now     func() time.Time
}

var _ Log = (*MemoryLog)(nil)

// NewMemoryLog constructs an empty log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{now: time.Now}
}

// LogChange stores the entry.
func (l *MemoryLog) LogChange(_ context.Context, entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	if err := entry.validate(); err != nil {
		return err
	}
	l.entries = append(l.entries, entry.normalized(l.now))
	return nil
}

// Fail makes subsequent LogChange calls return err. Pass nil to recover.
func (l *MemoryLog) Fail(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

// List returns a snapshot of recorded entries.
func (l *MemoryLog) List(context.Context) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

// Entries is List without the context, for tests.
func (l *MemoryLog) Entries() []Entry {
	entries, _ := l.List(context.Background())
	return entries
}
