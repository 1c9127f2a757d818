// Package memory holds the in-process repositories that back every store.
// Nothing is persisted; a restart returns to the seed data.
package memory

import (
	"sync"
	"time"
)

// idSequence hands out creation-time derived ids (unix milliseconds) that
// stay strictly increasing when several records land in the same millisecond.
type idSequence struct {
	last int64
}

func (s *idSequence) next(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

func (s *idSequence) observe(id int64) {
	if id > s.last {
		s.last = id
	}
}

// base carries what every repository shares: the lock, the clock, the id
// sequence and the revision counter read by the analytics cache.
type base struct {
	mu       sync.RWMutex
	now      func() time.Time
	ids      idSequence
	revision uint64
}

func newBase() base {
	return base{now: time.Now}
}

// Revision reports how many mutations the repository has committed.
func (b *base) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// Option tunes a repository at construction.
type Option func(*base)

// WithClock replaces time.Now, used by tests for deterministic ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		b.now = now
	}
}
