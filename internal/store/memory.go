package store

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process TTL store. Reads of live entries take the
// read lock only; expired entries are pruned lazily on access.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory creates a memory store with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the live entry for (symbol, interval), if any.
func (m *Memory) Get(_ context.Context, symbol, interval string) (Entry, bool) {
	key := Key(symbol, interval)

	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return Entry{}, false
	}

	if m.now().Sub(e.FetchedAt) > m.ttl {
		m.mu.Lock()
		// Re-check under the write lock: a concurrent Put may have
		// refreshed the entry since the read above.
		if cur, ok := m.entries[key]; ok && m.now().Sub(cur.FetchedAt) > m.ttl {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return Entry{}, false
	}
	return e, true
}

// Put stores the entry under (symbol, interval).
func (m *Memory) Put(_ context.Context, symbol, interval string, e Entry) {
	m.mu.Lock()
	m.entries[Key(symbol, interval)] = e
	m.mu.Unlock()
}
