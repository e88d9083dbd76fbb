package cache

import (
	"strings"
	"sync"
	"time"
)

// memoryEntry is one cached value in the per-process tier.
type memoryEntry struct {
	value     any
	expiresAt time.Time
}

// memoryStore is the in-process tier: a TTL map that keeps expired entries
// around so a failed refresh can still serve the previous value.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	statsMu   sync.Mutex
	hits      int64
	misses    int64
	evictions int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

// get returns the value for key. ok reports presence; fresh reports whether
// the entry is still within its TTL. Expired entries are returned rather
// than deleted; they are the stale fallback.
func (m *memoryStore) get(key string, now time.Time) (value any, fresh, ok bool) {
	m.mu.RLock()
	entry, present := m.entries[key]
	m.mu.RUnlock()

	if !present {
		m.recordMiss()
		return nil, false, false
	}
	if now.After(entry.expiresAt) {
		m.recordMiss()
		return entry.value, false, true
	}
	m.recordHit()
	return entry.value, true, true
}

// peek returns the value for key without touching the counters.
func (m *memoryStore) peek(key string) (any, bool) {
	m.mu.RLock()
	entry, present := m.entries[key]
	m.mu.RUnlock()
	if !present {
		return nil, false
	}
	return entry.value, true
}

func (m *memoryStore) set(key string, value any, ttl time.Duration, now time.Time) {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiresAt: now.Add(ttl)}
	m.mu.Unlock()
}

// deletePrefix removes every entry whose key starts with prefix.
func (m *memoryStore) deletePrefix(prefix string) {
	var removed int64
	m.mu.Lock()
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
			removed++
		}
	}
	m.mu.Unlock()

	m.statsMu.Lock()
	m.evictions += removed
	m.statsMu.Unlock()
}

func (m *memoryStore) clear() {
	m.mu.Lock()
	removed := int64(len(m.entries))
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()

	m.statsMu.Lock()
	m.evictions += removed
	m.statsMu.Unlock()
}

func (m *memoryStore) snapshot() Stats {
	m.mu.RLock()
	keys := len(m.entries)
	m.mu.RUnlock()

	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	return Stats{
		Hits:       m.hits,
		Misses:     m.misses,
		Evictions:  m.evictions,
		MemoryKeys: keys,
	}
}

func (m *memoryStore) recordHit() {
	m.statsMu.Lock()
	m.hits++
	m.statsMu.Unlock()
}

func (m *memoryStore) recordMiss() {
	m.statsMu.Lock()
	m.misses++
	m.statsMu.Unlock()
}
