// Package cache sits between the command layer and the API client. It keeps
// two tiers: an in-process map that memoizes and de-duplicates fetches
// within a single invocation, and an on-disk store that carries recent
// responses across invocations.
//
// Entries are keyed by resource name plus a hash of the serialized query
// parameters, so any filter change (pagination offset included) is a
// distinct entry. Reads within the TTL are served from cache; a failed
// refresh is retried once and then degrades to the previous payload when
// one exists, surfacing both the error and the stale data. Mutations do not
// pass through the cache; callers invalidate the affected resource after a
// successful write.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/timshannon/badgerhold/v4"
)

// DefaultTTL is how long a cached response counts as fresh.
const DefaultTTL = 30 * time.Second

// Entry is one cached response in the on-disk tier.
type Entry struct {
	Key       string
	Resource  string
	Payload   []byte
	FetchedAt time.Time
	TTL       time.Duration
}

// Expired reports whether the entry is past its TTL. Expired entries stay
// in the store as stale fallbacks until overwritten or invalidated.
func (e Entry) Expired(now time.Time) bool {
	return now.Sub(e.FetchedAt) > e.TTL
}

// Stats is a snapshot of cache activity for the current process plus the
// size of the on-disk tier.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	MemoryKeys  int
	DiskEntries int
}

// Cache is the two-tier query cache. The disk tier is optional; a nil store
// leaves only the in-process tier active.
type Cache struct {
	memory *memoryStore
	disk   *badgerhold.Store
	ttl    time.Duration
	logger *slog.Logger

	mu       sync.Mutex
	inflight map[string]*flight
}

// flight tracks one in-progress fetch so concurrent calls for the same key
// share a single execution.
type flight struct {
	done  chan struct{}
	value any
	err   error
}

// Option adjusts cache construction.
type Option func(*Cache)

// WithTTL overrides the default freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// Open creates a cache with the on-disk tier rooted at dir.
func Open(dir string, logger *slog.Logger, opts ...Option) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("cache: mkdir failed: %w", err)
	}

	options := badgerhold.DefaultOptions
	options.Dir = dir
	options.ValueDir = dir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, fmt.Errorf("cache: failed to open store: %w", err)
	}

	c := newCache(logger, opts...)
	c.disk = store
	return c, nil
}

// NewMemory creates a cache without the on-disk tier.
func NewMemory(logger *slog.Logger, opts ...Option) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return newCache(logger, opts...)
}

func newCache(logger *slog.Logger, opts ...Option) *Cache {
	c := &Cache{
		memory:   newMemoryStore(),
		ttl:      DefaultTTL,
		logger:   logger,
		inflight: make(map[string]*flight),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the on-disk store.
func (c *Cache) Close() error {
	if c.disk == nil {
		return nil
	}
	if err := c.disk.Close(); err != nil {
		return fmt.Errorf("cache: close failed: %w", err)
	}
	return nil
}

// Options adjusts a single Fetch call.
type Options struct {
	// Bypass skips cache reads for this call. The fresh result is still
	// stored, so later reads can reuse it.
	Bypass bool
	// TTL overrides the cache default for the stored entry.
	TTL time.Duration
}

// Result is the outcome of a cached fetch. Err and Data can both be set:
// when a refresh fails and an expired entry exists, Data holds the stale
// payload and Stale is true.
type Result[T any] struct {
	Data      T
	Err       error
	Stale     bool
	FromCache bool
}

// Fetch returns the cached value for resource and params, or runs fetch to
// produce it. Concurrent calls for the same key share one execution. A
// failed fetch is retried once unless the context is already done; if the
// retry also fails, the previous payload (when present) is returned
// alongside the error.
func Fetch[T any](ctx context.Context, c *Cache, resource string, params any, opts Options, fetch func(context.Context) (T, error)) Result[T] {
	key := Key(resource, params)
	ttl := c.ttl
	if opts.TTL > 0 {
		ttl = opts.TTL
	}

	if !opts.Bypass {
		if value, fresh, ok := c.memory.get(key, time.Now()); ok && fresh {
			if typed, matches := value.(T); matches {
				return Result[T]{Data: typed, FromCache: true}
			}
		}
		if entry, ok := c.diskGet(key); ok && !entry.Expired(time.Now()) {
			var typed T
			if err := json.Unmarshal(entry.Payload, &typed); err == nil {
				c.memory.set(key, typed, ttl, time.Now())
				c.memory.recordHit()
				return Result[T]{Data: typed, FromCache: true}
			}
		}
	}

	c.mu.Lock()
	if existing, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-existing.done:
		case <-ctx.Done():
			return Result[T]{Err: ctx.Err()}
		}
		if existing.err != nil {
			return staleResult[T](c, key, existing.err)
		}
		if typed, matches := existing.value.(T); matches {
			return Result[T]{Data: typed}
		}
		return Result[T]{Err: fmt.Errorf("cache: conflicting types for key %s", key)}
	}
	f := &flight{done: make(chan struct{})}
	c.inflight[key] = f
	c.mu.Unlock()

	value, err := fetch(ctx)
	if err != nil && ctx.Err() == nil {
		c.logger.Debug("fetch failed, retrying once", "resource", resource, "error", err)
		value, err = fetch(ctx)
	}

	f.value, f.err = value, err
	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
	close(f.done)

	if err != nil {
		return staleResult[T](c, key, err)
	}

	c.memory.set(key, value, ttl, time.Now())
	if payload, merr := json.Marshal(value); merr == nil {
		c.diskPut(key, resource, payload, ttl)
	} else {
		c.logger.Warn("cache payload not serializable", "resource", resource, "error", merr)
	}
	return Result[T]{Data: value}
}

// staleResult falls back to the most recent payload for key, expired or
// not, and attaches fetchErr so the caller can report both.
func staleResult[T any](c *Cache, key string, fetchErr error) Result[T] {
	if value, ok := c.memory.peek(key); ok {
		if typed, matches := value.(T); matches {
			return Result[T]{Data: typed, Err: fetchErr, Stale: true, FromCache: true}
		}
	}
	if entry, ok := c.diskGet(key); ok {
		var typed T
		if err := json.Unmarshal(entry.Payload, &typed); err == nil {
			return Result[T]{Data: typed, Err: fetchErr, Stale: true, FromCache: true}
		}
	}
	return Result[T]{Err: fetchErr}
}

// InvalidateResource drops every entry for a resource from both tiers.
// Mutating commands call this after a successful write.
func (c *Cache) InvalidateResource(resource string) error {
	c.memory.deletePrefix(resource + ":")
	if c.disk == nil {
		return nil
	}
	if err := c.disk.DeleteMatching(&Entry{}, badgerhold.Where("Resource").Eq(resource)); err != nil {
		return fmt.Errorf("cache: invalidate %s failed: %w", resource, err)
	}
	return nil
}

// Clear drops every entry from both tiers.
func (c *Cache) Clear() error {
	c.memory.clear()
	if c.disk == nil {
		return nil
	}
	if err := c.disk.DeleteMatching(&Entry{}, nil); err != nil {
		return fmt.Errorf("cache: clear failed: %w", err)
	}
	return nil
}

// Stats reports in-process counters and the on-disk entry count.
func (c *Cache) Stats() (Stats, error) {
	stats := c.memory.snapshot()
	if c.disk == nil {
		return stats, nil
	}
	count, err := c.disk.Count(&Entry{}, nil)
	if err != nil {
		return stats, fmt.Errorf("cache: count failed: %w", err)
	}
	stats.DiskEntries = int(count)
	return stats, nil
}

// ResourceCounts returns the number of stored disk entries per resource.
func (c *Cache) ResourceCounts() (map[string]int, error) {
	counts := make(map[string]int)
	if c.disk == nil {
		return counts, nil
	}
	var entries []Entry
	if err := c.disk.Find(&entries, nil); err != nil {
		return nil, fmt.Errorf("cache: list failed: %w", err)
	}
	for _, entry := range entries {
		counts[entry.Resource]++
	}
	return counts, nil
}

func (c *Cache) diskGet(key string) (*Entry, bool) {
	if c.disk == nil {
		return nil, false
	}
	var entry Entry
	if err := c.disk.Get(key, &entry); err != nil {
		if !errors.Is(err, badgerhold.ErrNotFound) {
			c.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return &entry, true
}

func (c *Cache) diskPut(key, resource string, payload []byte, ttl time.Duration) {
	if c.disk == nil {
		return
	}
	entry := Entry{
		Key:       key,
		Resource:  resource,
		Payload:   payload,
		FetchedAt: time.Now(),
		TTL:       ttl,
	}
	if err := c.disk.Upsert(key, &entry); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}
