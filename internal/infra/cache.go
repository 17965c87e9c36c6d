// Package infra provides shared infrastructure for the identifier checker: a bounded
// in-memory result cache with TTL expiry and LRU eviction.
package infra

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Cache size limits to prevent unbounded memory growth
const (
	DefaultMaxCacheEntries = 10000           // Maximum number of cache entries
	DefaultCacheTTL        = 1 * time.Hour   // Entry lifetime when none is given
	DefaultCacheCleanup    = 5 * time.Minute // How often to run cache cleanup
)

// entry holds a cached value with expiration and LRU tracking
type entry[V any] struct {
	value      V
	expiresAt  time.Time
	accessedAt atomic.Int64 // unix nanos, for LRU eviction
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Evictions uint64 `json:"evictions"`
	Size      int64  `json:"size"`
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	cleanupInterval time.Duration
	now             func() time.Time
	onEvict         func(n int)
}

// WithCleanupInterval sets how often expired entries are swept.
func WithCleanupInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.cleanupInterval = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithEvictHook registers fn to be called with the number of entries removed by each
// LRU eviction or expiry sweep.
func WithEvictHook(fn func(n int)) Option {
	return func(o *options) { o.onEvict = fn }
}

// Cache is a concurrency-safe LRU cache with TTL support, keyed by string.
type Cache[V any] struct {
	entries    sync.Map // key (string) -> *entry[V]
	count      atomic.Int64
	maxEntries int64
	mu         sync.Mutex // Protects eviction operations
	opts       options

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64

	// Graceful shutdown
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewCache creates a cache holding at most maxEntries values and starts its cleanup
// goroutine. Callers must Close the cache.
func NewCache[V any](maxEntries int, opts ...Option) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCacheEntries
	}
	o := options{
		cleanupInterval: DefaultCacheCleanup,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Cache[V]{
		maxEntries: int64(maxEntries),
		opts:       o,
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a cached value if it exists and hasn't expired
func (c *Cache[V]) Get(key string) (V, bool) {
	if v, ok := c.entries.Load(key); ok {
		e := v.(*entry[V])
		now := c.opts.now()
		if now.Before(e.expiresAt) {
			e.accessedAt.Store(now.UnixNano())
			c.hits.Add(1)
			return e.value, true
		}
		// Expired. CompareAndDelete keeps a concurrent Set of a fresh entry intact.
		if c.entries.CompareAndDelete(key, e) {
			c.count.Add(-1)
		}
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set stores a value under key for ttl. A non-positive ttl uses DefaultCacheTTL.
// When the cache grows past its limit the least recently used tenth is evicted before
// Set returns.
func (c *Cache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	now := c.opts.now()
	e := &entry[V]{value: value, expiresAt: now.Add(ttl)}
	e.accessedAt.Store(now.UnixNano())

	// Only count new entries
	if _, existed := c.entries.Swap(key, e); existed {
		return
	}
	if n := c.count.Add(1); n > c.maxEntries {
		c.evictLRU(int(n - c.maxEntries + c.maxEntries/10))
	}
}

// Delete removes a key from the cache
func (c *Cache[V]) Delete(key string) {
	if _, existed := c.entries.LoadAndDelete(key); existed {
		c.count.Add(-1)
	}
}

// Size returns the current number of entries in the cache
func (c *Cache[V]) Size() int64 {
	return c.count.Load()
}

// Stats returns the current counters.
func (c *Cache[V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.count.Load(),
	}
}

// Close stops the background cleanup goroutine and waits for it to exit.
func (c *Cache[V]) Close() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	<-c.done
}

// cleanupLoop periodically cleans up expired entries
func (c *Cache[V]) cleanupLoop() {
	defer close(c.done)
	ticker := time.NewTicker(c.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries and evicts LRU entries if over limit
func (c *Cache[V]) cleanup() {
	now := c.opts.now()
	var expired int64

	c.entries.Range(func(key, value any) bool {
		e := value.(*entry[V])
		if !now.Before(e.expiresAt) && c.entries.CompareAndDelete(key, e) {
			expired++
		}
		return true
	})

	if expired > 0 {
		c.count.Add(-expired)
		c.notifyEvict(int(expired))
	}

	if n := c.count.Load(); n > c.maxEntries {
		c.evictLRU(int(n - c.maxEntries + c.maxEntries/10)) // Evict 10% extra
	}
}

// evictLRU removes the count least recently used entries
func (c *Cache[V]) evictLRU(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	type candidate struct {
		key        string
		e          *entry[V]
		accessedAt int64
	}
	var candidates []candidate

	c.entries.Range(func(key, value any) bool {
		e := value.(*entry[V])
		candidates = append(candidates, candidate{
			key:        key.(string),
			e:          e,
			accessedAt: e.accessedAt.Load(),
		})
		return true
	})

	// Oldest first
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].accessedAt < candidates[j].accessedAt
	})

	evicted := 0
	for _, cand := range candidates {
		if evicted >= count {
			break
		}
		if c.entries.CompareAndDelete(cand.key, cand.e) {
			evicted++
		}
	}

	if evicted > 0 {
		c.count.Add(-int64(evicted))
		c.notifyEvict(evicted)
	}
}

func (c *Cache[V]) notifyEvict(n int) {
	c.evictions.Add(uint64(n))
	if c.opts.onEvict != nil {
		c.opts.onEvict(n)
	}
}
