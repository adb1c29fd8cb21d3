package eval

import (
	"sync"
	"sync/atomic"
	"time"
)

// TranslationCache caches compiled predicates keyed by their logic string.
// Translation is pure and deterministic, so the raw logic string is a
// complete key, and the cached predicates are immutable and shared freely.
type TranslationCache struct {
	cache map[string]*cachedPredicate
	mu    sync.RWMutex

	// Statistics
	hits   int64
	misses int64

	// Configuration
	maxSize int
	ttl     time.Duration
}

type cachedPredicate struct {
	predicate *Predicate
	timestamp time.Time
}

// NewTranslationCache creates a predicate cache.
func NewTranslationCache(maxSize int, ttl time.Duration) *TranslationCache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &TranslationCache{
		cache:   make(map[string]*cachedPredicate),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Translate returns the compiled predicate for logicStr, translating and
// caching on a miss. Parse errors are never cached.
func (c *TranslationCache) Translate(logicStr string) (*Predicate, error) {
	if pred, ok := c.Get(logicStr); ok {
		return pred, nil
	}

	pred, err := Translate(logicStr)
	if err != nil {
		return nil, err
	}
	c.Set(logicStr, pred)
	return pred, nil
}

// Get retrieves a cached predicate if present and not expired.
func (c *TranslationCache) Get(logicStr string) (*Predicate, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	cached, ok := c.cache[logicStr]
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	// Expired entries are skipped here and reclaimed lazily on Set, which
	// avoids taking the write lock on the read path.
	if time.Since(cached.timestamp) > c.ttl {
		atomic.AddInt64(&c.misses, 1)
		return nil, false
	}

	atomic.AddInt64(&c.hits, 1)
	return cached.predicate, true
}

// Set stores a predicate in the cache.
func (c *TranslationCache) Set(logicStr string, pred *Predicate) {
	if c == nil || pred == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.cache) >= c.maxSize {
		c.evictExpired()

		if len(c.cache) >= c.maxSize {
			c.evictOldest()
		}
	}

	c.cache[logicStr] = &cachedPredicate{
		predicate: pred,
		timestamp: time.Now(),
	}
}

// Clear removes all cached predicates.
func (c *TranslationCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[string]*cachedPredicate)
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
}

// Stats returns cache statistics.
func (c *TranslationCache) Stats() (hits, misses int64, size int) {
	if c == nil {
		return 0, 0, 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses), len(c.cache)
}

// evictExpired removes expired entries. Caller holds the write lock.
func (c *TranslationCache) evictExpired() {
	now := time.Now()
	for key, cached := range c.cache {
		if now.Sub(cached.timestamp) > c.ttl {
			delete(c.cache, key)
		}
	}
}

// evictOldest removes the oldest entry. Caller holds the write lock.
func (c *TranslationCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, cached := range c.cache {
		if oldestKey == "" || cached.timestamp.Before(oldestTime) {
			oldestKey = key
			oldestTime = cached.timestamp
		}
	}

	if oldestKey != "" {
		delete(c.cache, oldestKey)
	}
}
