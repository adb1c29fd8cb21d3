package redcap

import (
	"github.com/dgraph-io/ristretto"
)

// Value interning avoids re-classifying the same raw string over and over
// when building columns from study data, where the same response codes
// repeat across thousands of rows. The cache is purely a construction
// optimization: a cache miss just classifies again, and two independently
// constructed Values for the same raw string always compare equal.

// internCache holds classified values keyed by raw string, with admission
// and eviction handled by ristretto so a pathological export cannot pin
// unbounded memory.
var internCache = newInternCache()

func newInternCache() *ristretto.Cache {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1 << 16,
		MaxCost:     1 << 22, // ~4MB of raw strings
		BufferItems: 64,
	})
	if err != nil {
		// Static configuration; NewCache only fails on invalid config.
		panic(err)
	}
	return cache
}

// Intern returns a Value for raw, reusing a cached classification when one
// is available.
func Intern(raw string) Value {
	if cached, ok := internCache.Get(raw); ok {
		return cached.(Value)
	}
	v := NewValue(raw)
	internCache.Set(raw, v, int64(len(raw))+16)
	return v
}

// ClearInterns drops all cached values. Useful for tests or to reclaim
// memory between reports.
func ClearInterns() {
	internCache.Clear()
}
