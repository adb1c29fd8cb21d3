package eval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheTranslate(t *testing.T) {
	cache := NewTranslationCache(10, time.Minute)

	pred1, err := cache.Translate("[a] = 1")
	require.NoError(t, err)

	pred2, err := cache.Translate("[a] = 1")
	require.NoError(t, err)
	assert.Same(t, pred1, pred2, "repeat translation returns the cached predicate")

	hits, misses, size := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, 1, size)
}

func TestCacheParseErrorsNotCached(t *testing.T) {
	cache := NewTranslationCache(10, time.Minute)

	_, err := cache.Translate("[a] >=")
	require.Error(t, err)
	_, err = cache.Translate("[a] >=")
	require.Error(t, err)

	_, _, size := cache.Stats()
	assert.Equal(t, 0, size)
}

func TestCacheExpiry(t *testing.T) {
	cache := NewTranslationCache(10, 5*time.Millisecond)

	_, err := cache.Translate("[a] = 1")
	require.NoError(t, err)

	_, ok := cache.Get("[a] = 1")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = cache.Get("[a] = 1")
	assert.False(t, ok, "expired entry must not be returned")
}

func TestCacheEviction(t *testing.T) {
	cache := NewTranslationCache(2, time.Minute)

	for _, logicStr := range []string{"[a] = 1", "[b] = 2", "[c] = 3"} {
		_, err := cache.Translate(logicStr)
		require.NoError(t, err)
	}

	_, _, size := cache.Stats()
	assert.Equal(t, 2, size, "cache never exceeds its size limit")
}

func TestCacheClear(t *testing.T) {
	cache := NewTranslationCache(10, time.Minute)

	_, err := cache.Translate("[a] = 1")
	require.NoError(t, err)
	cache.Clear()

	hits, misses, size := cache.Stats()
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(0), misses)
	assert.Equal(t, 0, size)
}

func TestCacheNilReceiver(t *testing.T) {
	var cache *TranslationCache

	_, ok := cache.Get("[a] = 1")
	assert.False(t, ok)
	cache.Set("[a] = 1", nil)
	cache.Clear()

	hits, misses, size := cache.Stats()
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(0), misses)
	assert.Equal(t, 0, size)

	// Translation still works without a cache in front of it.
	pred, err := cache.Translate("[a] = 1")
	require.NoError(t, err)
	assert.NotNil(t, pred)
}

func TestCacheDefaults(t *testing.T) {
	cache := NewTranslationCache(0, 0)
	_, err := cache.Translate("[a] = 1")
	require.NoError(t, err)

	_, ok := cache.Get("[a] = 1")
	assert.True(t, ok)
}
