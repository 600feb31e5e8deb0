package cache

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleCacheBasics(t *testing.T) {
	c, err := NewSimple[string]()
	require.NoError(t, err)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	created, err := c.Set("a", "1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = c.Set("a", "2")
	require.NoError(t, err)
	assert.False(t, created)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "2", v)

	existed, err := c.Delete("a")
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, 0, c.Size())
}

func TestSimpleCacheRejectsEmptyKey(t *testing.T) {
	c, err := NewSimple[int]()
	require.NoError(t, err)

	_, err = c.Set("", 1)
	assert.ErrorIs(t, err, ErrEmptyKey)

	_, err = c.Delete("")
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestLRUEviction(t *testing.T) {
	var evictedKeys []string
	c, err := NewLRU[int](2, WithEvictionCallback[int](func(key string, _ int) {
		evictedKeys = append(evictedKeys, key)
	}))
	require.NoError(t, err)

	_, err = c.Set("a", 1)
	require.NoError(t, err)
	_, err = c.Set("b", 2)
	require.NoError(t, err)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	_, err = c.Set("c", 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, evictedKeys)
	assert.Equal(t, 2, c.Size())

	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)

	assert.EqualValues(t, 1, c.Stats().Evictions())
}

func TestLRURequiresPositiveSize(t *testing.T) {
	_, err := NewLRU[int](0)
	assert.Error(t, err)
}

func TestStatistics(t *testing.T) {
	c, err := NewSimple[int]()
	require.NoError(t, err)

	_, _ = c.Set("a", 1)
	_, _ = c.Get("a")
	_, _ = c.Get("a")
	_, _ = c.Get("nope")

	stats := c.Stats()
	assert.EqualValues(t, 2, stats.Hits())
	assert.EqualValues(t, 1, stats.Misses())
	assert.EqualValues(t, 1, stats.Sets())
	assert.InDelta(t, 2.0/3.0, stats.HitRatio(), 1e-9)
	assert.EqualValues(t, 1, stats.CurrentSize())
}

func TestMetricsRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewLRU[int](4, WithMetrics[int](reg, "contexts"))
	require.NoError(t, err)

	_, _ = c.Set("a", 1)
	_, _ = c.Get("a")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["jsonld_cache_hits_total"])
	assert.True(t, names["jsonld_cache_size"])

	// Duplicate registration under the same name must fail.
	_, err = NewLRU[int](4, WithMetrics[int](reg, "contexts"))
	assert.Error(t, err)
}
