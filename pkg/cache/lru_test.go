package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthub/notifykit/pkg/cache"
)

func TestLRU_PutGet(t *testing.T) {
	t.Parallel()

	c := cache.New[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := cache.New(2, cache.WithOnEvict(func(key string, _ int) {
		evicted = append(evicted, key)
	}))

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // refresh "a", making "b" the eviction candidate
	c.Put("c", 3)

	assert.Equal(t, []string{"b"}, evicted)
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
}

func TestLRU_PutReturnsPrevious(t *testing.T) {
	t.Parallel()

	c := cache.New[string, int](2)
	c.Put("a", 1)

	old, existed := c.Put("a", 2)
	require.True(t, existed)
	assert.Equal(t, 1, old)

	v, _ := c.Get("a")
	assert.Equal(t, 2, v)
}

func TestLRU_Remove(t *testing.T) {
	t.Parallel()

	evictions := 0
	c := cache.New(2, cache.WithOnEvict(func(string, int) { evictions++ }))
	c.Put("a", 1)

	v, ok := c.Remove("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Zero(t, c.Len())
	// Explicit removal is not an eviction.
	assert.Zero(t, evictions)

	_, ok = c.Remove("a")
	assert.False(t, ok)
}

func TestLRU_ClearInvokesCallback(t *testing.T) {
	t.Parallel()

	evictions := 0
	c := cache.New(4, cache.WithOnEvict(func(string, int) { evictions++ }))
	c.Put("a", 1)
	c.Put("b", 2)

	c.Clear()
	assert.Equal(t, 2, evictions)
	assert.Zero(t, c.Len())
}

func TestLRU_KeysOrderedByRecency(t *testing.T) {
	t.Parallel()

	c := cache.New[string, int](4)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("c", 3)
	c.Get("a")

	assert.Equal(t, []string{"a", "c", "b"}, c.Keys())
}

func TestNew_PanicsOnInvalidCapacity(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { cache.New[string, int](0) })
}
