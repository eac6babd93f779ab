package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheSetGet(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	val, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, val)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := New[string, string](10*time.Millisecond, time.Minute)
	defer c.Close()

	c.Set("k", "v")
	_, ok := c.Get("k")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	// Süre doldu — Get miss döner, entry henüz map'te dursa bile
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCacheEvictExpired(t *testing.T) {
	c := New[string, int](5*time.Millisecond, 10*time.Millisecond)
	defer c.Close()

	c.Set("stale", 1)
	require.Equal(t, 1, c.Len())

	// Cleanup goroutine'i süresi dolan entry'yi fiziksel olarak siler
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("other", 3)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.DeleteFunc(func(key string) bool { return key == "b" })
	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("other")
	assert.True(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}
