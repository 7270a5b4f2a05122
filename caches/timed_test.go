package caches

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimedCache_NoTTL(t *testing.T) {
	c := NewTimedCache[string](0)
	c.Set("a", "value")

	got, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, "value", got)

	_, ok = c.Get("missing")
	require.False(t, ok)
}

func TestTimedCache_Expiry(t *testing.T) {
	c := NewTimedCache[int](10 * time.Millisecond)
	c.Set("a", 1)

	_, ok := c.Get("a")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("a")
	require.False(t, ok)
}

func TestTimedCache_PerEntryTTLOverridesGlobal(t *testing.T) {
	c := NewTimedCache[int](10 * time.Millisecond)
	c.SetWithTTL("forever", 1, 0)
	c.SetWithTTL("long", 2, time.Hour)

	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("forever")
	require.True(t, ok)
	_, ok = c.Get("long")
	require.True(t, ok)
}

func TestTimedCache_ForceClean(t *testing.T) {
	c := NewTimedCache[int](10 * time.Millisecond)
	c.Set("a", 1)
	c.SetWithTTL("b", 2, 0)

	time.Sleep(20 * time.Millisecond)
	c.ForceClean()

	require.Equal(t, 1, c.Len())
	_, ok := c.Get("b")
	require.True(t, ok)
}

func TestTimedCache_Delete(t *testing.T) {
	c := NewTimedCache[int](0)
	c.Set("a", 1)
	c.Delete("a")

	_, ok := c.Get("a")
	require.False(t, ok)
}
