package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New[[]string]()

	c.Set("k", []string{"a", "b"}, time.Minute)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, c.Len())
}

func TestGetMissing(t *testing.T) {
	c := New[int]()

	got, ok := c.Get("nope")
	assert.False(t, ok)
	assert.Zero(t, got)
}

func TestExpiry(t *testing.T) {
	c := New[string]()

	c.Set("k", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestKeyIsStableAndDistinct(t *testing.T) {
	assert.Equal(t, Key("AI", "한국어", 3), Key("AI", "한국어", 3))
	assert.NotEqual(t, Key("AI", "한국어", 3), Key("AI", "한국어", 5))
	assert.NotEqual(t, Key("AI", "한국어", 3), Key("AI", "영어", 3))
	assert.NotEqual(t, Key("AI", "한국어", 3), Key("로봇", "한국어", 3))
}
