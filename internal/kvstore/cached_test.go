package kvstore

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maragym/gymlog/internal/mocks"
)

// countingBackend counts Get calls on top of a MemoryBackend.
type countingBackend struct {
	*MemoryBackend
	gets int
	err  error
}

func (c *countingBackend) Get(key string) (string, bool, error) {
	c.gets++
	return c.MemoryBackend.Get(key)
}

func (c *countingBackend) Set(key, value string) error {
	if c.err != nil {
		return c.err
	}
	return c.MemoryBackend.Set(key, value)
}

func TestCachedBackend_ReadsAreCached(t *testing.T) {
	inner := &countingBackend{MemoryBackend: NewMemoryBackend()}
	require.NoError(t, inner.MemoryBackend.Set("k", "v"))
	cached := NewCachedBackend(inner, time.Minute)

	for i := 0; i < 3; i++ {
		v, ok, err := cached.Get("k")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "v", v)
	}
	require.Equal(t, 1, inner.gets)
}

func TestCachedBackend_MissesAreCached(t *testing.T) {
	inner := &countingBackend{MemoryBackend: NewMemoryBackend()}
	cached := NewCachedBackend(inner, time.Minute)

	_, ok, err := cached.Get("absent")
	require.NoError(t, err)
	require.False(t, ok)
	_, _, _ = cached.Get("absent")

	require.Equal(t, 1, inner.gets)
}

func TestCachedBackend_WriteThrough(t *testing.T) {
	inner := &countingBackend{MemoryBackend: NewMemoryBackend()}
	cached := NewCachedBackend(inner, time.Minute)

	require.NoError(t, cached.Set("k", "v1"))
	raw, _, _ := inner.MemoryBackend.Get("k")
	require.Equal(t, "v1", raw)

	v, ok, err := cached.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v1", v)
	require.Equal(t, 0, inner.gets, "served from cache after write")

	require.NoError(t, cached.Remove("k"))
	_, ok, err = cached.Get("k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCachedBackend_FailedWriteInvalidates(t *testing.T) {
	inner := &countingBackend{MemoryBackend: NewMemoryBackend()}
	require.NoError(t, inner.MemoryBackend.Set("k", "old"))
	cached := NewCachedBackend(inner, time.Minute)
	_, _, _ = cached.Get("k")

	inner.err = errors.New("read-only")
	require.Error(t, cached.Set("k", "new"))

	v, _, err := cached.Get("k")
	require.NoError(t, err)
	require.Equal(t, "old", v)
	require.Equal(t, 2, inner.gets)
}

func TestCachedBackend_UsesCacheManager(t *testing.T) {
	manager := mocks.NewMockCacheManager[string, lookup](t)
	manager.EXPECT().GetWithRefresh(mock.Anything, "mara-gym/exercises", time.Minute).
		Return(lookup{Value: "[]", Found: true}, true)

	cached := newCachedBackend(NewMemoryBackend(), manager, time.Minute)

	v, ok, err := cached.Get("mara-gym/exercises")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "[]", v)
}

func TestCachedBackend_StoreRecoversCorruptValue(t *testing.T) {
	inner := NewMemoryBackend()
	require.NoError(t, inner.Set("mara-gym/exercises", "{not json"))
	s := New(NewCachedBackend(inner, time.Minute), "")

	got, err := Read(s, "exercises", []record{})
	require.NoError(t, err)
	require.Empty(t, got)
	require.Empty(t, inner.Snapshot())
}
