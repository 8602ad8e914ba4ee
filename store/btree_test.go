package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGet(t *testing.T, db interface {
	Get([]byte) ([]byte, error)
}, key string) []byte {
	t.Helper()
	v, err := db.Get([]byte(key))
	require.NoError(t, err)
	return v
}

func mustHas(t *testing.T, db interface {
	Has([]byte) (bool, error)
}, key string) bool {
	t.Helper()
	ok, err := db.Has([]byte(key))
	require.NoError(t, err)
	return ok
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	assert.Nil(t, mustGet(t, base, "french"))
	assert.False(t, mustHas(t, base, "french"))
	require.NoError(t, base.Set([]byte("french"), []byte("fry")))
	assert.Equal(t, []byte("fry"), mustGet(t, base, "french"))
	assert.True(t, mustHas(t, base, "french"))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, []byte("fry"), mustGet(t, cache, "french"))

	// writing more data is only visible in the cache
	require.NoError(t, cache.Set([]byte("LA"), []byte("Dodgers")))
	assert.Equal(t, []byte("Dodgers"), mustGet(t, cache, "LA"))
	assert.Nil(t, mustGet(t, base, "LA"))
	assert.False(t, mustHas(t, base, "LA"))

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assert.Equal(t, []byte("Dodgers"), mustGet(t, base, "LA"))

	// we can discard one
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set([]byte("Bayern"), []byte("Munich")))
	c2.Discard()
	assert.Nil(t, mustGet(t, base, "Bayern"))

	// and commit another
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete([]byte("french")))
	assert.False(t, mustHas(t, c3, "french"))
	assert.True(t, mustHas(t, base, "french"))
	require.NoError(t, c3.Write())

	assert.Nil(t, mustGet(t, base, "french"))
	assert.Equal(t, []byte("Dodgers"), mustGet(t, base, "LA"))
}

func TestBTreeCacheDiscardedWriteIsEmpty(t *testing.T) {
	base := MemStore()
	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("a"), []byte("1")))
	cache.Discard()

	// A discarded cache has nothing left to flush.
	require.NoError(t, cache.Write())
	assert.Nil(t, mustGet(t, base, "a"))
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "b", "c", "d"} {
		require.NoError(t, base.Set([]byte(k), []byte("base-"+k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache-b")))
	require.NoError(t, cache.Delete([]byte("c")))
	require.NoError(t, cache.Set([]byte("e"), []byte("cache-e")))

	cases := map[string]struct {
		start, end []byte
		want       []Model
	}{
		"full range": {
			want: []Model{
				Pair([]byte("a"), []byte("base-a")),
				Pair([]byte("b"), []byte("cache-b")),
				Pair([]byte("d"), []byte("base-d")),
				Pair([]byte("e"), []byte("cache-e")),
			},
		},
		"bounded range": {
			start: []byte("b"),
			end:   []byte("e"),
			want: []Model{
				Pair([]byte("b"), []byte("cache-b")),
				Pair([]byte("d"), []byte("base-d")),
			},
		},
		"open end": {
			start: []byte("d"),
			want: []Model{
				Pair([]byte("d"), []byte("base-d")),
				Pair([]byte("e"), []byte("cache-e")),
			},
		},
		"open start": {
			end: []byte("b"),
			want: []Model{
				Pair([]byte("a"), []byte("base-a")),
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			it, err := cache.Iterator(tc.start, tc.end)
			require.NoError(t, err)
			got, err := ReadAll(it)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNonAtomicBatch(t *testing.T) {
	base := MemStore()
	b := NewNonAtomicBatch(base)
	require.NoError(t, b.Set([]byte("x"), []byte("1")))
	require.NoError(t, b.Delete([]byte("y")))
	assert.Len(t, b.Ops(), 2)
	assert.Nil(t, mustGet(t, base, "x"))

	require.NoError(t, b.Write())
	assert.Empty(t, b.Ops())
	assert.Equal(t, []byte("1"), mustGet(t, base, "x"))
}
