package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, kv ReadOnlyKVStore, key []byte) []byte {
	t.Helper()
	v, err := kv.Get(key)
	require.NoError(t, err)
	return v
}

func has(t *testing.T, kv ReadOnlyKVStore, key []byte) bool {
	t.Helper()
	ok, err := kv.Has(key)
	require.NoError(t, err)
	return ok
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
// including layering, writing and discarding.
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	k, v := []byte("swaps/swap1"), []byte("record")
	assert.Nil(t, get(t, base, k))
	assert.False(t, has(t, base, k))
	require.NoError(t, base.Set(k, v))
	assert.Equal(t, v, get(t, base, k))
	assert.True(t, has(t, base, k))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, v, get(t, cache, k))

	// writing more data is only visible in the cache
	k2, v2 := []byte("swapStates/swap1"), []byte{1}
	require.NoError(t, cache.Set(k2, v2))
	assert.Equal(t, v2, get(t, cache, k2))
	assert.Nil(t, get(t, base, k2))
	assert.False(t, has(t, base, k2))

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assert.Equal(t, v, get(t, base, k))
	assert.Equal(t, v2, get(t, base, k2))

	// we can discard one
	k3, v3 := []byte("swapStates/swap2"), []byte{3}
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set(k3, v3))
	c2.Discard()
	assert.Nil(t, get(t, base, k3))

	// and commit another with a delete
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assert.False(t, has(t, c3, k))
	require.NoError(t, c3.Write())

	assert.Nil(t, get(t, base, k))
	assert.Equal(t, v2, get(t, base, k2))

	// and to test devnull....
	require.NoError(t, base.Write())
	assert.Nil(t, get(t, devnull, k2))
}

func TestPrefixStoreNamespaces(t *testing.T) {
	db := MemStore()
	a := NewPrefixStore(db, []byte{0x01, 'a'})
	b := NewPrefixStore(db, []byte{0x01, 'b'})

	require.NoError(t, a.Set([]byte("key"), []byte("from a")))
	require.NoError(t, b.Set([]byte("key"), []byte("from b")))

	assert.Equal(t, []byte("from a"), get(t, a, []byte("key")))
	assert.Equal(t, []byte("from b"), get(t, b, []byte("key")))
	assert.Equal(t, []byte("from a"), get(t, db, []byte("\x01akey")))

	batch := a.NewBatch()
	require.NoError(t, batch.Delete([]byte("key")))
	assert.True(t, has(t, a, []byte("key")))
	require.NoError(t, batch.Write())
	assert.False(t, has(t, a, []byte("key")))
	assert.True(t, has(t, b, []byte("key")))
}
