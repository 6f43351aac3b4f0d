package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixStore(t *testing.T) {
	parent := MemStore()
	a := NewPrefixStore(parent, []byte("a:"))
	b := NewPrefixStore(parent, []byte("b:"))

	require.NoError(t, a.Set([]byte("key"), []byte("one")))
	require.NoError(t, b.Set([]byte("key"), []byte("two")))

	assert.Equal(t, []byte("one"), get(t, a, []byte("key")))
	assert.Equal(t, []byte("two"), get(t, b, []byte("key")))
	assert.Equal(t, []byte("one"), get(t, parent, []byte("a:key")))
	assert.False(t, has(t, parent, []byte("key")))

	require.NoError(t, a.Delete([]byte("key")))
	assert.False(t, has(t, a, []byte("key")))
	assert.True(t, has(t, b, []byte("key")))
}

func TestPrefixStoreBatch(t *testing.T) {
	parent := MemStore()
	p := NewPrefixStore(parent, []byte{0x01})

	batch := p.NewBatch()
	require.NoError(t, batch.Set([]byte("x"), []byte("1")))
	require.NoError(t, batch.Set([]byte("y"), []byte("2")))
	require.NoError(t, batch.Delete([]byte("x")))
	assert.False(t, has(t, parent, []byte("\x01y")))

	require.NoError(t, batch.Write())
	assert.False(t, has(t, p, []byte("x")))
	assert.Equal(t, []byte("2"), get(t, parent, []byte("\x01y")))
}

func TestPrefixStoreCopiesPrefix(t *testing.T) {
	prefix := []byte("p:")
	parent := MemStore()
	p := NewPrefixStore(parent, prefix)
	prefix[0] = 'q'

	require.NoError(t, p.Set([]byte("k"), []byte("v")))
	assert.True(t, has(t, parent, []byte("p:k")))
}
