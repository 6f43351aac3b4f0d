package store

// PrefixStore exposes a namespace of a parent store. All keys written and
// read through it are transparently prefixed.
//
// Prefixes must be chosen so that no prefix is a prefix of another one, for
// example by using fixed length prefixes. Otherwise namespaces overlap.
type PrefixStore struct {
	prefix []byte
	parent KVStore
}

var _ KVStore = PrefixStore{}

// NewPrefixStore returns a store that namespaces all keys of parent under
// given prefix.
func NewPrefixStore(parent KVStore, prefix []byte) PrefixStore {
	return PrefixStore{
		prefix: append([]byte(nil), prefix...),
		parent: parent,
	}
}

func (p PrefixStore) key(k []byte) []byte {
	out := make([]byte, 0, len(p.prefix)+len(k))
	out = append(out, p.prefix...)
	return append(out, k...)
}

// Get returns nil iff key doesn't exist.
func (p PrefixStore) Get(key []byte) ([]byte, error) {
	return p.parent.Get(p.key(key))
}

// Has checks if a key exists.
func (p PrefixStore) Has(key []byte) (bool, error) {
	return p.parent.Has(p.key(key))
}

// Set writes the value under the prefixed key.
func (p PrefixStore) Set(key, value []byte) error {
	return p.parent.Set(p.key(key), value)
}

// Delete removes the prefixed key.
func (p PrefixStore) Delete(key []byte) error {
	return p.parent.Delete(p.key(key))
}

// NewBatch returns a batch that writes to the parent under this prefix.
func (p PrefixStore) NewBatch() Batch {
	return NewNonAtomicBatch(p)
}
