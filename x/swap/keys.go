package swap

import (
	"bytes"
	"fmt"

	"github.com/iov-one/tokenswap/errors"
)

const (
	keySeparator = '/'

	// MaxIDLength is the longest swap identifier accepted.
	MaxIDLength = 256
)

// Namespace is a typed storage key space. A key is the namespace name, the
// separator and the raw identifier. Since namespace names never contain the
// separator and no registered name plus separator is a prefix of another,
// two different (namespace, id) pairs always produce different keys, no
// matter which bytes the id contains.
type Namespace struct {
	prefix []byte
}

var registeredNamespaces []Namespace

// NewNamespace registers a key space. It panics if the name collides with an
// already registered namespace. Use it only during package initialization.
func NewNamespace(name string) Namespace {
	if name == "" {
		panic("namespace name must not be empty")
	}
	if bytes.IndexByte([]byte(name), keySeparator) >= 0 {
		panic(fmt.Sprintf("namespace %q contains the separator", name))
	}
	ns := Namespace{prefix: append([]byte(name), keySeparator)}
	for _, other := range registeredNamespaces {
		if bytes.HasPrefix(ns.prefix, other.prefix) || bytes.HasPrefix(other.prefix, ns.prefix) {
			panic(fmt.Sprintf("namespace %q overlaps with %q", name, other.Name()))
		}
	}
	registeredNamespaces = append(registeredNamespaces, ns)
	return ns
}

// Name returns the namespace name, without the separator.
func (ns Namespace) Name() string {
	return string(ns.prefix[:len(ns.prefix)-1])
}

// Key returns the storage key of given identifier.
func (ns Namespace) Key(id []byte) []byte {
	key := make([]byte, 0, len(ns.prefix)+len(id))
	key = append(key, ns.prefix...)
	return append(key, id...)
}

var (
	swapsNamespace  = NewNamespace("swaps")
	statesNamespace = NewNamespace("swapStates")
	closesNamespace = NewNamespace("swapCloses")
)

// ValidateID returns an error if given swap identifier cannot be used.
func ValidateID(id []byte) error {
	switch n := len(id); {
	case n == 0:
		return errors.Wrap(errors.ErrInput, "empty swap id")
	case n > MaxIDLength:
		return errors.Wrapf(errors.ErrInput, "swap id of %d bytes, max %d", n, MaxIDLength)
	}
	return nil
}
