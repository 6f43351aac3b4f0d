package swap

import (
	"bytes"
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/swaptest/assert"
)

func TestNamespaceKeys(t *testing.T) {
	assert.Equal(t, []byte("swaps/swap1"), swapsNamespace.Key([]byte("swap1")))
	assert.Equal(t, []byte("swapStates/swap1"), statesNamespace.Key([]byte("swap1")))
	assert.Equal(t, "swapCloses", closesNamespace.Name())
}

func TestNamespaceKeysDoNotCollide(t *testing.T) {
	// Identifiers that contain the separator or look like another
	// namespace.
	ids := [][]byte{
		[]byte("a"),
		[]byte("a/"),
		[]byte("/a"),
		[]byte("States/a"),
		[]byte("s/a"),
		[]byte("Closes/"),
		{0},
		{0xff, '/', 0xff},
	}
	namespaces := []Namespace{swapsNamespace, statesNamespace, closesNamespace}

	seen := make(map[string]string)
	for _, ns := range namespaces {
		for _, id := range ids {
			key := string(ns.Key(id))
			label := ns.Name() + " " + string(id)
			if other, ok := seen[key]; ok {
				t.Fatalf("%q and %q produce the same key %q", label, other, key)
			}
			seen[key] = label
		}
	}
}

func TestNewNamespaceRejectsOverlap(t *testing.T) {
	cases := map[string]string{
		"registered":         "swaps",
		"contains separator": "swaps/x",
		"empty":              "",
	}
	for testName, name := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Panics(t, func() { NewNamespace(name) })
		})
	}
}

func TestValidateID(t *testing.T) {
	assert.Nil(t, ValidateID([]byte("x")))
	assert.Nil(t, ValidateID(bytes.Repeat([]byte("x"), MaxIDLength)))
	assert.IsErr(t, errors.ErrInput, ValidateID(nil))
	assert.IsErr(t, errors.ErrInput, ValidateID([]byte{}))
	assert.IsErr(t, errors.ErrInput, ValidateID(bytes.Repeat([]byte("x"), MaxIDLength+1)))
}
