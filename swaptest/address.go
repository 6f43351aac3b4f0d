/*
Package swaptest provides helpers for testing contracts.
*/
package swaptest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/tokenswap"
)

var addressSeq uint64

// NewAddress returns a new address. Addresses are unique within a test run
// and deterministic for a given call order.
func NewAddress() tokenswap.Address {
	n := atomic.AddUint64(&addressSeq, 1)
	var a tokenswap.Address
	a[0] = 0xA1
	binary.BigEndian.PutUint64(a[tokenswap.AddressLength-8:], n)
	return a
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) tokenswap.Address {
	t.Helper()

	addr, err := tokenswap.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
