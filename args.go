package tokenswap

import (
	"strconv"

	"github.com/iov-one/tokenswap/errors"
)

// Args are positional call arguments, as passed by the host to a contract.
// Numbers are decimal strings and addresses are hex strings.
type Args [][]byte

// NewArgs builds arguments out of string values.
func NewArgs(values ...string) Args {
	args := make(Args, len(values))
	for i, v := range values {
		args[i] = []byte(v)
	}
	return args
}

// UintArg encodes a number the way Args.Uint64 decodes it.
func UintArg(v uint64) []byte {
	return []byte(strconv.FormatUint(v, 10))
}

// AddressArg encodes an address the way Args.Address decodes it.
func AddressArg(a Address) []byte {
	return []byte(a.String())
}

// Len returns the number of arguments.
func (a Args) Len() int {
	return len(a)
}

// Bytes returns the raw value of the argument at given index.
func (a Args) Bytes(i int) ([]byte, error) {
	if i < 0 || i >= len(a) {
		return nil, errors.Wrapf(errors.ErrArgDecode, "missing argument %d", i)
	}
	return a[i], nil
}

func (a Args) String(i int) (string, error) {
	raw, err := a.Bytes(i)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Uint64 decodes the argument at given index as a decimal number.
func (a Args) Uint64(i int) (uint64, error) {
	raw, err := a.Bytes(i)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrArgDecode, "argument %d: %s", i, err)
	}
	return n, nil
}

// Address decodes the argument at given index as an address.
func (a Args) Address(i int) (Address, error) {
	raw, err := a.Bytes(i)
	if err != nil {
		return ZeroAddress, err
	}
	addr, err := ParseAddress(string(raw))
	if err != nil {
		return ZeroAddress, errors.Wrapf(errors.ErrArgDecode, "argument %d: %s", i, err)
	}
	return addr, nil
}

// Bool decodes the argument at given index as a boolean.
func (a Args) Bool(i int) (bool, error) {
	raw, err := a.Bytes(i)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(string(raw))
	if err != nil {
		return false, errors.Wrapf(errors.ErrArgDecode, "argument %d: %s", i, err)
	}
	return b, nil
}
