package tokenswap

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/tokenswap/errors"
)

// AddressLength is the length of all addresses.
const AddressLength = 20

// Address identifies both traders and contracts.
type Address [AddressLength]byte

// ZeroAddress is an address with all bytes set to zero.
var ZeroAddress Address

// NewAddress copies given bytes into an address. Only exactly AddressLength
// long input is accepted.
func NewAddress(raw []byte) (Address, error) {
	var a Address
	if len(raw) != AddressLength {
		return a, errors.Wrapf(errors.ErrInput, "invalid address length: %d", len(raw))
	}
	copy(a[:], raw)
	return a, nil
}

// ParseAddress decodes a human readable address representation. Supported
// formats are hex, with or without 0x prefix, and bech32 when prefixed with
// "bech32:".
func ParseAddress(s string) (Address, error) {
	var a Address

	if strings.HasPrefix(s, "bech32:") {
		_, payload, err := bech32.Decode(strings.TrimPrefix(s, "bech32:"))
		if err != nil {
			return a, errors.Wrapf(errors.ErrInput, "deserialize bech32: %s", err)
		}
		raw, err := bech32.ConvertBits(payload, 5, 8, false)
		if err != nil {
			return a, errors.Wrapf(errors.ErrInput, "convert bech32 payload: %s", err)
		}
		return NewAddress(raw)
	}

	enc := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	raw, err := hex.DecodeString(enc)
	if err != nil {
		return a, errors.Wrapf(errors.ErrInput, "cannot decode hex: %s", err)
	}
	return NewAddress(raw)
}

// MustParseAddress is like ParseAddress but panics on error. Use it only for
// constants and in tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Bytes returns a copy of the raw address bytes.
func (a Address) Bytes() []byte {
	return append([]byte(nil), a[:]...)
}

// Equals checks if two addresses are the same.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a[:], b[:])
}

// IsZero returns true if all address bytes are zero.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// String returns the lower case hex representation, prefixed with 0x.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Bech32 returns the bech32 representation of this address using given human
// readable part.
func (a Address) Bech32(hrp string) (string, error) {
	data, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	enc, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", errors.Wrap(errors.ErrInput, err.Error())
	}
	return enc, nil
}

// MarshalJSON provides a hex representation for JSON, to override the
// standard array of numbers encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Set updates the address from its text representation. Together with
// String it allows using an address as a command line flag value.
func (a *Address) Set(s string) error {
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
