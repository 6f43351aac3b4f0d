package swap

import (
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

var _ tokenswap.Persistent = (*Swap)(nil)

// Swap is the persisted description of a single swap.
type Swap struct {
	// OpenValue is the amount of fungible tokens locked by the opener.
	OpenValue uint64 `json:"open_value"`
	// OpenTrader is the party that opened the swap.
	OpenTrader tokenswap.Address `json:"open_trader"`
	// OpenContractAddress is the fungible token contract.
	OpenContractAddress tokenswap.Address `json:"open_contract_address"`
	// CloseValue is the id of the token that the closer must hand over.
	CloseValue uint64 `json:"close_value"`
	// CloseTrader receives the locked tokens when the swap is closed.
	CloseTrader tokenswap.Address `json:"close_trader"`
	// CloseContractAddress is the non-fungible token contract.
	CloseContractAddress tokenswap.Address `json:"close_contract_address"`
}

// Swap fields as numbered in the binary representation.
const (
	fieldOpenValue = iota + 1
	fieldOpenTrader
	fieldOpenContract
	fieldCloseValue
	fieldCloseTrader
	fieldCloseContract

	allSwapFields = 1<<(fieldCloseContract+1) - 2
)

// Marshal serializes the swap using the protobuf wire format. All fields are
// always written, in field order, so the output is deterministic.
func (s *Swap) Marshal() ([]byte, error) {
	buf := make([]byte, 0, 3*(tokenswap.AddressLength+2)+2*11)
	buf = appendVarintField(buf, fieldOpenValue, s.OpenValue)
	buf = appendBytesField(buf, fieldOpenTrader, s.OpenTrader[:])
	buf = appendBytesField(buf, fieldOpenContract, s.OpenContractAddress[:])
	buf = appendVarintField(buf, fieldCloseValue, s.CloseValue)
	buf = appendBytesField(buf, fieldCloseTrader, s.CloseTrader[:])
	buf = appendBytesField(buf, fieldCloseContract, s.CloseContractAddress[:])
	return buf, nil
}

// Unmarshal loads the swap from its binary representation. Every field must
// be present exactly once. On failure s is left untouched.
func (s *Swap) Unmarshal(raw []byte) error {
	var (
		out  Swap
		seen uint
		err  error
	)
	r := fieldReader{raw: raw}
	for !r.done() {
		field, wire, terr := r.tag()
		if terr != nil {
			return terr
		}
		if seen&(1<<uint(field)) != 0 {
			return errors.Wrapf(errors.ErrDecode, "repeated field %d", field)
		}
		seen |= 1 << uint(field)

		switch field {
		case fieldOpenValue:
			out.OpenValue, err = r.uint(wire)
		case fieldOpenTrader:
			out.OpenTrader, err = r.address(wire)
		case fieldOpenContract:
			out.OpenContractAddress, err = r.address(wire)
		case fieldCloseValue:
			out.CloseValue, err = r.uint(wire)
		case fieldCloseTrader:
			out.CloseTrader, err = r.address(wire)
		case fieldCloseContract:
			out.CloseContractAddress, err = r.address(wire)
		default:
			return errors.Wrapf(errors.ErrDecode, "unknown field %d", field)
		}
		if err != nil {
			return errors.Wrapf(err, "field %d", field)
		}
	}
	if seen != allSwapFields {
		return errors.Wrapf(errors.ErrDecode, "missing fields: %b", allSwapFields&^seen)
	}
	*s = out
	return nil
}

func (s Swap) String() string {
	return fmt.Sprintf("swap %d of %s from %s for token %d of %s to %s",
		s.OpenValue, s.OpenContractAddress, s.OpenTrader,
		s.CloseValue, s.CloseContractAddress, s.CloseTrader)
}

const (
	wireVarint = 0
	wireBytes  = 2

	// maxField keeps field numbers within the seen bit set.
	maxField = 31
)

func appendVarintField(buf []byte, field int, v uint64) []byte {
	buf = append(buf, proto.EncodeVarint(uint64(field)<<3|wireVarint)...)
	return append(buf, proto.EncodeVarint(v)...)
}

func appendBytesField(buf []byte, field int, b []byte) []byte {
	buf = append(buf, proto.EncodeVarint(uint64(field)<<3|wireBytes)...)
	buf = append(buf, proto.EncodeVarint(uint64(len(b)))...)
	return append(buf, b...)
}

// fieldReader consumes protobuf encoded fields.
type fieldReader struct {
	raw []byte
}

func (r *fieldReader) done() bool {
	return len(r.raw) == 0
}

func (r *fieldReader) varint() (uint64, error) {
	v, n := proto.DecodeVarint(r.raw)
	if n == 0 {
		return 0, errors.Wrap(errors.ErrDecode, "malformed varint")
	}
	r.raw = r.raw[n:]
	return v, nil
}

func (r *fieldReader) tag() (int, int, error) {
	t, err := r.varint()
	if err != nil {
		return 0, 0, err
	}
	field := t >> 3
	if field == 0 || field > maxField {
		return 0, 0, errors.Wrapf(errors.ErrDecode, "invalid field number %d", field)
	}
	return int(field), int(t & 7), nil
}

func (r *fieldReader) uint(wire int) (uint64, error) {
	if wire != wireVarint {
		return 0, errors.Wrapf(errors.ErrDecode, "wire type %d, want varint", wire)
	}
	return r.varint()
}

func (r *fieldReader) bytes(wire int) ([]byte, error) {
	if wire != wireBytes {
		return nil, errors.Wrapf(errors.ErrDecode, "wire type %d, want bytes", wire)
	}
	size, err := r.varint()
	if err != nil {
		return nil, err
	}
	if size > uint64(len(r.raw)) {
		return nil, errors.Wrapf(errors.ErrDecode, "length %d exceeds input", size)
	}
	b := r.raw[:size]
	r.raw = r.raw[size:]
	return b, nil
}

func (r *fieldReader) address(wire int) (tokenswap.Address, error) {
	b, err := r.bytes(wire)
	if err != nil {
		return tokenswap.ZeroAddress, err
	}
	if len(b) != tokenswap.AddressLength {
		return tokenswap.ZeroAddress, errors.Wrapf(errors.ErrDecode, "address of %d bytes", len(b))
	}
	var a tokenswap.Address
	copy(a[:], b)
	return a, nil
}
