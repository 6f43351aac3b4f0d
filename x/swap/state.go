package swap

import (
	"fmt"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// State is the lifecycle flag of a swap. It is persisted as a single byte.
type State uint8

const (
	// StateNone is the implicit state of an identifier that was never opened.
	StateNone State = 0
	// StateOpen is a swap with the open asset locked in the escrow.
	StateOpen State = 1
	// StateClosed is terminal. Both assets were delivered.
	StateClosed State = 2
	// StateCanceled is terminal. The opener withdrew the swap.
	StateCanceled State = 3
	// StateClosing is set while close transfers are in flight.
	StateClosing State = 4
	// StateCloseFailed is a close whose transfers did not all complete. It
	// is only ever persisted by a host that does not roll back failed
	// invocations. Closing can be retried from this state.
	StateCloseFailed State = 5
)

var stateNames = map[State]string{
	StateNone:        "NONE",
	StateOpen:        "OPEN",
	StateClosed:      "CLOSED",
	StateCanceled:    "CANCELED",
	StateClosing:     "CLOSING",
	StateCloseFailed: "CLOSE_FAILED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Marshal returns the one byte representation.
func (s State) Marshal() ([]byte, error) {
	if _, ok := stateNames[s]; !ok {
		return nil, errors.Wrapf(errors.ErrInput, "unknown state %d", uint8(s))
	}
	return []byte{byte(s)}, nil
}

// Unmarshal loads the state from its one byte representation.
func (s *State) Unmarshal(raw []byte) error {
	if len(raw) != 1 {
		return errors.Wrapf(errors.ErrDecode, "state of %d bytes", len(raw))
	}
	st := State(raw[0])
	if _, ok := stateNames[st]; !ok {
		return errors.Wrapf(errors.ErrDecode, "unknown state %d", raw[0])
	}
	*s = st
	return nil
}

// Leg is a bit set of close transfers.
type Leg uint8

const (
	// LegCloseAsset moves the close asset from the closer to the opener.
	LegCloseAsset Leg = 1 << iota
	// LegOpenAsset releases the locked asset to the close trader.
	LegOpenAsset

	allLegs = LegCloseAsset | LegOpenAsset
)

// CloseProgress records which transfers of a close already went through.
type CloseProgress struct {
	Closer tokenswap.Address
	Legs   Leg
}

// Done returns true if given leg completed.
func (p *CloseProgress) Done(l Leg) bool {
	return p.Legs&l == l
}

const (
	fieldProgressCloser = iota + 1
	fieldProgressLegs
)

// Marshal serializes the progress using the protobuf wire format.
func (p *CloseProgress) Marshal() ([]byte, error) {
	buf := make([]byte, 0, tokenswap.AddressLength+4)
	buf = appendBytesField(buf, fieldProgressCloser, p.Closer[:])
	buf = appendVarintField(buf, fieldProgressLegs, uint64(p.Legs))
	return buf, nil
}

// Unmarshal loads the progress from its binary representation.
func (p *CloseProgress) Unmarshal(raw []byte) error {
	var out CloseProgress
	r := fieldReader{raw: raw}
	for !r.done() {
		field, wire, err := r.tag()
		if err != nil {
			return err
		}
		switch field {
		case fieldProgressCloser:
			out.Closer, err = r.address(wire)
		case fieldProgressLegs:
			var legs uint64
			legs, err = r.uint(wire)
			if err == nil && legs > uint64(allLegs) {
				err = errors.Wrapf(errors.ErrDecode, "unknown legs %b", legs)
			}
			out.Legs = Leg(legs)
		default:
			return errors.Wrapf(errors.ErrDecode, "unknown field %d", field)
		}
		if err != nil {
			return errors.Wrapf(err, "field %d", field)
		}
	}
	*p = out
	return nil
}
