package swap

import (
	"github.com/iov-one/tokenswap"
)

// OpenMsg requests opening a new swap. The opener is the sender of the call.
type OpenMsg struct {
	SwapID               []byte
	OpenValue            uint64
	OpenContractAddress  tokenswap.Address
	CloseValue           uint64
	CloseTrader          tokenswap.Address
	CloseContractAddress tokenswap.Address
}

var _ tokenswap.Validater = (*OpenMsg)(nil)

// Decode reads the message from positional arguments:
// id, open_value, open_contract, close_value, close_trader, close_contract
func (m *OpenMsg) Decode(args tokenswap.Args) error {
	var (
		msg OpenMsg
		err error
	)
	if msg.SwapID, err = args.Bytes(0); err != nil {
		return err
	}
	if msg.OpenValue, err = args.Uint64(1); err != nil {
		return err
	}
	if msg.OpenContractAddress, err = args.Address(2); err != nil {
		return err
	}
	if msg.CloseValue, err = args.Uint64(3); err != nil {
		return err
	}
	if msg.CloseTrader, err = args.Address(4); err != nil {
		return err
	}
	if msg.CloseContractAddress, err = args.Address(5); err != nil {
		return err
	}
	*m = msg
	return nil
}

// Validate ensures the message can be processed. Amounts and addresses are
// not checked against any allowlist.
func (m *OpenMsg) Validate() error {
	return ValidateID(m.SwapID)
}

// Swap returns the record created for given opener.
func (m *OpenMsg) Swap(opener tokenswap.Address) *Swap {
	return &Swap{
		OpenValue:            m.OpenValue,
		OpenTrader:           opener,
		OpenContractAddress:  m.OpenContractAddress,
		CloseValue:           m.CloseValue,
		CloseTrader:          m.CloseTrader,
		CloseContractAddress: m.CloseContractAddress,
	}
}

// CloseMsg requests closing an open swap.
type CloseMsg struct {
	SwapID []byte
}

// Decode reads the swap id from the first argument.
func (m *CloseMsg) Decode(args tokenswap.Args) error {
	return decodeID(args, &m.SwapID)
}

// Validate returns an error if the swap id is empty or too long.
func (m *CloseMsg) Validate() error {
	return ValidateID(m.SwapID)
}

// CancelMsg requests canceling an open swap.
type CancelMsg struct {
	SwapID []byte
}

// Decode reads the swap id from the first argument.
func (m *CancelMsg) Decode(args tokenswap.Args) error {
	return decodeID(args, &m.SwapID)
}

// Validate returns an error if the swap id is empty or too long.
func (m *CancelMsg) Validate() error {
	return ValidateID(m.SwapID)
}

// QueryMsg selects a swap for status and info queries.
type QueryMsg struct {
	SwapID []byte
}

// Decode reads the swap id from the first argument.
func (m *QueryMsg) Decode(args tokenswap.Args) error {
	return decodeID(args, &m.SwapID)
}

// Validate returns an error if the swap id is empty or too long.
func (m *QueryMsg) Validate() error {
	return ValidateID(m.SwapID)
}

func decodeID(args tokenswap.Args, dst *[]byte) error {
	id, err := args.Bytes(0)
	if err != nil {
		return err
	}
	*dst = id
	return nil
}
