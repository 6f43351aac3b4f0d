package swap

import (
	"context"
	"encoding/json"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Methods exposed by the swap contract.
const (
	MethodInit   = "init"
	MethodOpen   = "open_swap"
	MethodInfo   = "get_swap_info"
	MethodStatus = "get_swap_status"
	MethodCancel = "cancel_swap"
	MethodClose  = "close_swap"
)

// Contract exposes the swap machine to the host. Arguments are decoded into
// messages here, the machine never sees raw arguments.
type Contract struct {
	machine *Machine
}

var _ tokenswap.Contract = (*Contract)(nil)

// NewContract returns the swap contract. Token contracts are reached through
// given caller.
func NewContract(caller tokenswap.Caller) *Contract {
	return &Contract{machine: NewMachine(caller)}
}

// Call dispatches a host invocation to the matching entry point.
func (c *Contract) Call(ctx context.Context, db tokenswap.KVStore, method string, args tokenswap.Args) ([]byte, error) {
	switch method {
	case MethodInit:
		return nil, c.init(db, args)
	case MethodOpen:
		var msg OpenMsg
		if err := msg.Decode(args); err != nil {
			return nil, err
		}
		return nil, c.machine.Open(ctx, db, &msg)
	case MethodClose:
		var msg CloseMsg
		if err := msg.Decode(args); err != nil {
			return nil, err
		}
		return nil, c.machine.Close(ctx, db, &msg)
	case MethodCancel:
		var msg CancelMsg
		if err := msg.Decode(args); err != nil {
			return nil, err
		}
		return nil, c.machine.Cancel(ctx, db, &msg)
	case MethodStatus:
		var msg QueryMsg
		if err := msg.Decode(args); err != nil {
			return nil, err
		}
		st, err := c.machine.Status(db, &msg)
		if err != nil {
			return nil, err
		}
		return st.Marshal()
	case MethodInfo:
		var msg QueryMsg
		if err := msg.Decode(args); err != nil {
			return nil, err
		}
		swap, err := c.machine.Info(db, &msg)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(swap)
		if err != nil {
			return nil, errors.Wrap(errors.ErrHuman, err.Error())
		}
		return raw, nil
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown method %q", method)
}

// init stores the configuration. The optional argument is the cancel policy.
func (c *Contract) init(db tokenswap.KVStore, args tokenswap.Args) error {
	conf := DefaultConfig()
	if args.Len() > 0 {
		policy, err := args.String(0)
		if err != nil {
			return err
		}
		conf.CancelPolicy = CancelPolicy(policy)
	}
	return SaveConfig(db, conf)
}
