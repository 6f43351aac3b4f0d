package swap

import (
	"context"
	"fmt"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Token methods called by the swap.
const (
	tokenTransfer     = "transfer"
	tokenTransferFrom = "transferFrom"
)

// Machine drives swaps through their lifecycle. Each operation is given the
// store of the swap contract and reaches token contracts through the caller.
type Machine struct {
	caller tokenswap.Caller
	bucket Bucket
}

// NewMachine returns a machine that moves assets using given caller.
func NewMachine(caller tokenswap.Caller) *Machine {
	return &Machine{caller: caller}
}

// Open locks the open asset of the sender in the escrow and persists a new
// swap. Nothing is written when the transfer fails.
func (m *Machine) Open(ctx context.Context, db tokenswap.KVStore, msg *OpenMsg) error {
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "open msg")
	}
	if err := m.ensureNew(db, msg.SwapID); err != nil {
		return err
	}
	opener, err := sender(ctx)
	if err != nil {
		return err
	}
	escrow, err := self(ctx)
	if err != nil {
		return err
	}

	args := tokenswap.Args{
		tokenswap.AddressArg(opener),
		tokenswap.AddressArg(escrow),
		tokenswap.UintArg(msg.OpenValue),
	}
	if _, err := m.caller.CallContract(ctx, msg.OpenContractAddress, tokenTransferFrom, args); err != nil {
		return errors.Wrapf(errors.ErrTransfer, "lock %d from %s: %s", msg.OpenValue, opener, err)
	}
	// The token contract may have called back into this contract.
	if err := m.ensureNew(db, msg.SwapID); err != nil {
		return err
	}

	if err := m.bucket.SaveSwap(db, msg.SwapID, msg.Swap(opener)); err != nil {
		return err
	}
	if err := m.bucket.SetState(db, msg.SwapID, StateOpen); err != nil {
		return err
	}
	logTransition(ctx, msg.SwapID, StateOpen, opener)
	return nil
}

func (m *Machine) ensureNew(db tokenswap.ReadOnlyKVStore, id []byte) error {
	st, err := m.bucket.State(db, id)
	if err != nil {
		return err
	}
	if st != StateNone {
		return errors.Wrapf(errors.ErrDuplicate, "swap %X is %s", id, st)
	}
	return nil
}

// Close delivers both assets. The swap is marked CLOSING before any token is
// moved and CLOSED only after both transfers succeeded. If a transfer fails
// the completed legs and CLOSE_FAILED are written before the error is
// returned, so that a host without rollback keeps a retryable record.
//
// Anyone can close an open swap. Assets always go to the traders stored in
// the record.
func (m *Machine) Close(ctx context.Context, db tokenswap.KVStore, msg *CloseMsg) error {
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "close msg")
	}
	st, err := m.bucket.State(db, msg.SwapID)
	if err != nil {
		return err
	}
	if st != StateOpen && st != StateCloseFailed {
		return errors.Wrapf(&StateError{Expected: StateOpen, Actual: st}, "swap %X", msg.SwapID)
	}
	swap, err := m.bucket.Swap(db, msg.SwapID)
	if err != nil {
		return err
	}
	closer, err := sender(ctx)
	if err != nil {
		return err
	}

	progress := &CloseProgress{Closer: closer}
	if st == StateCloseFailed {
		prev, err := m.bucket.Progress(db, msg.SwapID)
		if err != nil {
			return err
		}
		progress.Legs = prev.Legs
	}

	if err := m.bucket.SetState(db, msg.SwapID, StateClosing); err != nil {
		return err
	}

	if !progress.Done(LegCloseAsset) {
		args := tokenswap.Args{
			tokenswap.AddressArg(closer),
			tokenswap.AddressArg(swap.OpenTrader),
			tokenswap.UintArg(swap.CloseValue),
		}
		if _, err := m.caller.CallContract(ctx, swap.CloseContractAddress, tokenTransferFrom, args); err != nil {
			err = errors.Wrapf(errors.ErrTransfer, "token %d from %s to %s: %s",
				swap.CloseValue, closer, swap.OpenTrader, err)
			return m.closeFailed(ctx, db, msg.SwapID, progress, err)
		}
		progress.Legs |= LegCloseAsset
	}

	if !progress.Done(LegOpenAsset) {
		args := tokenswap.Args{
			tokenswap.AddressArg(swap.CloseTrader),
			tokenswap.UintArg(swap.OpenValue),
		}
		if _, err := m.caller.CallContract(ctx, swap.OpenContractAddress, tokenTransfer, args); err != nil {
			err = errors.Wrapf(errors.ErrTransfer, "release %d to %s: %s",
				swap.OpenValue, swap.CloseTrader, err)
			return m.closeFailed(ctx, db, msg.SwapID, progress, err)
		}
		progress.Legs |= LegOpenAsset
	}

	if err := m.bucket.SaveProgress(db, msg.SwapID, progress); err != nil {
		return err
	}
	if err := m.bucket.SetState(db, msg.SwapID, StateClosed); err != nil {
		return err
	}
	logTransition(ctx, msg.SwapID, StateClosed, closer)
	return nil
}

func (m *Machine) closeFailed(ctx context.Context, db tokenswap.KVStore, id []byte, p *CloseProgress, cause error) error {
	if err := m.bucket.SaveProgress(db, id, p); err != nil {
		return errors.Wrapf(err, "save progress after %s", cause)
	}
	if err := m.bucket.SetState(db, id, StateCloseFailed); err != nil {
		return errors.Wrapf(err, "mark failed after %s", cause)
	}
	tokenswap.GetLogger(ctx).Error("swap close failed",
		"swap", fmt.Sprintf("%X", id), "legs", fmt.Sprintf("%02b", p.Legs), "err", cause)
	return cause
}

// Cancel withdraws an open swap. Only the opener can cancel. Whether the
// locked asset is refunded depends on the configured cancel policy. The swap
// is CANCELED while the refund runs and is OPEN again if the refund fails.
func (m *Machine) Cancel(ctx context.Context, db tokenswap.KVStore, msg *CancelMsg) error {
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "cancel msg")
	}
	st, err := m.bucket.State(db, msg.SwapID)
	if err != nil {
		return err
	}
	if st != StateOpen {
		return errors.Wrapf(&StateError{Expected: StateOpen, Actual: st}, "swap %X", msg.SwapID)
	}
	swap, err := m.bucket.Swap(db, msg.SwapID)
	if err != nil {
		return err
	}
	actor, err := sender(ctx)
	if err != nil {
		return err
	}
	if !actor.Equals(swap.OpenTrader) {
		return errors.Wrapf(errors.ErrUnauthorized, "only %s can cancel", swap.OpenTrader)
	}
	conf, err := LoadConfig(db)
	if err != nil {
		return err
	}

	if err := m.bucket.SetState(db, msg.SwapID, StateCanceled); err != nil {
		return err
	}
	if conf.CancelPolicy == CancelRefund {
		args := tokenswap.Args{
			tokenswap.AddressArg(swap.OpenTrader),
			tokenswap.UintArg(swap.OpenValue),
		}
		if _, err := m.caller.CallContract(ctx, swap.OpenContractAddress, tokenTransfer, args); err != nil {
			err = errors.Wrapf(errors.ErrTransfer, "refund %d to %s: %s", swap.OpenValue, swap.OpenTrader, err)
			// Back to OPEN, the cancel can be retried.
			if serr := m.bucket.SetState(db, msg.SwapID, StateOpen); serr != nil {
				return errors.Wrapf(serr, "reopen after %s", err)
			}
			return err
		}
	}
	logTransition(ctx, msg.SwapID, StateCanceled, actor)
	return nil
}

// Status returns the state of given swap, StateNone if it was never opened.
func (m *Machine) Status(db tokenswap.ReadOnlyKVStore, msg *QueryMsg) (State, error) {
	if err := msg.Validate(); err != nil {
		return StateNone, errors.Wrap(err, "query msg")
	}
	return m.bucket.State(db, msg.SwapID)
}

// Info returns the record of given swap.
func (m *Machine) Info(db tokenswap.ReadOnlyKVStore, msg *QueryMsg) (*Swap, error) {
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "query msg")
	}
	return m.bucket.Swap(db, msg.SwapID)
}

func sender(ctx context.Context) (tokenswap.Address, error) {
	addr, ok := tokenswap.GetSender(ctx)
	if !ok {
		return tokenswap.ZeroAddress, errors.Wrap(errors.ErrUnauthorized, "no sender")
	}
	return addr, nil
}

func self(ctx context.Context) (tokenswap.Address, error) {
	addr, ok := tokenswap.GetContractAddress(ctx)
	if !ok {
		return tokenswap.ZeroAddress, errors.Wrap(errors.ErrHuman, "no contract address in context")
	}
	return addr, nil
}

func logTransition(ctx context.Context, id []byte, st State, actor tokenswap.Address) {
	tokenswap.GetLogger(ctx).Info("swap state changed",
		"swap", fmt.Sprintf("%X", id), "state", st.String(), "sender", actor.String())
}
