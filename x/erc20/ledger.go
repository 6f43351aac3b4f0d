package erc20

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

var (
	supplyKey       = []byte("supply")
	balancePrefix   = []byte("bal:")
	allowancePrefix = []byte("allow:")
)

// Ledger keeps balances and allowances of a token.
type Ledger struct{}

// Balance returns the amount held by given address.
func (Ledger) Balance(db tokenswap.ReadOnlyKVStore, owner tokenswap.Address) (uint64, error) {
	return readAmount(db, balanceKey(owner))
}

// Allowance returns the amount that spender may move on behalf of owner.
func (Ledger) Allowance(db tokenswap.ReadOnlyKVStore, owner, spender tokenswap.Address) (uint64, error) {
	return readAmount(db, allowanceKey(owner, spender))
}

// TotalSupply returns the amount minted.
func (Ledger) TotalSupply(db tokenswap.ReadOnlyKVStore) (uint64, error) {
	return readAmount(db, supplyKey)
}

// Approve sets the allowance of spender, replacing any previous one.
func (Ledger) Approve(db tokenswap.KVStore, owner, spender tokenswap.Address, amount uint64) error {
	return writeAmount(db, allowanceKey(owner, spender), amount)
}

// Mint issues new tokens to dest. Fails if it overflows the supply.
func (l Ledger) Mint(db tokenswap.KVStore, dest tokenswap.Address, amount uint64) error {
	supply, err := l.TotalSupply(db)
	if err != nil {
		return err
	}
	if supply+amount < supply {
		return errors.Wrap(errors.ErrOverflow, "total supply")
	}
	balance, err := l.Balance(db, dest)
	if err != nil {
		return err
	}
	if err := writeAmount(db, supplyKey, supply+amount); err != nil {
		return err
	}
	return writeAmount(db, balanceKey(dest), balance+amount)
}

// MoveTokens moves the given amount from src to dest.
// If src doesn't have sufficient tokens, it fails.
func (l Ledger) MoveTokens(db tokenswap.KVStore, src, dest tokenswap.Address, amount uint64) error {
	from, err := l.Balance(db, src)
	if err != nil {
		return err
	}
	if from < amount {
		return errors.Wrapf(errors.ErrAmount, "balance %d, need %d", from, amount)
	}
	if src.Equals(dest) {
		return nil
	}
	to, err := l.Balance(db, dest)
	if err != nil {
		return err
	}
	if to+amount < to {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}
	if err := writeAmount(db, balanceKey(src), from-amount); err != nil {
		return err
	}
	return writeAmount(db, balanceKey(dest), to+amount)
}

// SpendAllowance moves the given amount from owner to dest on behalf of
// spender, lowering the allowance.
func (l Ledger) SpendAllowance(db tokenswap.KVStore, spender, owner, dest tokenswap.Address, amount uint64) error {
	allowed, err := l.Allowance(db, owner, spender)
	if err != nil {
		return err
	}
	if allowed < amount {
		return errors.Wrapf(errors.ErrAmount, "allowance %d, need %d", allowed, amount)
	}
	if err := l.MoveTokens(db, owner, dest, amount); err != nil {
		return err
	}
	return l.Approve(db, owner, spender, allowed-amount)
}

func balanceKey(a tokenswap.Address) []byte {
	return append(append([]byte(nil), balancePrefix...), a[:]...)
}

func allowanceKey(owner, spender tokenswap.Address) []byte {
	key := append(append([]byte(nil), allowancePrefix...), owner[:]...)
	return append(key, spender[:]...)
}

func readAmount(db tokenswap.ReadOnlyKVStore, key []byte) (uint64, error) {
	raw, err := db.Get(key)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrDecode, "amount of %d bytes", len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}

func writeAmount(db tokenswap.KVStore, key []byte, amount uint64) error {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, amount)
	return db.Set(key, raw)
}
