/*
Package erc20 implements a fungible token contract with the ERC20 method set.

Numbers are passed and returned as decimal strings. Balances are stored as
8 byte big endian values.
*/
package erc20

import (
	"context"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// DefaultSupply is minted to the deployer when init is called without an
// argument.
const DefaultSupply = 1000000

var initializedKey = []byte("init")

// Contract is the fungible token.
type Contract struct {
	ledger Ledger
}

var _ tokenswap.Contract = (*Contract)(nil)

// NewContract returns the fungible token contract.
func NewContract() *Contract {
	return &Contract{}
}

func (c *Contract) Call(ctx context.Context, db tokenswap.KVStore, method string, args tokenswap.Args) ([]byte, error) {
	sender, ok := tokenswap.GetSender(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no sender")
	}

	switch method {
	case "init":
		return nil, c.init(db, sender, args)
	case "totalSupply":
		n, err := c.ledger.TotalSupply(db)
		return amountResult(n, err)
	case "balanceOf":
		owner := sender
		if args.Len() > 0 {
			a, err := args.Address(0)
			if err != nil {
				return nil, err
			}
			owner = a
		}
		n, err := c.ledger.Balance(db, owner)
		return amountResult(n, err)
	case "allowance":
		owner, err := args.Address(0)
		if err != nil {
			return nil, err
		}
		spender, err := args.Address(1)
		if err != nil {
			return nil, err
		}
		n, err := c.ledger.Allowance(db, owner, spender)
		return amountResult(n, err)
	case "transfer":
		to, err := args.Address(0)
		if err != nil {
			return nil, err
		}
		amount, err := args.Uint64(1)
		if err != nil {
			return nil, err
		}
		return nil, c.ledger.MoveTokens(db, sender, to, amount)
	case "approve":
		spender, err := args.Address(0)
		if err != nil {
			return nil, err
		}
		amount, err := args.Uint64(1)
		if err != nil {
			return nil, err
		}
		return nil, c.ledger.Approve(db, sender, spender, amount)
	case "transferFrom":
		from, err := args.Address(0)
		if err != nil {
			return nil, err
		}
		to, err := args.Address(1)
		if err != nil {
			return nil, err
		}
		amount, err := args.Uint64(2)
		if err != nil {
			return nil, err
		}
		return nil, c.ledger.SpendAllowance(db, sender, from, to, amount)
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown method %q", method)
}

func (c *Contract) init(db tokenswap.KVStore, sender tokenswap.Address, args tokenswap.Args) error {
	switch ok, err := db.Has(initializedKey); {
	case err != nil:
		return err
	case ok:
		return errors.Wrap(errors.ErrDuplicate, "already initialized")
	}
	supply := uint64(DefaultSupply)
	if args.Len() > 0 {
		n, err := args.Uint64(0)
		if err != nil {
			return err
		}
		supply = n
	}
	if err := db.Set(initializedKey, []byte{1}); err != nil {
		return err
	}
	return c.ledger.Mint(db, sender, supply)
}

func amountResult(n uint64, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	return tokenswap.UintArg(n), nil
}
