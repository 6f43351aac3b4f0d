/*
Package erc721 implements a non-fungible token contract with the ERC721
method set. Tokens are identified by an unsigned 64 bit number.
*/
package erc721

import (
	"context"
	"strconv"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Contract is the non-fungible token.
type Contract struct {
	registry Registry
}

var _ tokenswap.Contract = (*Contract)(nil)

// NewContract returns the non-fungible token contract.
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
		switch ok, err := db.Has(minterKey); {
		case err != nil:
			return nil, err
		case ok:
			return nil, errors.Wrap(errors.ErrDuplicate, "already initialized")
		}
		return nil, db.Set(minterKey, sender[:])
	case "mint":
		minter, ok, err := readAddress(db, minterKey)
		if err != nil {
			return nil, err
		}
		if !ok || !minter.Equals(sender) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "only the minter can mint")
		}
		to, err := args.Address(0)
		if err != nil {
			return nil, err
		}
		id, err := args.Uint64(1)
		if err != nil {
			return nil, err
		}
		return nil, c.registry.Mint(db, to, id)
	case "ownerOf":
		id, err := args.Uint64(0)
		if err != nil {
			return nil, err
		}
		owner, err := c.registry.Owner(db, id)
		if err != nil {
			return nil, err
		}
		return owner.Bytes(), nil
	case "balanceOf":
		owner, err := args.Address(0)
		if err != nil {
			return nil, err
		}
		n, err := c.registry.Count(db, owner)
		if err != nil {
			return nil, err
		}
		return tokenswap.UintArg(n), nil
	case "approve":
		to, err := args.Address(0)
		if err != nil {
			return nil, err
		}
		id, err := args.Uint64(1)
		if err != nil {
			return nil, err
		}
		return nil, c.registry.Approve(db, sender, to, id)
	case "getApproved":
		id, err := args.Uint64(0)
		if err != nil {
			return nil, err
		}
		if _, err := c.registry.Owner(db, id); err != nil {
			return nil, err
		}
		addr, err := c.registry.Approved(db, id)
		if err != nil {
			return nil, err
		}
		return addr.Bytes(), nil
	case "setApprovalForAll":
		operator, err := args.Address(0)
		if err != nil {
			return nil, err
		}
		approved, err := args.Bool(1)
		if err != nil {
			return nil, err
		}
		return nil, c.registry.SetOperator(db, sender, operator, approved)
	case "isApprovedForAll":
		owner, err := args.Address(0)
		if err != nil {
			return nil, err
		}
		operator, err := args.Address(1)
		if err != nil {
			return nil, err
		}
		ok, err := c.registry.IsOperator(db, owner, operator)
		if err != nil {
			return nil, err
		}
		return []byte(strconv.FormatBool(ok)), nil
	case "transferFrom":
		from, err := args.Address(0)
		if err != nil {
			return nil, err
		}
		to, err := args.Address(1)
		if err != nil {
			return nil, err
		}
		id, err := args.Uint64(2)
		if err != nil {
			return nil, err
		}
		return nil, c.registry.Transfer(db, sender, from, to, id)
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown method %q", method)
}
