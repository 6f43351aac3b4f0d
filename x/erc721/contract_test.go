package erc721

import (
	"context"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	minter   = tokenswap.Address{0x0a}
	holder   = tokenswap.Address{0x0b}
	approved = tokenswap.Address{0x0c}
	operator = tokenswap.Address{0x0d}
	stranger = tokenswap.Address{0x0e}
)

func call(db tokenswap.KVStore, sender tokenswap.Address, method string, args ...[]byte) ([]byte, error) {
	ctx := tokenswap.WithSender(context.Background(), sender)
	return NewContract().Call(ctx, db, method, tokenswap.Args(args))
}

func setup(t *testing.T) tokenswap.KVStore {
	t.Helper()
	db := store.MemStore()
	_, err := call(db, minter, "init")
	require.NoError(t, err)
	_, err = call(db, minter, "mint", tokenswap.AddressArg(holder), tokenswap.UintArg(7))
	require.NoError(t, err)
	return db
}

func ownerOf(t *testing.T, db tokenswap.KVStore, id uint64) tokenswap.Address {
	t.Helper()
	raw, err := call(db, stranger, "ownerOf", tokenswap.UintArg(id))
	require.NoError(t, err)
	addr, err := tokenswap.NewAddress(raw)
	require.NoError(t, err)
	return addr
}

func TestMint(t *testing.T) {
	db := setup(t)
	assert.Equal(t, holder, ownerOf(t, db, 7))

	_, err := call(db, minter, "mint", tokenswap.AddressArg(stranger), tokenswap.UintArg(7))
	assert.True(t, errors.ErrDuplicate.Is(err))

	_, err = call(db, holder, "mint", tokenswap.AddressArg(holder), tokenswap.UintArg(8))
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = call(db, stranger, "ownerOf", tokenswap.UintArg(8))
	assert.True(t, errors.ErrNotFound.Is(err))

	_, err = call(db, stranger, "init")
	assert.True(t, errors.ErrDuplicate.Is(err))
}

func TestTransferFrom(t *testing.T) {
	cases := map[string]struct {
		prepare   func(t *testing.T, db tokenswap.KVStore)
		actor     tokenswap.Address
		from      tokenswap.Address
		wantErr   *errors.Error
		wantOwner tokenswap.Address
	}{
		"by owner": {
			actor:     holder,
			from:      holder,
			wantOwner: stranger,
		},
		"by approved": {
			prepare: func(t *testing.T, db tokenswap.KVStore) {
				_, err := call(db, holder, "approve", tokenswap.AddressArg(approved), tokenswap.UintArg(7))
				require.NoError(t, err)
			},
			actor:     approved,
			from:      holder,
			wantOwner: stranger,
		},
		"by operator": {
			prepare: func(t *testing.T, db tokenswap.KVStore) {
				_, err := call(db, holder, "setApprovalForAll", tokenswap.AddressArg(operator), []byte("true"))
				require.NoError(t, err)
			},
			actor:     operator,
			from:      holder,
			wantOwner: stranger,
		},
		"revoked operator": {
			prepare: func(t *testing.T, db tokenswap.KVStore) {
				_, err := call(db, holder, "setApprovalForAll", tokenswap.AddressArg(operator), []byte("true"))
				require.NoError(t, err)
				_, err = call(db, holder, "setApprovalForAll", tokenswap.AddressArg(operator), []byte("false"))
				require.NoError(t, err)
			},
			actor:     operator,
			from:      holder,
			wantErr:   errors.ErrUnauthorized,
			wantOwner: holder,
		},
		"not allowed": {
			actor:     stranger,
			from:      holder,
			wantErr:   errors.ErrUnauthorized,
			wantOwner: holder,
		},
		"zero address without approval": {
			actor:     tokenswap.ZeroAddress,
			from:      holder,
			wantErr:   errors.ErrUnauthorized,
			wantOwner: holder,
		},
		"zero address after approval cleared": {
			prepare: func(t *testing.T, db tokenswap.KVStore) {
				_, err := call(db, holder, "approve", tokenswap.AddressArg(approved), tokenswap.UintArg(7))
				require.NoError(t, err)
				_, err = call(db, holder, "approve", tokenswap.AddressArg(tokenswap.ZeroAddress), tokenswap.UintArg(7))
				require.NoError(t, err)
			},
			actor:     tokenswap.ZeroAddress,
			from:      holder,
			wantErr:   errors.ErrUnauthorized,
			wantOwner: holder,
		},
		"wrong from": {
			actor:     holder,
			from:      approved,
			wantErr:   errors.ErrUnauthorized,
			wantOwner: holder,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := setup(t)
			if tc.prepare != nil {
				tc.prepare(t, db)
			}
			_, err := call(db, tc.actor, "transferFrom",
				tokenswap.AddressArg(tc.from), tokenswap.AddressArg(stranger), tokenswap.UintArg(7))
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			assert.Equal(t, tc.wantOwner, ownerOf(t, db, 7))
		})
	}
}

func TestApprovalClearedOnTransfer(t *testing.T) {
	db := setup(t)
	_, err := call(db, holder, "approve", tokenswap.AddressArg(approved), tokenswap.UintArg(7))
	require.NoError(t, err)

	res, err := call(db, stranger, "getApproved", tokenswap.UintArg(7))
	require.NoError(t, err)
	assert.Equal(t, approved.Bytes(), res)

	_, err = call(db, approved, "transferFrom",
		tokenswap.AddressArg(holder), tokenswap.AddressArg(stranger), tokenswap.UintArg(7))
	require.NoError(t, err)

	res, err = call(db, stranger, "getApproved", tokenswap.UintArg(7))
	require.NoError(t, err)
	assert.Equal(t, tokenswap.ZeroAddress.Bytes(), res)

	_, err = call(db, approved, "transferFrom",
		tokenswap.AddressArg(stranger), tokenswap.AddressArg(approved), tokenswap.UintArg(7))
	assert.True(t, errors.ErrUnauthorized.Is(err))
}

func TestBalanceAndOperatorQueries(t *testing.T) {
	db := setup(t)
	_, err := call(db, minter, "mint", tokenswap.AddressArg(holder), tokenswap.UintArg(8))
	require.NoError(t, err)

	res, err := call(db, stranger, "balanceOf", tokenswap.AddressArg(holder))
	require.NoError(t, err)
	assert.Equal(t, "2", string(res))

	_, err = call(db, holder, "transferFrom",
		tokenswap.AddressArg(holder), tokenswap.AddressArg(stranger), tokenswap.UintArg(8))
	require.NoError(t, err)
	res, err = call(db, stranger, "balanceOf", tokenswap.AddressArg(holder))
	require.NoError(t, err)
	assert.Equal(t, "1", string(res))

	res, err = call(db, stranger, "isApprovedForAll", tokenswap.AddressArg(holder), tokenswap.AddressArg(operator))
	require.NoError(t, err)
	assert.Equal(t, "false", string(res))

	_, err = call(db, stranger, "approve", tokenswap.AddressArg(approved), tokenswap.UintArg(7))
	assert.True(t, errors.ErrUnauthorized.Is(err))
}
