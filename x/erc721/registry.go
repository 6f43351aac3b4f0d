package erc721

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

var (
	minterKey      = []byte("minter")
	ownerPrefix    = []byte("own:")
	approvalPrefix = []byte("appr:")
	operatorPrefix = []byte("oper:")
	countPrefix    = []byte("cnt:")
)

// Registry keeps token ownership and approvals.
type Registry struct{}

// Owner returns the owner of given token. ErrNotFound is returned for tokens
// that were never minted.
func (Registry) Owner(db tokenswap.ReadOnlyKVStore, id uint64) (tokenswap.Address, error) {
	owner, ok, err := readAddress(db, ownerKey(id))
	if err != nil {
		return tokenswap.ZeroAddress, err
	}
	if !ok {
		return tokenswap.ZeroAddress, errors.Wrapf(errors.ErrNotFound, "token %d", id)
	}
	return owner, nil
}

// Approved returns the address approved to move given token, if any.
func (Registry) Approved(db tokenswap.ReadOnlyKVStore, id uint64) (tokenswap.Address, error) {
	addr, _, err := readAddress(db, approvalKey(id))
	return addr, err
}

// IsOperator returns true if operator may move all tokens of owner.
func (Registry) IsOperator(db tokenswap.ReadOnlyKVStore, owner, operator tokenswap.Address) (bool, error) {
	return db.Has(operatorKey(owner, operator))
}

// Count returns the number of tokens held by owner.
func (Registry) Count(db tokenswap.ReadOnlyKVStore, owner tokenswap.Address) (uint64, error) {
	raw, err := db.Get(countKey(owner))
	if err != nil || raw == nil {
		return 0, err
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrDecode, "count of %d bytes", len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}

// Mint creates a token owned by to.
func (r Registry) Mint(db tokenswap.KVStore, to tokenswap.Address, id uint64) error {
	switch ok, err := db.Has(ownerKey(id)); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "token %d", id)
	}
	if err := db.Set(ownerKey(id), to[:]); err != nil {
		return err
	}
	return r.addCount(db, to, 1)
}

// Approve allows addr to move given token. Only the owner or an operator of
// the owner can approve.
func (r Registry) Approve(db tokenswap.KVStore, actor, addr tokenswap.Address, id uint64) error {
	owner, err := r.Owner(db, id)
	if err != nil {
		return err
	}
	if !actor.Equals(owner) {
		ok, err := r.IsOperator(db, owner, actor)
		if err != nil {
			return err
		}
		if !ok {
			return errors.Wrapf(errors.ErrUnauthorized, "%s cannot approve token %d", actor, id)
		}
	}
	if addr.IsZero() {
		return db.Delete(approvalKey(id))
	}
	return db.Set(approvalKey(id), addr[:])
}

// SetOperator grants or revokes the operator right over all tokens of owner.
func (Registry) SetOperator(db tokenswap.KVStore, owner, operator tokenswap.Address, approved bool) error {
	if approved {
		return db.Set(operatorKey(owner, operator), []byte{1})
	}
	return db.Delete(operatorKey(owner, operator))
}

// Transfer moves a token from its owner to another address on behalf of
// actor. The actor must be the owner, the approved address or an operator.
// Any approval is cleared.
func (r Registry) Transfer(db tokenswap.KVStore, actor, from, to tokenswap.Address, id uint64) error {
	owner, err := r.Owner(db, id)
	if err != nil {
		return err
	}
	if !owner.Equals(from) {
		return errors.Wrapf(errors.ErrUnauthorized, "token %d is not owned by %s", id, from)
	}
	if err := r.canMove(db, actor, owner, id); err != nil {
		return err
	}
	if err := db.Delete(approvalKey(id)); err != nil {
		return err
	}
	if err := db.Set(ownerKey(id), to[:]); err != nil {
		return err
	}
	if err := r.addCount(db, from, -1); err != nil {
		return err
	}
	return r.addCount(db, to, 1)
}

func (r Registry) canMove(db tokenswap.ReadOnlyKVStore, actor, owner tokenswap.Address, id uint64) error {
	if actor.Equals(owner) {
		return nil
	}
	approved, ok, err := readAddress(db, approvalKey(id))
	if err != nil {
		return err
	}
	if ok && actor.Equals(approved) {
		return nil
	}
	ok, err = r.IsOperator(db, owner, actor)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrUnauthorized, "%s cannot move token %d", actor, id)
	}
	return nil
}

func (r Registry) addCount(db tokenswap.KVStore, owner tokenswap.Address, delta int) error {
	n, err := r.Count(db, owner)
	if err != nil {
		return err
	}
	switch {
	case delta < 0 && n < uint64(-delta):
		return errors.Wrapf(errors.ErrHuman, "negative token count of %s", owner)
	case delta < 0:
		n -= uint64(-delta)
	default:
		n += uint64(delta)
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, n)
	return db.Set(countKey(owner), raw)
}

func readAddress(db tokenswap.ReadOnlyKVStore, key []byte) (tokenswap.Address, bool, error) {
	raw, err := db.Get(key)
	if err != nil || raw == nil {
		return tokenswap.ZeroAddress, false, err
	}
	addr, err := tokenswap.NewAddress(raw)
	if err != nil {
		return tokenswap.ZeroAddress, false, errors.Wrap(errors.ErrDecode, err.Error())
	}
	return addr, true, nil
}

func ownerKey(id uint64) []byte {
	return idKey(ownerPrefix, id)
}

func approvalKey(id uint64) []byte {
	return idKey(approvalPrefix, id)
}

func idKey(prefix []byte, id uint64) []byte {
	key := make([]byte, len(prefix)+8)
	copy(key, prefix)
	binary.BigEndian.PutUint64(key[len(prefix):], id)
	return key
}

func operatorKey(owner, operator tokenswap.Address) []byte {
	key := append(append([]byte(nil), operatorPrefix...), owner[:]...)
	return append(key, operator[:]...)
}

func countKey(owner tokenswap.Address) []byte {
	return append(append([]byte(nil), countPrefix...), owner[:]...)
}
