package swap

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Bucket gives typed access to the swap namespaces of a contract store. It is
// the only code that reads or writes swap records, states and close progress.
type Bucket struct{}

// Swap loads the record of given swap. ErrNotFound is returned when the swap
// was never opened.
func (Bucket) Swap(db tokenswap.ReadOnlyKVStore, id []byte) (*Swap, error) {
	raw, err := db.Get(swapsNamespace.Key(id))
	if err != nil {
		return nil, errors.Wrap(err, "load swap")
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "swap %X", id)
	}
	var s Swap
	if err := s.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "swap %X", id)
	}
	return &s, nil
}

// SaveSwap writes the record of given swap.
func (Bucket) SaveSwap(db tokenswap.KVStore, id []byte, s *Swap) error {
	raw, err := s.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal swap")
	}
	return db.Set(swapsNamespace.Key(id), raw)
}

// State returns the state of given swap. StateNone is returned when nothing
// was stored.
func (Bucket) State(db tokenswap.ReadOnlyKVStore, id []byte) (State, error) {
	raw, err := db.Get(statesNamespace.Key(id))
	if err != nil {
		return StateNone, errors.Wrap(err, "load state")
	}
	if raw == nil {
		return StateNone, nil
	}
	var st State
	if err := st.Unmarshal(raw); err != nil {
		return StateNone, errors.Wrapf(err, "state of swap %X", id)
	}
	return st, nil
}

// SetState writes the state of given swap.
func (Bucket) SetState(db tokenswap.KVStore, id []byte, st State) error {
	raw, err := st.Marshal()
	if err != nil {
		return err
	}
	return db.Set(statesNamespace.Key(id), raw)
}

// Progress returns the close progress of given swap. An empty progress is
// returned when no close was attempted.
func (Bucket) Progress(db tokenswap.ReadOnlyKVStore, id []byte) (*CloseProgress, error) {
	raw, err := db.Get(closesNamespace.Key(id))
	if err != nil {
		return nil, errors.Wrap(err, "load progress")
	}
	var p CloseProgress
	if raw == nil {
		return &p, nil
	}
	if err := p.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(err, "progress of swap %X", id)
	}
	return &p, nil
}

// SaveProgress writes the close progress of given swap.
func (Bucket) SaveProgress(db tokenswap.KVStore, id []byte, p *CloseProgress) error {
	raw, err := p.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal progress")
	}
	return db.Set(closesNamespace.Key(id), raw)
}
