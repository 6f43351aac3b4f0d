/*
Package host runs contracts the way a smart contract platform does.

Contract code is registered under a kind and deployed at an address. Each
deployed contract sees only its own namespace of the host store. Contracts
call each other synchronously through the host, which acts as the
tokenswap.Caller for all of them. The sender seen by a called contract is the
address of the contract that made the call.

By default every invocation and every nested call runs in its own cache wrap
that is written only when the call succeeds. A failure anywhere discards all
writes of the failed call, including those of the calls it made.
*/
package host

import (
	"context"
	"sync"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
)

// DefaultMaxDepth is the deepest chain of nested calls allowed.
const DefaultMaxDepth = 16

var (
	deploymentPrefix = []byte("\x00code/")
	statePrefix      = []byte{0x01}
)

// Host keeps contract code, deployments and contract state.
type Host struct {
	mu       sync.Mutex
	store    tokenswap.CacheableKVStore
	codes    map[string]tokenswap.Contract
	atomic   bool
	debug    bool
	maxDepth int
}

var _ tokenswap.Caller = (*Host)(nil)

// Option configures a Host.
type Option func(*Host)

// WithoutAtomicity disables per call cache wraps. Writes of a failed call
// are kept, the way a platform without transaction rollback behaves.
func WithoutAtomicity() Option {
	return func(h *Host) { h.atomic = false }
}

// WithDebug makes Invoke report full error messages, with stack traces,
// for errors that would otherwise be redacted.
func WithDebug() Option {
	return func(h *Host) { h.debug = true }
}

// WithMaxDepth limits the chain of nested calls.
func WithMaxDepth(n int) Option {
	return func(h *Host) { h.maxDepth = n }
}

// New returns a host keeping its state in db.
func New(db tokenswap.CacheableKVStore, opts ...Option) *Host {
	h := &Host{
		store:    db,
		codes:    make(map[string]tokenswap.Contract),
		atomic:   true,
		maxDepth: DefaultMaxDepth,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// RegisterCode makes contract code available for deployment. Registering
// the same kind twice panics.
func (h *Host) RegisterCode(kind string, c tokenswap.Contract) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if kind == "" {
		panic("contract kind must not be empty")
	}
	if _, ok := h.codes[kind]; ok {
		panic("contract kind " + kind + " already registered")
	}
	h.codes[kind] = c
}

// Deploy binds registered code to an address.
func (h *Host) Deploy(addr tokenswap.Address, kind string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.codes[kind]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "contract kind %q", kind)
	}
	key := deploymentKey(addr)
	switch ok, err := h.store.Has(key); {
	case err != nil:
		return errors.Wrap(err, "deployment")
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "contract deployed at %s", addr)
	}
	return h.store.Set(key, []byte(kind))
}

// Kind returns the kind of the contract deployed at given address.
func (h *Host) Kind(addr tokenswap.Address) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.kind(h.store, addr)
}

func (h *Host) kind(db tokenswap.ReadOnlyKVStore, addr tokenswap.Address) (string, error) {
	raw, err := db.Get(deploymentKey(addr))
	if err != nil {
		return "", errors.Wrap(err, "deployment")
	}
	if raw == nil {
		return "", errors.Wrapf(errors.ErrNotFound, "no contract at %s", addr)
	}
	return string(raw), nil
}

// Execute invokes a contract method on behalf of sender. Only one top level
// invocation runs at a time.
func (h *Host) Execute(ctx context.Context, sender, target tokenswap.Address, method string, args tokenswap.Args) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx = tokenswap.WithLogInfo(ctx, "call", method, "contract", target.String())
	logger := tokenswap.GetLogger(ctx)
	logger.Debug("invocation", "sender", sender.String(), "args", args.Len())

	res, err := h.run(ctx, h.store, 0, sender, target, method, args)
	if err != nil {
		logger.Error("invocation failed", "err", err)
		return nil, err
	}
	return res, nil
}

// Query invokes a contract method and drops every write it made.
func (h *Host) Query(ctx context.Context, sender, target tokenswap.Address, method string, args tokenswap.Args) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx = tokenswap.WithLogInfo(ctx, "query", method, "contract", target.String())
	cache := h.store.CacheWrap()
	defer cache.Discard()
	return h.run(ctx, cache, 0, sender, target, method, args)
}

// Invoke is Execute reporting the outcome the way a platform reports it to
// an external client.
func (h *Host) Invoke(ctx context.Context, sender, target tokenswap.Address, method string, args tokenswap.Args) Result {
	data, err := h.Execute(ctx, sender, target, method, args)
	return NewResult(data, err, h.debug)
}

// CallContract invokes a method of another contract from within a running
// contract. It fails with ErrCall when the callee fails.
func (h *Host) CallContract(ctx context.Context, target tokenswap.Address, method string, args tokenswap.Args) ([]byte, error) {
	f, ok := ctx.Value(frameKey).(frame)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "contract call outside of an invocation")
	}
	caller, ok := tokenswap.GetContractAddress(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "no calling contract")
	}
	if f.depth+1 >= h.maxDepth {
		return nil, errors.Wrapf(errors.ErrCall, "%s.%s: max call depth %d", target, method, h.maxDepth)
	}
	res, err := h.run(ctx, f.db, f.depth+1, caller, target, method, args)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCall, "%s.%s: %s", target, method, err)
	}
	return res, nil
}

type frameKeyType int

const frameKey frameKeyType = 0

// frame is the execution state of a running contract.
type frame struct {
	db    tokenswap.CacheableKVStore
	depth int
}

func (h *Host) run(
	ctx context.Context,
	parent tokenswap.CacheableKVStore,
	depth int,
	sender, target tokenswap.Address,
	method string,
	args tokenswap.Args,
) ([]byte, error) {
	kind, err := h.kind(parent, target)
	if err != nil {
		return nil, err
	}
	contract, ok := h.codes[kind]
	if !ok {
		return nil, errors.Wrapf(errors.ErrHuman, "no code for kind %q", kind)
	}

	db := parent
	var cache tokenswap.KVCacheWrap
	if h.atomic {
		cache = parent.CacheWrap()
		db = cache
	}

	ctx = context.WithValue(ctx, frameKey, frame{db: db, depth: depth})
	ctx = tokenswap.WithSender(ctx, sender)
	ctx = tokenswap.WithContractAddress(ctx, target)

	res, err := call(ctx, contract, store.NewPrefixStore(db, stateKey(target)), method, args)
	if cache == nil {
		return res, err
	}
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if werr := cache.Write(); werr != nil {
		return nil, errors.Wrap(werr, "writing savepoint")
	}
	return res, nil
}

// call turns contract panics into errors.
func call(ctx context.Context, c tokenswap.Contract, db tokenswap.KVStore, method string, args tokenswap.Args) (res []byte, err error) {
	defer errors.Recover(&err)
	return c.Call(ctx, db, method, args)
}

func deploymentKey(addr tokenswap.Address) []byte {
	return append(append([]byte(nil), deploymentPrefix...), addr[:]...)
}

func stateKey(addr tokenswap.Address) []byte {
	return append(append([]byte(nil), statePrefix...), addr[:]...)
}
