package swaptest

import (
	"context"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/host"
	"github.com/iov-one/tokenswap/store"
)

// Env is a host with the swap and both token contracts deployed.
type Env struct {
	Host      *host.Host
	Deployer  tokenswap.Address
	Contracts *app.Contracts
}

// NewEnv applies genesis to a host backed by an in-memory store. A zero
// deployer is replaced by a new address.
func NewEnv(t testing.TB, gen app.Genesis, opts ...host.Option) *Env {
	t.Helper()

	if gen.Deployer.IsZero() {
		gen.Deployer = NewAddress()
	}
	h := app.NewHost(store.MemStore(), opts...)
	contracts, err := app.InitChain(context.Background(), h, &gen)
	if err != nil {
		t.Fatalf("cannot init chain: %+v", err)
	}
	return &Env{
		Host:      h,
		Deployer:  gen.Deployer,
		Contracts: contracts,
	}
}

// Exec invokes a contract method on behalf of sender.
func (e *Env) Exec(sender, target tokenswap.Address, method string, args ...[]byte) ([]byte, error) {
	return e.Host.Execute(context.Background(), sender, target, method, tokenswap.Args(args))
}

// MustExec is Exec failing the test on error.
func (e *Env) MustExec(t testing.TB, sender, target tokenswap.Address, method string, args ...[]byte) []byte {
	t.Helper()
	res, err := e.Exec(sender, target, method, args...)
	if err != nil {
		t.Fatalf("%s: %+v", method, err)
	}
	return res
}

// Balance returns the fungible token balance of owner.
func (e *Env) Balance(t testing.TB, owner tokenswap.Address) uint64 {
	t.Helper()
	raw := e.MustExec(t, owner, e.Contracts.ERC20, "balanceOf", tokenswap.AddressArg(owner))
	n, err := tokenswap.Args{raw}.Uint64(0)
	if err != nil {
		t.Fatalf("balance of %s: %s", owner, err)
	}
	return n
}

// Owner returns the owner of a non-fungible token.
func (e *Env) Owner(t testing.TB, id uint64) tokenswap.Address {
	t.Helper()
	raw := e.MustExec(t, e.Deployer, e.Contracts.ERC721, "ownerOf", tokenswap.UintArg(id))
	addr, err := tokenswap.NewAddress(raw)
	if err != nil {
		t.Fatalf("owner of %d: %s", id, err)
	}
	return addr
}
