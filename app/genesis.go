package app

import (
	"context"
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/host"
	"github.com/iov-one/tokenswap/x/swap"
)

// Genesis describes the initial contract set of a host.
type Genesis struct {
	// Deployer deploys and initializes all contracts. It receives the
	// fungible token supply and becomes the non-fungible token minter.
	Deployer tokenswap.Address `json:"deployer"`
	Swap     SwapOptions       `json:"swap"`
	ERC20    ERC20Options      `json:"erc20"`
	ERC721   ERC721Options     `json:"erc721"`
}

// SwapOptions configure the swap contract.
type SwapOptions struct {
	CancelPolicy swap.CancelPolicy `json:"cancel_policy"`
}

// ERC20Options configure the fungible token contract.
type ERC20Options struct {
	// Supply minted to the deployer. Zero means the contract default.
	Supply uint64 `json:"supply"`
	// Balances are transferred from the deployer after minting.
	Balances []Balance `json:"balances"`
}

// Balance is an initial fungible token holding.
type Balance struct {
	Owner  tokenswap.Address `json:"owner"`
	Amount uint64            `json:"amount"`
}

// ERC721Options configure the non-fungible token contract.
type ERC721Options struct {
	Tokens []Token `json:"tokens"`
}

// Token is minted at genesis.
type Token struct {
	Owner tokenswap.Address `json:"owner"`
	ID    uint64            `json:"id"`
}

// LoadGenesis reads a JSON genesis file.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "genesis: %s", err)
	}
	return &gen, nil
}

// Validate returns an error if the genesis cannot be applied.
func (g *Genesis) Validate() error {
	if g.Deployer.IsZero() {
		return errors.Wrap(errors.ErrEmpty, "deployer")
	}
	if g.Swap.CancelPolicy != "" {
		if err := g.Swap.CancelPolicy.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// InitChain deploys and initializes all contracts described by genesis.
func InitChain(ctx context.Context, h *host.Host, gen *Genesis) (*Contracts, error) {
	if err := gen.Validate(); err != nil {
		return nil, errors.Wrap(err, "genesis")
	}
	c := ContractsOf(gen.Deployer)
	for kind, addr := range c.byKind() {
		if err := h.Deploy(addr, kind); err != nil {
			return nil, errors.Wrapf(err, "deploy %s", kind)
		}
	}

	var swapArgs tokenswap.Args
	if gen.Swap.CancelPolicy != "" {
		swapArgs = tokenswap.NewArgs(string(gen.Swap.CancelPolicy))
	}
	var tokenArgs tokenswap.Args
	if gen.ERC20.Supply != 0 {
		tokenArgs = tokenswap.Args{tokenswap.UintArg(gen.ERC20.Supply)}
	}
	inits := []struct {
		addr tokenswap.Address
		args tokenswap.Args
	}{
		{c.Swap, swapArgs},
		{c.ERC20, tokenArgs},
		{c.ERC721, nil},
	}
	for _, in := range inits {
		if _, err := h.Execute(ctx, gen.Deployer, in.addr, "init", in.args); err != nil {
			return nil, errors.Wrapf(err, "init %s", in.addr)
		}
	}

	for _, b := range gen.ERC20.Balances {
		args := tokenswap.Args{tokenswap.AddressArg(b.Owner), tokenswap.UintArg(b.Amount)}
		if _, err := h.Execute(ctx, gen.Deployer, c.ERC20, "transfer", args); err != nil {
			return nil, errors.Wrapf(err, "balance of %s", b.Owner)
		}
	}
	for _, t := range gen.ERC721.Tokens {
		args := tokenswap.Args{tokenswap.AddressArg(t.Owner), tokenswap.UintArg(t.ID)}
		if _, err := h.Execute(ctx, gen.Deployer, c.ERC721, "mint", args); err != nil {
			return nil, errors.Wrapf(err, "token %d", t.ID)
		}
	}
	return c, nil
}
