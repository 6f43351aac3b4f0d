/*
Package app wires the swap and token contracts into a host.
*/
package app

import (
	"encoding/json"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/host"
	"github.com/iov-one/tokenswap/x/erc20"
	"github.com/iov-one/tokenswap/x/erc721"
	"github.com/iov-one/tokenswap/x/swap"
)

// Contract kinds registered by NewHost.
const (
	KindSwap   = "swap"
	KindERC20  = "erc20"
	KindERC721 = "erc721"
)

// NewHost returns a host with all contract kinds registered.
func NewHost(db tokenswap.CacheableKVStore, opts ...host.Option) *host.Host {
	h := host.New(db, opts...)
	h.RegisterCode(KindERC20, erc20.NewContract())
	h.RegisterCode(KindERC721, erc721.NewContract())
	h.RegisterCode(KindSwap, swap.NewContract(h))
	return h
}

// Contracts are the addresses of a deployed contract set.
type Contracts struct {
	Swap   tokenswap.Address `json:"swap"`
	ERC20  tokenswap.Address `json:"erc20"`
	ERC721 tokenswap.Address `json:"erc721"`
}

// ContractsOf returns the addresses of the contract set of given deployer.
func ContractsOf(deployer tokenswap.Address) *Contracts {
	return &Contracts{
		Swap:   host.ContractAddress(deployer, KindSwap),
		ERC20:  host.ContractAddress(deployer, KindERC20),
		ERC721: host.ContractAddress(deployer, KindERC721),
	}
}

func (c *Contracts) byKind() map[string]tokenswap.Address {
	return map[string]tokenswap.Address{
		KindSwap:   c.Swap,
		KindERC20:  c.ERC20,
		KindERC721: c.ERC721,
	}
}

// Validate returns an error if any address is missing.
func (c *Contracts) Validate() error {
	for kind, addr := range c.byKind() {
		if addr.IsZero() {
			return errors.Wrapf(errors.ErrEmpty, "%s contract address", kind)
		}
	}
	return nil
}

func (c *Contracts) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *Contracts) Unmarshal(raw []byte) error {
	if err := json.Unmarshal(raw, c); err != nil {
		return errors.Wrap(errors.ErrDecode, err.Error())
	}
	return nil
}
