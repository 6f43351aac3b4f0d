package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/tokenswap"
)

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print the fungible token balance of an address.
		`)
		fl.PrintDefaults()
	}
	sf := flSession(fl)
	var (
		tokenFl = flAddress(fl, "token", "", "Fungible token contract. Defaults to the one deployed by init-chain.")
		ownerFl = flAddress(fl, "owner", "", "Address whose balance is printed. Defaults to the sender.")
	)
	fl.Parse(args)

	s, err := sf.open()
	if err != nil {
		return err
	}
	defer s.Close()
	var target tokenswap.Address
	if c, err := s.initialized(); err == nil {
		target = c.ERC20
	}
	owner := pick(ownerFl, s.sender)
	raw, err := s.query(pick(tokenFl, target), "balanceOf", tokenswap.Args{tokenswap.AddressArg(owner)})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, string(raw))
	return err
}

func cmdOwner(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print the owner of a non-fungible token.
		`)
		fl.PrintDefaults()
	}
	sf := flSession(fl)
	var (
		nftFl = flAddress(fl, "nft", "", "Non-fungible token contract. Defaults to the one deployed by init-chain.")
		idFl  = fl.Uint64("id", 0, "Token identifier.")
	)
	fl.Parse(args)

	s, err := sf.open()
	if err != nil {
		return err
	}
	defer s.Close()
	var target tokenswap.Address
	if c, err := s.initialized(); err == nil {
		target = c.ERC721
	}
	raw, err := s.query(pick(nftFl, target), "ownerOf", tokenswap.Args{tokenswap.UintArg(*idFl)})
	if err != nil {
		return err
	}
	owner, err := tokenswap.NewAddress(raw)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, owner)
	return err
}
