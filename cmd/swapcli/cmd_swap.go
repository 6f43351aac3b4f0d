package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/x/swap"
)

func cmdOpenSwap(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Open a swap. The sender must have approved the swap contract to move the
offered amount of fungible tokens first.
		`)
		fl.PrintDefaults()
	}
	sf := flSession(fl)
	var (
		swapFl        = flAddress(fl, "swap", "", "Swap contract address. Defaults to the one deployed by init-chain.")
		idFl          = fl.String("id", "", "Swap identifier.")
		valueFl       = fl.Uint64("value", 0, "Amount of fungible tokens offered.")
		tokenFl       = flAddress(fl, "token", "", "Fungible token contract. Defaults to the one deployed by init-chain.")
		nftIDFl       = fl.Uint64("nft-id", 0, "Identifier of the requested non-fungible token.")
		closeTraderFl = flAddress(fl, "close-trader", "", "Address receiving the offered tokens when the swap is closed.")
		nftFl         = flAddress(fl, "nft", "", "Non-fungible token contract. Defaults to the one deployed by init-chain.")
	)
	fl.Parse(args)

	if *idFl == "" {
		flagDie("id is required")
	}
	if closeTraderFl.IsZero() {
		flagDie("close-trader is required")
	}

	s, err := sf.open()
	if err != nil {
		return err
	}
	defer s.Close()
	var defaults contractDefaults
	if c, err := s.initialized(); err == nil {
		defaults = contractDefaults{swap: c.Swap, token: c.ERC20, nft: c.ERC721}
	}

	callArgs := tokenswap.Args{
		[]byte(*idFl),
		tokenswap.UintArg(*valueFl),
		tokenswap.AddressArg(pick(tokenFl, defaults.token)),
		tokenswap.UintArg(*nftIDFl),
		tokenswap.AddressArg(*closeTraderFl),
		tokenswap.AddressArg(pick(nftFl, defaults.nft)),
	}
	_, err = s.execute(pick(swapFl, defaults.swap), swap.MethodOpen, callArgs)
	return err
}

type contractDefaults struct {
	swap, token, nft tokenswap.Address
}

func cmdCloseSwap(input io.Reader, output io.Writer, args []string) error {
	return swapCommand(output, args, swap.MethodClose, `
Close an open swap. The sender must own the requested non-fungible token and
have approved the swap contract to move it.
		`)
}

func cmdCancelSwap(input io.Reader, output io.Writer, args []string) error {
	return swapCommand(output, args, swap.MethodCancel, `
Cancel an open swap. Only the opener can cancel.
		`)
}

func cmdSwapStatus(input io.Reader, output io.Writer, args []string) error {
	return swapCommand(output, args, swap.MethodStatus, `
Print the state of a swap.
		`)
}

func cmdSwapInfo(input io.Reader, output io.Writer, args []string) error {
	return swapCommand(output, args, swap.MethodInfo, `
Print the description of a swap as JSON.
		`)
}

// swapCommand handles all swap methods that accept only the identifier.
func swapCommand(output io.Writer, args []string, method, usage string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), usage)
		fl.PrintDefaults()
	}
	sf := flSession(fl)
	var (
		swapFl = flAddress(fl, "swap", "", "Swap contract address. Defaults to the one deployed by init-chain.")
		idFl   = fl.String("id", "", "Swap identifier.")
	)
	fl.Parse(args)

	if *idFl == "" {
		flagDie("id is required")
	}
	s, err := sf.open()
	if err != nil {
		return err
	}
	defer s.Close()
	var target tokenswap.Address
	if c, err := s.initialized(); err == nil {
		target = c.Swap
	}
	target = pick(swapFl, target)
	callArgs := tokenswap.NewArgs(*idFl)

	switch method {
	case swap.MethodStatus:
		raw, err := s.query(target, method, callArgs)
		if err != nil {
			return err
		}
		var st swap.State
		if err := st.Unmarshal(raw); err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, st)
		return err
	case swap.MethodInfo:
		raw, err := s.query(target, method, callArgs)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(output, string(raw))
		return err
	}
	_, err = s.execute(target, method, callArgs)
	return err
}
