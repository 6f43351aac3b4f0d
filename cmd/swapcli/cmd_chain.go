package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/gconf"
)

func cmdInitChain(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Deploy and initialize the swap and token contracts. The JSON genesis is read
from the standard input. Addresses of the deployed contracts are printed and
remembered in the state so that other commands use them by default.
		`)
		fl.PrintDefaults()
	}
	sf := flSession(fl)
	fl.Parse(args)

	raw, err := ioutil.ReadAll(input)
	if err != nil {
		return fmt.Errorf("cannot read genesis: %s", err)
	}
	var gen app.Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return fmt.Errorf("cannot decode genesis: %s", err)
	}

	s, err := sf.open()
	if err != nil {
		return err
	}
	defer s.Close()
	if s.contracts != nil {
		return errors.Wrap(errors.ErrDuplicate, "already initialized")
	}

	contracts, err := app.InitChain(s.ctx, s.host, &gen)
	if err != nil {
		return err
	}
	if err := gconf.Save(s.store, configPkg, contracts); err != nil {
		return err
	}
	if _, err := s.store.Commit(); err != nil {
		return err
	}
	return writeJSON(output, contracts)
}

func cmdContracts(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print addresses of the contracts deployed by init-chain.
		`)
		fl.PrintDefaults()
	}
	sf := flSession(fl)
	fl.Parse(args)

	s, err := sf.open()
	if err != nil {
		return err
	}
	defer s.Close()
	contracts, err := s.initialized()
	if err != nil {
		return err
	}
	return writeJSON(output, contracts)
}

func cmdCall(input io.Reader, output io.Writer, args []string) error {
	return callCommand(output, args, false)
}

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	return callCommand(output, args, true)
}

func callCommand(output io.Writer, args []string, readOnly bool) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Invoke any contract method. Remaining arguments are passed to the method as
positional arguments. The returned payload is printed as text.
		`)
		fl.PrintDefaults()
	}
	sf := flSession(fl)
	var (
		contractFl = flAddress(fl, "contract", "", "Address of the called contract.")
		methodFl   = fl.String("method", "", "Name of the called method.")
	)
	fl.Parse(args)

	if *methodFl == "" {
		flagDie("method is required")
	}
	s, err := sf.open()
	if err != nil {
		return err
	}
	defer s.Close()

	callArgs := tokenswap.NewArgs(fl.Args()...)
	var res []byte
	if readOnly {
		res, err = s.query(*contractFl, *methodFl, callArgs)
	} else {
		res, err = s.execute(*contractFl, *methodFl, callArgs)
	}
	if err != nil {
		return err
	}
	if len(res) > 0 {
		_, err = fmt.Fprintln(output, printable(res))
	}
	return err
}

// printable returns text payloads unchanged and hex encodes binary ones.
func printable(b []byte) string {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%x", b)
		}
	}
	return strings.TrimSpace(string(b))
}

func writeJSON(output io.Writer, v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, string(raw))
	return err
}
