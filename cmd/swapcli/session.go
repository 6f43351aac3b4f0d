package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/gconf"
	"github.com/iov-one/tokenswap/host"
	"github.com/iov-one/tokenswap/store/iavl"
	"github.com/tendermint/tendermint/libs/log"
)

// configPkg is the gconf package under which the contract set is stored.
const configPkg = "swapcli"

// logOutput is where all commands write their logs.
var logOutput io.Writer = os.Stderr

// sessionFlags are accepted by every command that touches the state.
type sessionFlags struct {
	db       *string
	sender   *tokenswap.Address
	logLevel *string
	debug    *bool
}

func flSession(fl *flag.FlagSet) *sessionFlags {
	return &sessionFlags{
		db:       fl.String("db", defaultDB(), "Directory that keeps the contract state."),
		sender:   flAddress(fl, "sender", "", "Address on behalf of which the command is executed."),
		logLevel: fl.String("log-level", "error", "Log level: debug, info, error or none."),
		debug:    fl.Bool("debug", false, "Report full error messages."),
	}
}

func defaultDB() string {
	if dir := os.Getenv("SWAPCLI_DB"); dir != "" {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), ".swapcli")
}

// flAddress returns a value that is being initialized with given default
// value and optionally overwritten by a command line argument if provided.
// If given value cannot be deserialized to required type, process is
// terminated.
func flAddress(fl *flag.FlagSet, name, defaultVal, usage string) *tokenswap.Address {
	var a tokenswap.Address
	if defaultVal != "" {
		if err := a.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q address flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&a, name, usage)
	return &a
}

// session is a host over the persistent state.
type session struct {
	store     *iavl.CommitStore
	host      *host.Host
	ctx       context.Context
	sender    tokenswap.Address
	contracts *app.Contracts
}

func (f *sessionFlags) open() (*session, error) {
	logger, err := newLogger(*f.logLevel, logOutput)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(*f.db, 0700); err != nil {
		return nil, fmt.Errorf("cannot create state directory: %s", err)
	}
	db, err := iavl.NewCommitStore(*f.db, "state")
	if err != nil {
		return nil, errors.Wrap(err, "open state")
	}
	var opts []host.Option
	if *f.debug {
		opts = append(opts, host.WithDebug())
	}

	s := &session{
		store:  db,
		host:   app.NewHost(db, opts...),
		ctx:    tokenswap.WithLogger(context.Background(), logger),
		sender: *f.sender,
	}
	var contracts app.Contracts
	switch err := gconf.Load(db, configPkg, &contracts); {
	case err == nil:
		s.contracts = &contracts
	case !errors.ErrNotFound.Is(err):
		db.Close()
		return nil, err
	}
	return s, nil
}

func newLogger(level string, w io.Writer) (log.Logger, error) {
	if level == "none" {
		return log.NewNopLogger(), nil
	}
	allow, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	logger := log.NewTMLogger(log.NewSyncWriter(w))
	return log.NewFilter(logger, allow).With("module", "swapcli"), nil
}

func (s *session) Close() {
	s.store.Close()
}

// initialized returns the deployed contract set.
func (s *session) initialized() (*app.Contracts, error) {
	if s.contracts == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "no contracts, run init-chain first")
	}
	return s.contracts, nil
}

// execute invokes a contract method and commits the state on success.
func (s *session) execute(target tokenswap.Address, method string, args tokenswap.Args) ([]byte, error) {
	if s.sender.IsZero() {
		return nil, errors.Wrap(errors.ErrUnauthorized, "sender required")
	}
	res := s.host.Invoke(s.ctx, s.sender, target, method, args)
	if !res.IsOK() {
		return nil, res.Err()
	}
	if _, err := s.store.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	return res.Data, nil
}

// query invokes a contract method without persisting any change.
func (s *session) query(target tokenswap.Address, method string, args tokenswap.Args) ([]byte, error) {
	data, err := s.host.Query(s.ctx, s.sender, target, method, args)
	if err != nil {
		return nil, host.NewResult(nil, err, false).Err()
	}
	return data, nil
}

// pick returns flag value if set, otherwise the default.
func pick(flagVal *tokenswap.Address, def tokenswap.Address) tokenswap.Address {
	if flagVal.IsZero() {
		return def
	}
	return *flagVal
}

// flagDie terminates the program when a command line flag is not valid.
func flagDie(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(2)
}
