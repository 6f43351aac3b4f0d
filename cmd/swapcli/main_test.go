package main

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/swaptest"
	"github.com/iov-one/tokenswap/swaptest/assert"
)

type command func(input io.Reader, output io.Writer, args []string) error

// testState is a state directory shared by consecutive commands.
type testState struct {
	t  testing.TB
	db string
}

func newTestState(t testing.TB) (*testState, func()) {
	dir, err := ioutil.TempDir("", "swapcli")
	if err != nil {
		t.Fatalf("cannot create state directory: %s", err)
	}
	return &testState{t: t, db: dir}, func() { os.RemoveAll(dir) }
}

// run executes a command against the state directory and returns its trimmed
// output.
func (s *testState) run(cmd command, input string, args ...string) (string, error) {
	var output bytes.Buffer
	args = append([]string{"-db", s.db, "-log-level", "none"}, args...)
	err := cmd(strings.NewReader(input), &output, args)
	return strings.TrimSpace(output.String()), err
}

func (s *testState) mustRun(cmd command, input string, args ...string) string {
	s.t.Helper()
	out, err := s.run(cmd, input, args...)
	if err != nil {
		s.t.Fatalf("command %q failed: %s", args, err)
	}
	return out
}

func initChain(t testing.TB, s *testState, gen app.Genesis) app.Contracts {
	t.Helper()
	raw, err := json.Marshal(gen)
	assert.Nil(t, err)
	out := s.mustRun(cmdInitChain, string(raw))
	var contracts app.Contracts
	if err := json.Unmarshal([]byte(out), &contracts); err != nil {
		t.Fatalf("cannot decode contracts %q: %s", out, err)
	}
	return contracts
}

func TestSwapSession(t *testing.T) {
	s, cleanup := newTestState(t)
	defer cleanup()

	alice := swaptest.NewAddress()
	bob := swaptest.NewAddress()
	contracts := initChain(t, s, app.Genesis{
		Deployer: alice,
		ERC721: app.ERC721Options{
			Tokens: []app.Token{{Owner: bob, ID: 1}},
		},
	})
	assert.Equal(t, *app.ContractsOf(alice), contracts)

	s.mustRun(cmdCall, "",
		"-sender", alice.String(),
		"-contract", contracts.ERC20.String(),
		"-method", "approve",
		contracts.Swap.String(), "100")
	s.mustRun(cmdOpenSwap, "",
		"-sender", alice.String(),
		"-id", "swap1",
		"-value", "100",
		"-nft-id", "1",
		"-close-trader", bob.String())
	assert.Equal(t, "OPEN", s.mustRun(cmdSwapStatus, "", "-id", "swap1"))

	info := s.mustRun(cmdSwapInfo, "", "-id", "swap1")
	if !strings.Contains(info, bob.String()) {
		t.Fatalf("swap info does not mention the close trader: %s", info)
	}

	s.mustRun(cmdCall, "",
		"-sender", bob.String(),
		"-contract", contracts.ERC721.String(),
		"-method", "approve",
		contracts.Swap.String(), "1")
	s.mustRun(cmdCloseSwap, "", "-sender", bob.String(), "-id", "swap1")

	assert.Equal(t, "CLOSED", s.mustRun(cmdSwapStatus, "", "-id", "swap1"))
	assert.Equal(t, "100", s.mustRun(cmdBalance, "", "-owner", bob.String()))
	assert.Equal(t, alice.String(), s.mustRun(cmdOwner, "", "-id", "1"))

	_, err := s.run(cmdCancelSwap, "", "-sender", alice.String(), "-id", "swap1")
	assert.IsErr(t, errors.ErrState, err)
}

func TestInitChainTwice(t *testing.T) {
	s, cleanup := newTestState(t)
	defer cleanup()

	gen := app.Genesis{Deployer: swaptest.NewAddress()}
	initChain(t, s, gen)

	raw, err := json.Marshal(gen)
	assert.Nil(t, err)
	_, err = s.run(cmdInitChain, string(raw))
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestCommandsRequireInitChain(t *testing.T) {
	s, cleanup := newTestState(t)
	defer cleanup()

	_, err := s.run(cmdContracts, "")
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestExecuteRequiresSender(t *testing.T) {
	s, cleanup := newTestState(t)
	defer cleanup()

	contracts := initChain(t, s, app.Genesis{Deployer: swaptest.NewAddress()})
	_, err := s.run(cmdCall, "",
		"-contract", contracts.ERC20.String(),
		"-method", "transfer",
		swaptest.NewAddress().String(), "1")
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestFailedExecutionIsNotPersisted(t *testing.T) {
	s, cleanup := newTestState(t)
	defer cleanup()

	alice := swaptest.NewAddress()
	contracts := initChain(t, s, app.Genesis{Deployer: alice})

	// No allowance was granted, so the deposit cannot be taken.
	_, err := s.run(cmdOpenSwap, "",
		"-sender", alice.String(),
		"-id", "swap1",
		"-value", "10",
		"-nft-id", "1",
		"-close-trader", swaptest.NewAddress().String())
	assert.IsErr(t, errors.ErrTransfer, err)

	assert.Equal(t, "NONE", s.mustRun(cmdSwapStatus, "", "-id", "swap1"))
	assert.Equal(t, "0", s.mustRun(cmdCall, "",
		"-sender", alice.String(),
		"-contract", contracts.ERC20.String(),
		"-method", "allowance",
		alice.String(), contracts.Swap.String()))
}

func TestPrintable(t *testing.T) {
	cases := map[string]struct {
		raw  []byte
		want string
	}{
		"text":   {raw: []byte("100\n"), want: "100"},
		"binary": {raw: []byte{0x01, 0xff}, want: "0x01ff"},
		"empty":  {raw: nil, want: ""},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, printable(tc.raw))
		})
	}
}

func TestPick(t *testing.T) {
	def := swaptest.NewAddress()
	var empty tokenswap.Address
	assert.Equal(t, def, pick(&empty, def))

	set := swaptest.NewAddress()
	assert.Equal(t, set, pick(&set, def))
}
