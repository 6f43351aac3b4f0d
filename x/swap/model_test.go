package swap

import (
	"bytes"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/swaptest/assert"
)

func TestSwapRoundTrip(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 500; i++ {
		var s Swap
		f.Fuzz(&s)

		raw, err := s.Marshal()
		assert.Nil(t, err)

		var got Swap
		assert.Nil(t, got.Unmarshal(raw))
		assert.Equal(t, s, got)

		again, err := got.Marshal()
		assert.Nil(t, err)
		if !bytes.Equal(raw, again) {
			t.Fatalf("encoding is not deterministic: %X != %X", raw, again)
		}
	}
}

func TestSwapZeroValueRoundTrip(t *testing.T) {
	var s Swap
	raw, err := s.Marshal()
	assert.Nil(t, err)

	got := Swap{OpenValue: 7}
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, s, got)
}

func TestSwapUnmarshalMalformed(t *testing.T) {
	valid, err := (&Swap{
		OpenValue:   100,
		OpenTrader:  testAddr(1),
		CloseValue:  1,
		CloseTrader: testAddr(2),
	}).Marshal()
	assert.Nil(t, err)

	cases := map[string][]byte{
		"empty":               {},
		"truncated":           valid[:len(valid)-1],
		"only the first byte": valid[:1],
		"repeated field":      append(append([]byte{}, valid...), 0x08, 0x01),
		"unknown field":       append(append([]byte{}, valid...), 0x38, 0x01),
		"field zero":          append([]byte{0x00, 0x01}, valid[2:]...),
		"wrong wire type":     append([]byte{0x0a, 0x01, 0x64}, valid[2:]...),
		"short address": append(
			[]byte{0x08, 0x64, 0x12, 0x02, 0xaa, 0xbb},
			valid[2+2+tokenswap.AddressLength:]...),
		"overlong varint": append([]byte{0x08}, bytes.Repeat([]byte{0xff}, 11)...),
		"length past end": {0x08, 0x01, 0x12, 0x7f, 0x01},
	}

	for testName, raw := range cases {
		t.Run(testName, func(t *testing.T) {
			got := Swap{OpenValue: 42}
			err := got.Unmarshal(raw)
			assert.IsErr(t, errors.ErrDecode, err)
			// Destination must not be partially populated.
			assert.Equal(t, Swap{OpenValue: 42}, got)
		})
	}
}

func TestSwapUnmarshalGarbageNeverPanics(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(0, 120)
	for i := 0; i < 1000; i++ {
		var raw []byte
		f.Fuzz(&raw)
		var s Swap
		_ = s.Unmarshal(raw)
	}
}

func TestStateUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw     []byte
		want    State
		wantErr *errors.Error
	}{
		"none":         {raw: []byte{0}, want: StateNone},
		"open":         {raw: []byte{1}, want: StateOpen},
		"closed":       {raw: []byte{2}, want: StateClosed},
		"canceled":     {raw: []byte{3}, want: StateCanceled},
		"closing":      {raw: []byte{4}, want: StateClosing},
		"close failed": {raw: []byte{5}, want: StateCloseFailed},
		"unknown":      {raw: []byte{6}, wantErr: errors.ErrDecode},
		"empty":        {raw: []byte{}, wantErr: errors.ErrDecode},
		"two bytes":    {raw: []byte{1, 0}, wantErr: errors.ErrDecode},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got State
			err := got.Unmarshal(tc.raw)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "CLOSE_FAILED", StateCloseFailed.String())
	assert.Equal(t, "State(9)", State(9).String())
}

func TestCloseProgressRoundTrip(t *testing.T) {
	p := CloseProgress{Closer: testAddr(9), Legs: LegCloseAsset}
	raw, err := p.Marshal()
	assert.Nil(t, err)

	var got CloseProgress
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, p, got)
	if !got.Done(LegCloseAsset) || got.Done(LegOpenAsset) {
		t.Fatalf("unexpected legs: %b", got.Legs)
	}

	assert.IsErr(t, errors.ErrDecode, got.Unmarshal([]byte{0x10, 0x08}))
}

// testAddr returns an address filled with given byte.
func testAddr(b byte) tokenswap.Address {
	var a tokenswap.Address
	for i := range a {
		a[i] = b
	}
	return a
}
