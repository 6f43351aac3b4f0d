package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/swaptest/assert"
)

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *testConfig
		WantSaveErr *errors.Error
	}{
		"valid": {
			Conf: &testConfig{Mode: "refund", Limit: 10},
		},
		"zero limit": {
			Conf: &testConfig{Mode: "retain"},
		},
		"invalid cannot be saved": {
			Conf:        &testConfig{Mode: ""},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "test", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			if tc.WantSaveErr != nil {
				return
			}

			var got testConfig
			if err := Load(db, "test", &got); err != nil {
				t.Fatalf("cannot load configuration: %s", err)
			}
			assert.Equal(t, *tc.Conf, got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()

	var conf testConfig
	err := Load(db, "test", &conf)
	assert.IsErr(t, errors.ErrNotFound, err)

	conf = testConfig{Mode: "default"}
	assert.Nil(t, LoadOrDefault(db, "test", &conf))
	assert.Equal(t, "default", conf.Mode)
}

func TestLoadCorrupted(t *testing.T) {
	db := store.MemStore()
	assert.Nil(t, db.Set([]byte("_c:test"), []byte("{not json")))

	var conf testConfig
	err := LoadOrDefault(db, "test", &conf)
	assert.IsErr(t, errors.ErrDecode, err)
}

type testConfig struct {
	Mode  string
	Limit int
}

func (c *testConfig) Validate() error {
	if c.Mode == "" {
		return errors.Wrap(errors.ErrInput, "mode required")
	}
	return nil
}

func (c *testConfig) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *testConfig) Unmarshal(raw []byte) error {
	if err := json.Unmarshal(raw, c); err != nil {
		return errors.Wrap(errors.ErrDecode, err.Error())
	}
	return nil
}
