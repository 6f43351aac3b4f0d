package swap

import (
	"encoding/json"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/gconf"
)

const packageName = "swap"

// CancelPolicy decides what happens to the locked asset when a swap is
// canceled.
type CancelPolicy string

const (
	// CancelRetain keeps the locked asset in the escrow. Recovering it is
	// left to an out of band process.
	CancelRetain CancelPolicy = "retain"
	// CancelRefund transfers the locked asset back to the opener.
	CancelRefund CancelPolicy = "refund"
)

// Validate returns an error for unknown policies.
func (p CancelPolicy) Validate() error {
	switch p {
	case CancelRetain, CancelRefund:
		return nil
	}
	return errors.Wrapf(errors.ErrInput, "unknown cancel policy %q", string(p))
}

// Config is the swap contract configuration, written once by init.
type Config struct {
	CancelPolicy CancelPolicy `json:"cancel_policy"`
}

var _ gconf.Configuration = (*Config)(nil)

// DefaultConfig is used when the contract was never initialized.
func DefaultConfig() Config {
	return Config{CancelPolicy: CancelRetain}
}

func (c *Config) Validate() error {
	return errors.Wrap(c.CancelPolicy.Validate(), "cancel policy")
}

func (c *Config) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *Config) Unmarshal(raw []byte) error {
	if err := json.Unmarshal(raw, c); err != nil {
		return errors.Wrap(errors.ErrDecode, err.Error())
	}
	return nil
}

// LoadConfig returns the configuration stored in db, or the default one.
func LoadConfig(db tokenswap.ReadOnlyKVStore) (Config, error) {
	conf := DefaultConfig()
	if err := gconf.LoadOrDefault(db, packageName, &conf); err != nil {
		return conf, errors.Wrap(err, "load configuration")
	}
	return conf, nil
}

// SaveConfig writes the configuration. It fails with ErrDuplicate if a
// configuration was already stored.
func SaveConfig(db tokenswap.KVStore, conf Config) error {
	var existing Config
	switch err := gconf.Load(db, packageName, &existing); {
	case err == nil:
		return errors.Wrap(errors.ErrDuplicate, "already initialized")
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return gconf.Save(db, packageName, &conf)
}
