// Package config loads the remitd settings from a TOML file.
package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/remit/errors"
	"github.com/iov-one/remit/x/cash"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
)

// FileName is the name of the config file within the home directory.
const FileName = "config.toml"

// Config is the content of the config file.
type Config struct {
	// DBDir is the leveldb directory, relative to the home directory
	// unless absolute.
	DBDir    string `toml:"db_dir"`
	LogLevel string `toml:"log_level"`

	Cash    cash.Configuration `toml:"cash"`
	API     APIConfig          `toml:"api"`
	Genesis GenesisConfig      `toml:"genesis"`
}

// APIConfig configures the JSON-RPC server.
type APIConfig struct {
	Listen         string   `toml:"listen"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// GenesisConfig holds the balances issued when the store is created.
type GenesisConfig struct {
	Accounts []cash.GenesisAccount `toml:"accounts"`
}

// DefaultConfig returns the settings used for a new home directory.
func DefaultConfig() *Config {
	return &Config{
		DBDir:    "data",
		LogLevel: "info",
		API: APIConfig{
			Listen:         "127.0.0.1:26680",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads the config file of the home directory. Missing settings keep
// their default value.
func Load(home string) (*Config, error) {
	conf := DefaultConfig()
	path := filepath.Join(home, FileName)
	if _, err := toml.DecodeFile(path, conf); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		}
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode %s: %s", path, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}
	return conf, nil
}

// Write stores the config in the home directory. An existing file is never
// overwritten.
func (c *Config) Write(home string) error {
	if err := os.MkdirAll(home, 0o755); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot create %s: %s", home, err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return errors.Wrapf(errors.ErrModel, "cannot encode config: %s", err)
	}
	path := filepath.Join(home, FileName)
	fd, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrapf(errors.ErrDuplicate, "config file %s", path)
		}
		return errors.Wrapf(errors.ErrInput, "cannot create %s: %s", path, err)
	}
	if _, err := fd.Write(buf.Bytes()); err != nil {
		fd.Close()
		return errors.Wrapf(errors.ErrInput, "cannot write %s: %s", path, err)
	}
	if err := fd.Close(); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot close %s: %s", path, err)
	}
	return nil
}

// Validate checks all settings.
func (c *Config) Validate() error {
	if c.DBDir == "" {
		return errors.Wrap(errors.ErrEmpty, "db_dir")
	}
	if _, err := tmflags.ParseLogLevel(c.LogLevel, log.NewNopLogger(), "info"); err != nil {
		return errors.Wrapf(errors.ErrInput, "log_level: %s", err)
	}
	if err := c.Cash.Validate(); err != nil {
		return errors.Wrap(err, "cash")
	}
	if c.API.Listen == "" {
		return errors.Wrap(errors.ErrEmpty, "api listen address")
	}
	return nil
}

// DBPath returns the database directory for the home directory.
func (c *Config) DBPath(home string) string {
	if filepath.IsAbs(c.DBDir) {
		return c.DBDir
	}
	return filepath.Join(home, c.DBDir)
}
