package cash

import (
	"github.com/iov-one/remit/coin"
	"github.com/iov-one/remit/errors"
)

// Configuration holds the cash settings as read from the config file.
type Configuration struct {
	// MinimumBalance is the least amount a wallet can keep after sending
	// coins, unless it is drained completely. It applies to plain sends
	// only, escrow deposits, claims and withdrawals may drain a wallet.
	MinimumBalance string `toml:"minimum_balance"`
}

// Validate checks that the minimum balance is a valid amount.
func (c *Configuration) Validate() error {
	if _, err := c.Minimum(); err != nil {
		return errors.Wrap(err, "minimum balance")
	}
	return nil
}

// Minimum returns the parsed minimum balance, zero when unset.
func (c *Configuration) Minimum() (coin.Amount, error) {
	if c.MinimumBalance == "" {
		return 0, nil
	}
	return coin.ParseAmount(c.MinimumBalance)
}

// NewControllerFromConfig returns a controller using the configured
// minimum balance.
func NewControllerFromConfig(c Configuration) (Controller, error) {
	min, err := c.Minimum()
	if err != nil {
		return Controller{}, errors.Wrap(err, "minimum balance")
	}
	return NewController(min), nil
}
