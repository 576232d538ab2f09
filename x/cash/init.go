package cash

import (
	"github.com/iov-one/remit"
	"github.com/iov-one/remit/coin"
	"github.com/iov-one/remit/errors"
)

// GenesisAccount is an initial balance as read from the config file.
// The address is in hex, see remit.ParseAddress.
type GenesisAccount struct {
	Address string `toml:"address"`
	Amount  string `toml:"amount"`
}

// FromGenesis issues the initial balances. It fails on the first invalid
// account and leaves the store as it is, so run it on a cache wrap.
func (c Controller) FromGenesis(db remit.KVStore, accts []GenesisAccount) error {
	for i, acct := range accts {
		addr, err := remit.ParseAddress(acct.Address)
		if err != nil {
			return errors.Wrapf(err, "genesis account %d", i)
		}
		amount, err := coin.ParseAmount(acct.Amount)
		if err != nil {
			return errors.Wrapf(err, "genesis account %d", i)
		}
		if err := c.IssueCoins(db, addr, amount); err != nil {
			return errors.Wrapf(err, "genesis account %d", i)
		}
	}
	return nil
}
