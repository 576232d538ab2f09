package app

import (
	"github.com/iov-one/remit"
	"github.com/iov-one/remit/errors"
	"github.com/iov-one/remit/x/cash"
)

const genesisKey = "internal/genesis"

// InitGenesis issues the initial balances. It can succeed only once per
// store, later calls fail with errors.ErrState.
func (a *App) InitGenesis(accts []cash.GenesisAccount) error {
	err := a.store.Deliver(func(db remit.KVStore) error {
		done, err := db.Has([]byte(genesisKey))
		if err != nil {
			return err
		}
		if done {
			return errors.Wrap(errors.ErrState, "genesis already loaded")
		}
		if err := a.cash.FromGenesis(db, accts); err != nil {
			return err
		}
		return db.Set([]byte(genesisKey), []byte{1})
	})
	if err != nil {
		return err
	}
	a.log.Info("Genesis loaded", "accounts", len(accts))
	return nil
}

// Initialized reports whether the genesis was loaded into the store.
func (a *App) Initialized() (bool, error) {
	var done bool
	err := a.store.View(func(db remit.ReadOnlyKVStore) error {
		var err error
		done, err = db.Has([]byte(genesisKey))
		return err
	})
	return done, err
}
