/*
Package app hosts the escrow ledger. It runs every ledger action as a
single transaction against the store and delivers the events of committed
transactions only.
*/
package app

import (
	"context"
	"time"

	"github.com/iov-one/remit"
	"github.com/iov-one/remit/coin"
	"github.com/iov-one/remit/x/cash"
	"github.com/iov-one/remit/x/remittance"
	"github.com/tendermint/tendermint/libs/log"
)

// App is safe for concurrent use.
type App struct {
	store  *CommitStore
	cash   cash.Controller
	ledger remittance.Ledger
	sink   remittance.EventSink
	obs    ActionObserver
	log    log.Logger
}

// ActionObserver is notified about the result of every ledger action.
type ActionObserver interface {
	ObserveAction(action string, err error, elapsed time.Duration)
}

// New returns an app running on the given store. Claims are paid to the
// accounts found by resolver and events of committed transactions are
// emitted to sink, which may be nil.
func New(db remit.CacheableKVStore, controller cash.Controller,
	resolver remittance.AccountResolver, sink remittance.EventSink) *App {
	return &App{
		store:  NewCommitStore(db),
		cash:   controller,
		ledger: remittance.NewLedger(controller, resolver),
		sink:   sink,
		log:    log.NewNopLogger(),
	}
}

// WithLogger sets the logger on the App and returns it,
// to make it easy to chain in initialization
func (a *App) WithLogger(logger log.Logger) *App {
	a.log = logger
	return a
}

// WithObserver sets the observer notified about every action.
func (a *App) WithObserver(obs ActionObserver) *App {
	a.obs = obs
	return a
}

// Logger returns the application base logger
func (a *App) Logger() log.Logger {
	return a.log
}

// run executes a ledger action as one transaction. Events are delivered
// to the sink only once the transaction is written.
func (a *App) run(ctx context.Context, action string, fn func(ctx context.Context, db remit.KVStore, events remittance.EventSink) error) (err error) {
	ctx = remit.WithLogger(ctx, a.log.With("action", action))
	if a.obs != nil {
		start := time.Now()
		defer func() { a.obs.ObserveAction(action, err, time.Since(start)) }()
	}

	var events remittance.EventBuffer
	err = a.store.Deliver(func(db remit.KVStore) error {
		events.Reset()
		return fn(ctx, db, &events)
	})
	if err != nil {
		remit.GetLogger(ctx).Debug("Transaction failed", "err", err)
		return err
	}
	remit.GetLogger(ctx).Debug("Transaction committed", "events", len(events.Events()))
	if a.sink != nil {
		if err := events.FlushTo(a.sink); err != nil {
			remit.GetLogger(ctx).Error("Event delivery failed", "err", err)
		}
	}
	return nil
}

// Deposit locks value of remitter under the commitment.
func (a *App) Deposit(ctx context.Context, remitter remit.Address, c remittance.Commitment, value coin.Amount) error {
	return a.run(ctx, "deposit", func(ctx context.Context, db remit.KVStore, events remittance.EventSink) error {
		return a.ledger.Deposit(ctx, db, events, remitter, c, value)
	})
}

// Claim releases the deposit of the commitment to the recipient.
func (a *App) Claim(ctx context.Context, c remittance.Commitment, recipient, secret []byte) (coin.Amount, error) {
	var value coin.Amount
	err := a.run(ctx, "claim", func(ctx context.Context, db remit.KVStore, events remittance.EventSink) error {
		var err error
		value, err = a.ledger.Claim(ctx, db, events, c, recipient, secret)
		return err
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

// Withdraw returns the deposit of the commitment to its remitter.
func (a *App) Withdraw(ctx context.Context, caller remit.Address, c remittance.Commitment) (coin.Amount, error) {
	var value coin.Amount
	err := a.run(ctx, "withdraw", func(ctx context.Context, db remit.KVStore, events remittance.EventSink) error {
		var err error
		value, err = a.ledger.Withdraw(ctx, db, events, caller, c)
		return err
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

// Mint issues new coins to the destination account.
func (a *App) Mint(ctx context.Context, dest remit.Address, amount coin.Amount) error {
	return a.run(ctx, "mint", func(ctx context.Context, db remit.KVStore, _ remittance.EventSink) error {
		return a.cash.IssueCoins(db, dest, amount)
	})
}

// Send moves coins between two accounts. Unlike the escrow actions it keeps
// the configured minimum balance in the sender wallet, unless the wallet
// is emptied completely.
func (a *App) Send(ctx context.Context, src, dest remit.Address, amount coin.Amount) error {
	return a.run(ctx, "send", func(ctx context.Context, db remit.KVStore, _ remittance.EventSink) error {
		return a.cash.MoveCoins(db, src, dest, amount, false)
	})
}

// Puzzle returns the commitment of recipient and password as hex. It does
// not touch the state.
func (a *App) Puzzle(recipient, password string) (string, error) {
	return remittance.Puzzle(recipient, password)
}

// GetDeposit returns the deposit locked under the commitment.
func (a *App) GetDeposit(c remittance.Commitment) (*remittance.Deposit, error) {
	var d *remittance.Deposit
	err := a.store.View(func(db remit.ReadOnlyKVStore) error {
		var err error
		d, err = a.ledger.Get(db, c)
		return err
	})
	return d, err
}

// Deposits returns all live deposits ordered by commitment.
func (a *App) Deposits() ([]remittance.DepositEntry, error) {
	var entries []remittance.DepositEntry
	err := a.store.View(func(db remit.ReadOnlyKVStore) error {
		var err error
		entries, err = a.ledger.Deposits(db)
		return err
	})
	return entries, err
}

// Balance returns the coins held by the account.
func (a *App) Balance(addr remit.Address) (coin.Amount, error) {
	var b coin.Amount
	err := a.store.View(func(db remit.ReadOnlyKVStore) error {
		var err error
		b, err = a.cash.Balance(db, addr)
		return err
	})
	return b, err
}
