package remittance

import (
	"context"
	"crypto/subtle"

	"github.com/iov-one/remit"
	"github.com/iov-one/remit/coin"
	"github.com/iov-one/remit/errors"
)

// CoinMover moves value between accounts of the currency ledger. The ledger
// never changes a balance any other way.
//
// allowFullDrain permits the source account to end with a zero balance,
// ignoring any minimum balance the currency ledger would otherwise keep.
type CoinMover interface {
	MoveCoins(db remit.KVStore, src, dest remit.Address, amount coin.Amount, allowFullDrain bool) error
}

// AccountResolver maps the recipient identifier a commitment was made for
// to the account that receives the claimed value.
type AccountResolver interface {
	ResolveAccount(recipient []byte) (remit.Address, error)
}

// ResolverFunc adapts a function to the AccountResolver interface.
type ResolverFunc func(recipient []byte) (remit.Address, error)

func (fn ResolverFunc) ResolveAccount(recipient []byte) (remit.Address, error) {
	return fn(recipient)
}

// AddressResolver reads the recipient identifier as a human readable
// address, see remit.ParseAddress.
var AddressResolver = ResolverFunc(func(recipient []byte) (remit.Address, error) {
	return remit.ParseAddress(string(recipient))
})

// Ledger is the escrow state machine. Each commitment is either empty or
// locked by exactly one deposit.
//
// Ledger methods are not atomic on their own. Run each of them on a cache
// wrap that is written only if the method succeeds, and serialize calls
// that can touch the same commitment. app.App does both.
type Ledger struct {
	bucket   Bucket
	mover    CoinMover
	resolver AccountResolver
}

// NewLedger returns a ledger that moves funds with mover and pays claims to
// the accounts found by resolver.
func NewLedger(mover CoinMover, resolver AccountResolver) Ledger {
	return Ledger{
		bucket:   NewBucket(),
		mover:    mover,
		resolver: resolver,
	}
}

// Deposit locks value taken from remitter under the commitment.
func (l Ledger) Deposit(ctx context.Context, db remit.KVStore, events EventSink,
	remitter remit.Address, c Commitment, value coin.Amount) error {

	if !value.IsPositive() {
		return errors.Wrap(ErrInvalidValue, "deposit must carry value")
	}
	if err := remitter.Validate(); err != nil {
		return errors.Wrap(err, "remitter")
	}
	if c.IsZero() {
		return errors.Wrap(ErrInvalidRequest, "empty commitment")
	}
	switch exists, err := l.bucket.Has(db, c); {
	case err != nil:
		return err
	case exists:
		return errors.Wrapf(ErrDuplicateCommitment, "commitment %s", c)
	}

	if err := l.mover.MoveCoins(db, remitter, EscrowAccount(c), value, true); err != nil {
		return errors.Wrap(err, "lock value")
	}
	if err := l.bucket.Save(db, c, NewDeposit(remitter, value)); err != nil {
		return err
	}

	l.emit(ctx, events, DepositEvent{
		Remitter:   remitter,
		Commitment: c,
		Value:      value,
	})
	return nil
}

// Claim releases the deposit to the recipient account if recipient and
// secret reproduce the commitment. It returns the released value.
func (l Ledger) Claim(ctx context.Context, db remit.KVStore, events EventSink,
	c Commitment, recipient, secret []byte) (coin.Amount, error) {

	deposit, err := l.load(db, c)
	if err != nil {
		return 0, err
	}

	candidate, err := Commit(recipient, secret)
	if err != nil {
		return 0, err
	}
	if subtle.ConstantTimeCompare(candidate[:], c[:]) != 1 {
		return 0, errors.Wrapf(ErrInvalidPuzzle, "commitment %s", c)
	}

	account, err := l.resolver.ResolveAccount(recipient)
	if err != nil {
		return 0, errors.Wrap(err, "recipient account")
	}

	value := deposit.Amount()
	if err := l.mover.MoveCoins(db, EscrowAccount(c), account, value, true); err != nil {
		return 0, errors.Wrap(err, "release value")
	}
	if err := l.bucket.Delete(db, c); err != nil {
		return 0, err
	}

	l.emit(ctx, events, TransferEvent{
		Commitment: c,
		Recipient:  append([]byte(nil), recipient...),
		Account:    account,
		Value:      value,
	})
	return value, nil
}

// Withdraw returns the deposit to its remitter. Only the remitter may call
// it. It returns the returned value.
func (l Ledger) Withdraw(ctx context.Context, db remit.KVStore, events EventSink,
	caller remit.Address, c Commitment) (coin.Amount, error) {

	deposit, err := l.load(db, c)
	if err != nil {
		return 0, err
	}
	remitter := deposit.RemitterAddress()
	if len(caller) == 0 || !caller.Equals(remitter) {
		return 0, errors.Wrapf(ErrNotOwner, "caller %s", caller)
	}

	value := deposit.Amount()
	if err := l.mover.MoveCoins(db, EscrowAccount(c), remitter, value, true); err != nil {
		return 0, errors.Wrap(err, "return value")
	}
	if err := l.bucket.Delete(db, c); err != nil {
		return 0, err
	}

	l.emit(ctx, events, WithdrawEvent{
		Remitter:   remitter,
		Commitment: c,
		Value:      value,
	})
	return value, nil
}

// Get returns the deposit locked under the commitment.
func (l Ledger) Get(db remit.ReadOnlyKVStore, c Commitment) (*Deposit, error) {
	return l.load(db, c)
}

// Deposits returns all live deposits ordered by commitment.
func (l Ledger) Deposits(db remit.ReadOnlyKVStore) ([]DepositEntry, error) {
	return l.bucket.All(db)
}

func (l Ledger) load(db remit.ReadOnlyKVStore, c Commitment) (*Deposit, error) {
	deposit, err := l.bucket.Get(db, c)
	if err != nil {
		return nil, err
	}
	if deposit == nil {
		return nil, errors.Wrapf(ErrUnknownCommitment, "commitment %s", c)
	}
	return deposit, nil
}

// emit is fire and forget, a failing sink is only logged.
func (l Ledger) emit(ctx context.Context, events EventSink, e Event) {
	if events == nil {
		return
	}
	if err := events.Emit(e); err != nil {
		remit.GetLogger(ctx).Error("cannot emit event", "kind", e.Kind(), "err", err)
	}
}
