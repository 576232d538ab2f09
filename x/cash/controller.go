package cash

import (
	"github.com/iov-one/remit"
	"github.com/iov-one/remit/coin"
	"github.com/iov-one/remit/errors"
)

// Controller is the only way to change wallet balances.
type Controller struct {
	bucket         Bucket
	minimumBalance coin.Amount
}

// NewController returns a controller that keeps at least minimumBalance in
// every wallet it moves coins out of, unless the move allows to drain the
// wallet. Zero disables the limit.
func NewController(minimumBalance coin.Amount) Controller {
	return Controller{
		bucket:         NewBucket(),
		minimumBalance: minimumBalance,
	}
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
//
// Without allowFullDrain the sender must either keep the minimum balance
// or nothing at all.
func (c Controller) MoveCoins(db remit.KVStore, src, dest remit.Address,
	amount coin.Amount, allowFullDrain bool) error {

	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	left, err := sender.Amount().Subtract(amount)
	if err != nil {
		return errors.Wrapf(err, "account %s", src)
	}
	if !allowFullDrain && left.IsPositive() && !left.IsGTE(c.minimumBalance) {
		return errors.Wrapf(errors.ErrInsufficientAmount,
			"account %s would keep %s, below minimum balance %s", src, left, c.minimumBalance)
	}

	if src.Equals(dest) {
		return nil
	}

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	total, err := recipient.Amount().Add(amount)
	if err != nil {
		return errors.Wrapf(err, "account %s", dest)
	}

	// save them and return
	if err := c.bucket.Save(db, src, &Wallet{Balance: left.Uint64()}); err != nil {
		return err
	}
	return c.bucket.Save(db, dest, &Wallet{Balance: total.Uint64()})
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
func (c Controller) IssueCoins(db remit.KVStore, dest remit.Address, amount coin.Amount) error {
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	total, err := recipient.Amount().Add(amount)
	if err != nil {
		return errors.Wrapf(err, "account %s", dest)
	}
	return c.bucket.Save(db, dest, &Wallet{Balance: total.Uint64()})
}

// Balance returns the coins held by the address, zero for an unknown one.
func (c Controller) Balance(db remit.ReadOnlyKVStore, addr remit.Address) (coin.Amount, error) {
	w, err := c.bucket.Get(db, addr)
	if err != nil || w == nil {
		return 0, err
	}
	return w.Amount(), nil
}
