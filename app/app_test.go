package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/iov-one/remit"
	"github.com/iov-one/remit/coin"
	"github.com/iov-one/remit/errors"
	"github.com/iov-one/remit/remittest"
	"github.com/iov-one/remit/store"
	"github.com/iov-one/remit/x/cash"
	"github.com/iov-one/remit/x/remittance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var namedResolver = remittance.ResolverFunc(func(recipient []byte) (remit.Address, error) {
	return remittest.NamedAddress(string(recipient)), nil
})

func newTestApp(t testing.TB, db remit.CacheableKVStore, sink remittance.EventSink) *App {
	t.Helper()
	a := New(db, cash.NewController(0), namedResolver, sink)
	bob := remittest.NamedAddress("bob")
	require.NoError(t, a.InitGenesis([]cash.GenesisAccount{
		{Address: bob.String(), Amount: "1000"},
	}))
	return a
}

func TestAppRemittance(t *testing.T) {
	var sink remittance.EventBuffer
	a := newTestApp(t, store.MemStore(), &sink)
	ctx := context.Background()
	bob := remittest.NamedAddress("bob")
	alice := remittest.NamedAddress("alice")

	p, err := a.Puzzle("alice", "s3cret")
	require.NoError(t, err)
	c, err := remittance.ParseCommitment(p)
	require.NoError(t, err)

	require.NoError(t, a.Deposit(ctx, bob, c, 100))
	d, err := a.GetDeposit(c)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(100), d.Amount())

	balance, err := a.Balance(remittance.EscrowAccount(c))
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(100), balance)

	entries, err := a.Deposits()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, c, entries[0].Commitment)

	value, err := a.Claim(ctx, c, []byte("alice"), []byte("s3cret"))
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(100), value)

	balance, err = a.Balance(alice)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(100), balance)

	kinds := make([]string, 0, 2)
	for _, e := range sink.Events() {
		kinds = append(kinds, e.Kind())
	}
	assert.Equal(t, []string{remittance.KindDeposit, remittance.KindTransfer}, kinds)
}

func TestAppFailedActionHasNoEffect(t *testing.T) {
	var sink remittance.EventBuffer
	a := newTestApp(t, store.MemStore(), &sink)
	ctx := context.Background()
	bob := remittest.NamedAddress("bob")

	c, err := remittance.Commit([]byte("alice"), []byte("s3cret"))
	require.NoError(t, err)
	require.NoError(t, a.Deposit(ctx, bob, c, 100))
	sink.Reset()

	_, err = a.Claim(ctx, c, []byte("alice"), []byte("wrongsecret"))
	assert.True(t, remittance.ErrInvalidPuzzle.Is(err), "%+v", err)

	mallory := remittest.NamedAddress("mallory")
	_, err = a.Withdraw(ctx, mallory, c)
	assert.True(t, remittance.ErrNotOwner.Is(err), "%+v", err)

	err = a.Deposit(ctx, bob, c, 1)
	assert.True(t, remittance.ErrDuplicateCommitment.Is(err), "%+v", err)

	other, err := remittance.Commit([]byte("alice"), []byte("other"))
	require.NoError(t, err)
	err = a.Deposit(ctx, bob, other, 901)
	assert.True(t, errors.ErrInsufficientAmount.Is(err), "%+v", err)
	_, err = a.GetDeposit(other)
	assert.True(t, remittance.ErrUnknownCommitment.Is(err), "%+v", err)

	assert.Empty(t, sink.Events())
	balance, err := a.Balance(bob)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(900), balance)

	value, err := a.Withdraw(ctx, bob, c)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(100), value)
	require.Len(t, sink.Events(), 1)
	assert.Equal(t, remittance.KindWithdraw, sink.Events()[0].Kind())
}

// failingMover moves the coins and then fails, so the transaction must be
// rolled back.
type failingMover struct {
	cash.Controller
}

func (m failingMover) MoveCoins(db remit.KVStore, src, dest remit.Address, amount coin.Amount, allowFullDrain bool) error {
	if err := m.Controller.MoveCoins(db, src, dest, amount, allowFullDrain); err != nil {
		return err
	}
	return errors.Wrap(errors.ErrDatabase, "broken")
}

func TestAppRollback(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	bob := remittest.NamedAddress("bob")
	controller := cash.NewController(0)
	require.NoError(t, controller.IssueCoins(db, bob, 50))

	a := New(db, controller, namedResolver, nil)
	a.ledger = remittance.NewLedger(failingMover{controller}, namedResolver)

	c, err := remittance.Commit([]byte("alice"), []byte("s3cret"))
	require.NoError(t, err)
	err = a.Deposit(ctx, bob, c, 10)
	assert.True(t, errors.ErrDatabase.Is(err), "%+v", err)

	balance, err := a.Balance(bob)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(50), balance)
	balance, err = a.Balance(remittance.EscrowAccount(c))
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(0), balance)
}

func TestAppSinkFailureKeepsTransaction(t *testing.T) {
	calls := 0
	sink := remittance.SinkFunc(func(remittance.Event) error {
		calls++
		return errors.ErrHuman
	})
	a := newTestApp(t, store.MemStore(), sink)
	ctx := context.Background()
	bob := remittest.NamedAddress("bob")

	c, err := remittance.Commit([]byte("alice"), []byte("s3cret"))
	require.NoError(t, err)
	require.NoError(t, a.Deposit(ctx, bob, c, 100))
	assert.Equal(t, 1, calls)

	d, err := a.GetDeposit(c)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(100), d.Amount())
}

func TestAppPersistence(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	bob := remittest.NamedAddress("bob")
	c, err := remittance.Commit([]byte("alice"), []byte("s3cret"))
	require.NoError(t, err)

	db, err := store.OpenLevelDB(dir)
	require.NoError(t, err)
	a := newTestApp(t, db, nil)
	require.NoError(t, a.Deposit(ctx, bob, c, 100))
	require.NoError(t, db.Close())

	db, err = store.OpenLevelDB(dir)
	require.NoError(t, err)
	defer db.Close()
	a = New(db, cash.NewController(0), namedResolver, nil)

	done, err := a.Initialized()
	require.NoError(t, err)
	assert.True(t, done)
	err = a.InitGenesis(nil)
	assert.True(t, errors.ErrState.Is(err), "%+v", err)

	d, err := a.GetDeposit(c)
	require.NoError(t, err)
	assert.True(t, bob.Equals(d.RemitterAddress()))

	value, err := a.Withdraw(ctx, bob, c)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(100), value)
	balance, err := a.Balance(bob)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(1000), balance)
}

func TestAppMint(t *testing.T) {
	a := newTestApp(t, store.MemStore(), nil)
	carol := remittest.NamedAddress("carol")

	require.NoError(t, a.Mint(context.Background(), carol, 7))
	balance, err := a.Balance(carol)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(7), balance)

	err = a.Mint(context.Background(), carol, coin.MaxAmount)
	assert.True(t, errors.ErrOverflow.Is(err), "%+v", err)
}

type recordingObserver struct {
	actions []string
	failed  []string
}

func (r *recordingObserver) ObserveAction(action string, err error, _ time.Duration) {
	r.actions = append(r.actions, action)
	if err != nil {
		r.failed = append(r.failed, action)
	}
}

func TestAppObserver(t *testing.T) {
	obs := &recordingObserver{}
	a := newTestApp(t, store.MemStore(), nil).WithObserver(obs)
	ctx := context.Background()
	bob := remittest.NamedAddress("bob")
	c, err := remittance.Commit([]byte("alice"), []byte("s3cret"))
	require.NoError(t, err)

	require.NoError(t, a.Deposit(ctx, bob, c, 10))
	_, err = a.Claim(ctx, c, []byte("alice"), []byte("nope"))
	require.Error(t, err)
	_, err = a.Withdraw(ctx, bob, c)
	require.NoError(t, err)

	assert.Equal(t, []string{"deposit", "claim", "withdraw"}, obs.actions)
	assert.Equal(t, []string{"claim"}, obs.failed)
}

func TestAppSendKeepsMinimumBalance(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	bob := remittest.NamedAddress("bob")
	carol := remittest.NamedAddress("carol")
	a := New(db, cash.NewController(10), namedResolver, nil)
	require.NoError(t, a.InitGenesis([]cash.GenesisAccount{
		{Address: bob.String(), Amount: "100"},
	}))

	err := a.Send(ctx, bob, carol, 95)
	assert.True(t, errors.ErrInsufficientAmount.Is(err), "%+v", err)
	require.NoError(t, a.Send(ctx, bob, carol, 90))

	balance, err := a.Balance(bob)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(10), balance)

	// an escrow deposit may go below the minimum
	c, err := remittance.Commit([]byte("alice"), []byte("s3cret"))
	require.NoError(t, err)
	require.NoError(t, a.Deposit(ctx, bob, c, 5))
	balance, err = a.Balance(bob)
	require.NoError(t, err)
	assert.Equal(t, coin.Amount(5), balance)
}

func TestAppConcurrentClaimWithdraw(t *testing.T) {
	ctx := context.Background()
	bob := remittest.NamedAddress("bob")
	alice := remittest.NamedAddress("alice")

	for i := 0; i < 50; i++ {
		a := New(store.MemStore(), cash.NewController(0), namedResolver, nil)
		require.NoError(t, a.Mint(ctx, bob, 100))
		c, err := remittance.Commit([]byte("alice"), []byte("s3cret"))
		require.NoError(t, err)
		require.NoError(t, a.Deposit(ctx, bob, c, 100))

		var (
			wg                    sync.WaitGroup
			claimErr, withdrawErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, claimErr = a.Claim(ctx, c, []byte("alice"), []byte("s3cret"))
		}()
		go func() {
			defer wg.Done()
			_, withdrawErr = a.Withdraw(ctx, bob, c)
		}()
		wg.Wait()

		if claimErr == nil {
			require.True(t, remittance.ErrUnknownCommitment.Is(withdrawErr), "%+v", withdrawErr)
		} else {
			require.True(t, remittance.ErrUnknownCommitment.Is(claimErr), "%+v", claimErr)
			require.NoError(t, withdrawErr)
		}

		escrow, err := a.Balance(remittance.EscrowAccount(c))
		require.NoError(t, err)
		assert.Equal(t, coin.Amount(0), escrow)
		bobBalance, err := a.Balance(bob)
		require.NoError(t, err)
		aliceBalance, err := a.Balance(alice)
		require.NoError(t, err)
		assert.Equal(t, coin.Amount(100), bobBalance+aliceBalance)
	}
}
