package remittance

import (
	"bytes"
	"sort"
	"testing"

	"github.com/iov-one/remit/errors"
	"github.com/iov-one/remit/remittest"
	"github.com/iov-one/remit/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositValidate(t *testing.T) {
	cases := map[string]struct {
		deposit *Deposit
		wantErr *errors.Error
	}{
		"valid": {
			deposit: NewDeposit(remittest.NewAddress(), 1),
		},
		"zero value": {
			deposit: NewDeposit(remittest.NewAddress(), 0),
			wantErr: ErrInvalidValue,
		},
		"missing remitter": {
			deposit: &Deposit{Value: 5},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.deposit.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "%+v", err)
		})
	}
}

func TestBucketRoundtrip(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()
	remitter := remittest.NewAddress()
	c := mustCommit(t, "alice", "s3cret")

	got, err := b.Get(db, c)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = b.Save(db, c, &Deposit{Remitter: remitter})
	assert.True(t, ErrInvalidValue.Is(err), "%+v", err)

	want := NewDeposit(remitter, 100)
	require.NoError(t, b.Save(db, c, want))
	has, err := b.Has(db, c)
	require.NoError(t, err)
	assert.True(t, has)

	got, err = b.Get(db, c)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, remitter.Equals(got.RemitterAddress()))

	cp := got.Copy()
	cp.Remitter[0]++
	assert.Equal(t, want, got)

	require.NoError(t, b.Delete(db, c))
	has, err = b.Has(db, c)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBucketAllOrderedByCommitment(t *testing.T) {
	db := store.MemStore()
	b := NewBucket()

	// records of another bucket sharing the prefix start must not show up
	require.NoError(t, db.Set([]byte("deposits"), []byte("noise")))
	require.NoError(t, db.Set([]byte("cash:x"), []byte("noise")))

	var want []Commitment
	for _, secret := range []string{"one", "two", "three", "four", "five"} {
		c := mustCommit(t, "bob", secret)
		require.NoError(t, b.Save(db, c, NewDeposit(remittest.NewAddress(), 7)))
		want = append(want, c)
	}
	sort.Slice(want, func(i, j int) bool {
		return bytes.Compare(want[i][:], want[j][:]) < 0
	})

	entries, err := b.All(db)
	require.NoError(t, err)
	require.Len(t, entries, len(want))
	for i, e := range entries {
		assert.Equal(t, want[i], e.Commitment)
		assert.EqualValues(t, 7, e.Deposit.Value)
	}
}

func mustCommit(t testing.TB, recipient, secret string) Commitment {
	t.Helper()
	c, err := Commit([]byte(recipient), []byte(secret))
	require.NoError(t, err)
	return c
}
