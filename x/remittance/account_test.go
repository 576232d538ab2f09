package remittance

import (
	"testing"

	"github.com/iov-one/remit"
	"github.com/iov-one/remit/remittest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscrowAccount(t *testing.T) {
	c, err := Commit([]byte("alice"), []byte("s3cret"))
	require.NoError(t, err)

	addr := EscrowAccount(c)
	require.NoError(t, addr.Validate())
	assert.Equal(t, remittest.ParseAddress(t, "D32ECC29B494657E4D6D03BCC773A15C770AD1C3"), addr)
	assert.Equal(t, addr, EscrowAccount(c))

	ext, typ, data, err := EscrowCondition(c).Parse()
	require.NoError(t, err)
	assert.Equal(t, ModuleID, ext)
	assert.Equal(t, "escrow", typ)
	assert.Equal(t, c[:], data)

	// the readable form resolves to the same account
	parsed, err := remit.ParseAddress("cond:remittan/escrow/" + c.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)
}

func TestEscrowAccountsAreDistinct(t *testing.T) {
	seen := make(map[string]Commitment)
	for _, secret := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		c, err := Commit([]byte("alice"), []byte(secret))
		require.NoError(t, err)
		addr := EscrowAccount(c).String()
		if prev, ok := seen[addr]; ok {
			t.Fatalf("commitments %s and %s share account %s", prev, c, addr)
		}
		seen[addr] = c
	}
}
