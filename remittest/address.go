package remittest

import (
	"encoding/binary"
	"sync/atomic"
	"testing"

	"github.com/iov-one/remit"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// remit.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) remit.Address {
	t.Helper()

	addr, err := remit.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

var sequence uint64

// NewCondition returns a unique condition. Nobody can sign for it.
func NewCondition() remit.Condition {
	var seq [8]byte
	binary.BigEndian.PutUint64(seq[:], atomic.AddUint64(&sequence, 1))
	return remit.NewCondition("test", "seq", seq[:])
}

// NewAddress returns a unique, valid address.
func NewAddress() remit.Address {
	return NewCondition().Address()
}

// NamedAddress derives a stable address from a human readable name, so
// tests can talk about "alice" and "bob".
func NamedAddress(name string) remit.Address {
	return remit.NewCondition("test", "name", []byte(name)).Address()
}
