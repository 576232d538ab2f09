package remittance

import "github.com/iov-one/remit"

const (
	// ModuleID tags all accounts owned by this extension within the
	// address space.
	ModuleID = "remittan"

	escrowType = "escrow"
)

// EscrowCondition returns the condition that owns the funds locked under
// the commitment. Nobody can sign for it, only this extension moves funds
// out of it.
func EscrowCondition(c Commitment) remit.Condition {
	return remit.NewCondition(ModuleID, escrowType, c[:])
}

// EscrowAccount derives the address holding the deposit of a commitment.
//
// Addresses are 160 bit, so a collision between two escrows is expected
// only after about 2^80 commitments.
func EscrowAccount(c Commitment) remit.Address {
	return EscrowCondition(c).Address()
}
