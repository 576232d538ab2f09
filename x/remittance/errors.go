package remittance

import "github.com/iov-one/remit/errors"

// remittance takes 1000-1010
var (
	// ErrInvalidRequest is returned for malformed or empty commitment input.
	ErrInvalidRequest = errors.Register(1000, "invalid request")

	// ErrInvalidValue is returned when a deposit carries no value.
	ErrInvalidValue = errors.Register(1001, "invalid value")

	// ErrDuplicateCommitment is returned when locking a commitment that
	// already holds a deposit.
	ErrDuplicateCommitment = errors.Register(1002, "duplicate commitment")

	// ErrUnknownCommitment is returned when no deposit is locked under the
	// commitment.
	ErrUnknownCommitment = errors.Register(1003, "unknown commitment")

	// ErrInvalidPuzzle is returned when the revealed recipient and secret
	// do not reproduce the commitment.
	ErrInvalidPuzzle = errors.Register(1004, "invalid puzzle")

	// ErrNotOwner is returned when someone other than the remitter
	// withdraws a deposit.
	ErrNotOwner = errors.Register(1005, "not owner")
)
