/*
Package errors provides the coded errors shared by all remit packages.

Every error returned to a caller wraps one registered root error. The root
error carries a numeric code that survives wrapping and is what API
clients see, see Response. Generic failures (bad input, empty values,
insufficient amount, storage problems) are declared here. x/remittance
registers its own codes for the escrow protocol, x/cash only uses the
ones from this package.

Declare a root error once, at startup:

	ErrSomething = errors.Register(1234, "something")

and wrap it where the failure happens, so a stack trace is recorded:

	return errors.Wrapf(ErrSomething, "key %q", key)

Callers test the kind with ErrSomething.Is(err). Formatting with %s
prints the message chain, %+v adds the stack trace of the innermost wrap.
*/
package errors
