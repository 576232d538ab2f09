package app

import "github.com/iov-one/remit/errors"

// safeRun turns panics of fn into errors.ErrPanic, so that a single broken
// request cannot take the process down.
func safeRun(fn func() error) (err error) {
	defer errors.Recover(&err)
	return fn()
}
