package app

import (
	"sync"

	"github.com/iov-one/remit"
	"github.com/iov-one/remit/errors"
)

// CommitStore runs every state change in its own cache wrap of the
// committed store. A change is written only if it succeeds as a whole.
//
// Writers are serialized, readers see only committed state.
type CommitStore struct {
	mu        sync.RWMutex
	committed remit.CacheableKVStore
}

// NewCommitStore wraps the committed store.
func NewCommitStore(committed remit.CacheableKVStore) *CommitStore {
	return &CommitStore{committed: committed}
}

// Deliver runs fn on a fresh cache wrap. The cache is written to the
// committed store when fn returns no error and discarded otherwise. A panic
// in fn is returned as errors.ErrPanic and discards the cache as well.
func (cs *CommitStore) Deliver(fn func(db remit.KVStore) error) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cache := cs.committed.CacheWrap()
	if err := safeRun(func() error { return fn(cache) }); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrapf(errors.ErrDatabase, "commit: %s", err)
	}
	return nil
}

// View runs fn against the committed state.
func (cs *CommitStore) View(fn func(db remit.ReadOnlyKVStore) error) error {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return safeRun(func() error { return fn(cs.committed) })
}
