package remittest

import (
	"testing"

	"github.com/iov-one/remit"
	"github.com/iov-one/remit/store"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data. The store is closed and removed when the test
// ends.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) remit.CommitKVStore {
	t.Helper()

	db, err := store.OpenLevelDB(t.TempDir())
	if err != nil {
		t.Fatalf("cannot open database: %s", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
