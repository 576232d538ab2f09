//nolint
package store

import "github.com/iov-one/remit"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = remit.ReadOnlyKVStore
type SetDeleter = remit.SetDeleter
type KVStore = remit.KVStore
type Batch = remit.Batch
type Iterator = remit.Iterator
type CacheableKVStore = remit.CacheableKVStore
type KVCacheWrap = remit.KVCacheWrap
type CommitKVStore = remit.CommitKVStore
