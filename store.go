package remit

// ReadOnlyKVStore is the read side of a store. All methods fail only when
// the backing storage does.
type ReadOnlyKVStore interface {
	// Get returns nil if the key is not set.
	Get(key []byte) ([]byte, error)

	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending key order. A nil bound is
	// open. The domain must not be written to while the iterator is used.
	Iterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by KVStore and Batch.
type SetDeleter interface {
	Set(key, value []byte) error // key and value must not be modified later
	Delete(key []byte) error
}

// KVStore is a store that can be read and written.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch that is applied to this store on Write.
	NewBatch() Batch
}

// Batch collects writes and applies them together.
type Batch interface {
	SetDeleter
	Write() error
}

/*
Iterator is a cursor over a key range.

	itr, err := db.Iterator(start, end)
	if err != nil {
		return err
	}
	defer itr.Close()
	for itr.Valid() {
		k, v := itr.Key(), itr.Value()
		// ...
		if err := itr.Next(); err != nil {
			return err
		}
	}
*/
type Iterator interface {
	// Valid is false once the iterator moved past the last key. It never
	// becomes true again.
	Valid() bool

	// Next moves to the following key. It panics when not Valid.
	Next() error

	// Key and Value panic when not Valid. The returned slices must not be
	// modified.
	Key() []byte
	Value() []byte

	Close()
}

// CacheableKVStore is a store that can open a scratch pad over itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds writes in memory on top of its parent store. Reads see
// the pending writes. Write flushes them to the parent, Discard drops them.
// Either one ends the life of the cache wrap.
type KVCacheWrap interface {
	CacheableKVStore

	Write() error
	Discard()
}

// CommitKVStore is a cacheable store backed by something that outlives
// the process. Close releases the underlying resources.
type CommitKVStore interface {
	CacheableKVStore
	Close() error
}
