package store

import (
	"github.com/iov-one/remit/errors"
	"github.com/syndtr/goleveldb/leveldb"
	dberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	// minCache is the minimum amount of memory in megabytes to allocate to
	// leveldb read and write caching, split half and half.
	minCache = 16

	// minHandles is the minimum number of files handles to allocate to the
	// open database files.
	minHandles = 16
)

// LevelDB is a persistent key-value store on top of goleveldb. Writes done
// through a cache wrap are flushed with a single atomic leveldb batch, so a
// transaction is either fully on disk or not at all.
type LevelDB struct {
	path string
	db   *leveldb.DB
}

var _ CommitKVStore = (*LevelDB)(nil)

// OpenLevelDB opens (or creates) the database under given directory. A
// corrupted database is recovered when possible.
func OpenLevelDB(path string) (*LevelDB, error) {
	options := &opt.Options{
		OpenFilesCacheCapacity: minHandles,
		BlockCacheCapacity:     minCache / 2 * opt.MiB,
		WriteBuffer:            minCache / 4 * opt.MiB,
	}
	db, err := leveldb.OpenFile(path, options)
	if dberrors.IsCorrupted(err) {
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s: %s", path, err)
	}
	return &LevelDB{path: path, db: db}, nil
}

// Path returns the directory the database lives in.
func (l *LevelDB) Path() string {
	return l.path
}

// Get returns nil iff key doesn't exist.
func (l *LevelDB) Get(key []byte) ([]byte, error) {
	val, err := l.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return val, nil
}

// Has checks if a key exists.
func (l *LevelDB) Has(key []byte) (bool, error) {
	ok, err := l.db.Has(key, nil)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Set writes a single key directly, outside of any batch.
func (l *LevelDB) Set(key, value []byte) error {
	if err := l.db.Put(key, value, nil); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes a single key directly, outside of any batch.
func (l *LevelDB) Delete(key []byte) error {
	if err := l.db.Delete(key, nil); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (l *LevelDB) Iterator(start, end []byte) (Iterator, error) {
	it := l.db.NewIterator(&util.Range{Start: start, Limit: end}, nil)
	iter := &levelIterator{it: it}
	iter.valid = it.First()
	if err := it.Error(); err != nil {
		it.Release()
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return iter, nil
}

// NewBatch returns an atomic batch.
func (l *LevelDB) NewBatch() Batch {
	return &levelBatch{db: l.db, batch: new(leveldb.Batch)}
}

// CacheWrap returns a scratch pad whose Write is a single atomic batch.
func (l *LevelDB) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(l, l.NewBatch(), nil)
}

// Close releases the database files.
func (l *LevelDB) Close() error {
	if err := l.db.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

type levelBatch struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (b *levelBatch) Set(key, value []byte) error {
	b.batch.Put(key, value)
	return nil
}

func (b *levelBatch) Delete(key []byte) error {
	b.batch.Delete(key)
	return nil
}

func (b *levelBatch) Write() error {
	if err := b.db.Write(b.batch, &opt.WriteOptions{Sync: true}); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	b.batch.Reset()
	return nil
}

// levelIterator copies key and value out of the leveldb buffers, which are
// reused on every move.
type levelIterator struct {
	it    iterator.Iterator
	valid bool
}

func (i *levelIterator) Valid() bool {
	return i.valid
}

func (i *levelIterator) Next() error {
	if !i.valid {
		panic("advanced past the end")
	}
	i.valid = i.it.Next()
	if err := i.it.Error(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (i *levelIterator) Key() []byte {
	return append([]byte(nil), i.it.Key()...)
}

func (i *levelIterator) Value() []byte {
	return append([]byte(nil), i.it.Value()...)
}

func (i *levelIterator) Close() {
	i.it.Release()
}
