package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDBCacheWrapIsPersisted(t *testing.T) {
	dir := t.TempDir()

	db, err := OpenLevelDB(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, db.Path())

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("deposit:1"), []byte("one")))
	require.NoError(t, cache.Set([]byte("deposit:2"), []byte("two")))
	require.NoError(t, cache.Set([]byte("cash:x"), []byte("wallet")))

	// nothing reaches the disk before the write
	assertGet(t, db, []byte("deposit:1"), nil)
	require.NoError(t, cache.Write())
	assertGet(t, db, []byte("deposit:1"), []byte("one"))

	discarded := db.CacheWrap()
	require.NoError(t, discarded.Delete([]byte("deposit:1")))
	discarded.Discard()

	require.NoError(t, db.Close())

	db, err = OpenLevelDB(dir)
	require.NoError(t, err)
	defer db.Close()

	assertGet(t, db, []byte("deposit:1"), []byte("one"))
	assertGet(t, db, []byte("deposit:2"), []byte("two"))
	assertGet(t, db, []byte("cash:x"), []byte("wallet"))

	verifyIterator(t, []Model{
		Pair([]byte("deposit:1"), []byte("one")),
		Pair([]byte("deposit:2"), []byte("two")),
	}, mustIterator(t, db, []byte("deposit:"), []byte("deposit;")))
}

func TestLevelDBIteratorThroughCache(t *testing.T) {
	db, err := OpenLevelDB(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Set([]byte("a"), []byte("disk-a")))
	require.NoError(t, db.Set([]byte("c"), []byte("disk-c")))

	cache := db.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("cache-b")))
	require.NoError(t, cache.Delete([]byte("c")))

	verifyIterator(t, []Model{
		Pair([]byte("a"), []byte("disk-a")),
		Pair([]byte("b"), []byte("cache-b")),
	}, mustIterator(t, cache, nil, nil))

	require.NoError(t, cache.Write())
	assertGet(t, db, []byte("c"), nil)
	assertGet(t, db, []byte("b"), []byte("cache-b"))
}
