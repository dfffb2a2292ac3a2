// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-staking/kv"
)

func TestLevelDB(t *testing.T) {
	persistent, err := New(filepath.Join(t.TempDir(), "lvldb"), Options{16, 16})
	require.NoError(t, err)
	defer persistent.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{persistent, mem} {
		key, value := []byte("123"), []byte("456")

		require.NoError(t, db.Put(key, value))

		got, err := db.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := db.Has(key)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = db.Has([]byte("abc"))
		assert.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, db.Delete(key))
		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
	}
}

func TestBatchAndBucket(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	vaults := kv.Bucket("v").NewStore(db)
	users := kv.Bucket("u").NewStore(db)

	batch := vaults.NewBatch()
	require.NoError(t, batch.Put([]byte("a"), []byte("1")))
	require.NoError(t, batch.Put([]byte("b"), []byte("2")))
	require.NoError(t, batch.Delete([]byte("b")))
	assert.Equal(t, 3, batch.Len())

	// nothing visible before Write
	_, err = vaults.Get([]byte("a"))
	assert.True(t, vaults.IsNotFound(err))

	require.NoError(t, batch.Write())
	require.NoError(t, users.Put([]byte("a"), []byte("x")))

	got, err := vaults.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	raw, err := db.Get([]byte("va"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), raw)

	iter := vaults.Iterate(kv.Range{})
	defer iter.Release()
	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, []string{"a"}, keys)
}

func TestBucketsShareBatch(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	batch := db.NewBatch()
	records := kv.Bucket("r").NewBatch(batch)
	index := kv.Bucket("i").NewBatch(batch)
	require.NoError(t, records.Put([]byte("k"), []byte("v")))
	require.NoError(t, index.Put([]byte("ab1"), nil))
	require.NoError(t, index.Put([]byte("ab2"), nil))
	require.NoError(t, index.Put([]byte("ac1"), nil))
	assert.Equal(t, 4, records.Len())
	require.NoError(t, records.Write())

	got, err := db.Get([]byte("rk"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	iter := kv.Bucket("i").NewStore(db).Iterate(kv.PrefixRange([]byte("ab")))
	defer iter.Release()
	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	require.NoError(t, iter.Error())
	assert.Equal(t, []string{"ab1", "ab2"}, keys)
}
