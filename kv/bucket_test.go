// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/multirewards/kv"
	"github.com/vechain/multirewards/lvldb"
)

func TestBucket(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	storage := kv.Bucket("s").NewStore(db)
	meta := kv.Bucket("m").NewStore(db)

	assert.NoError(t, storage.Put([]byte("k"), []byte("storage")))
	assert.NoError(t, meta.Put([]byte("k"), []byte("meta")))

	v, err := storage.Get([]byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("storage"), v)

	v, err = db.Get([]byte("mk"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("meta"), v)

	bulk := meta.Bulk()
	assert.NoError(t, bulk.Put([]byte("k2"), []byte("meta2")))
	assert.NoError(t, bulk.Delete([]byte("k")))
	assert.Equal(t, 2, bulk.Len())
	assert.NoError(t, bulk.Write())

	_, err = meta.Get([]byte("k"))
	assert.True(t, meta.IsNotFound(err))

	iter := meta.Iterate(kv.Range{})
	defer iter.Release()
	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	assert.NoError(t, iter.Error())
	assert.Equal(t, []string{"k2"}, keys)
}
