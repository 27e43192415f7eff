// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/multirewards/kv"
)

// Stage holds the storage changes of a state, ready to be committed.
type Stage struct {
	db      kv.Store
	cache   *lru.Cache
	changes map[storageKey]rlp.RawValue
}

// Len returns the count of changed slots.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Commit writes all changes atomically into the store.
func (s *Stage) Commit() error {
	if len(s.changes) == 0 {
		return nil
	}
	bulk := s.db.Bulk()
	for k, v := range s.changes {
		var err error
		if len(v) == 0 {
			err = bulk.Delete(k.dbKey())
		} else {
			err = bulk.Put(k.dbKey(), v)
		}
		if err != nil {
			return &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return &Error{err}
	}
	for k, v := range s.changes {
		s.cache.Add(k, v)
	}
	metricStorageCounter().AddWithLabel(int64(len(s.changes)), map[string]string{"type": "write", "target": "db"})
	return nil
}
