// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/multirewards/kv"
)

const defaultCacheSize = 4096

// Stater is the state creator.
// States created by the same stater share the committed-value cache.
type Stater struct {
	db    kv.Store
	cache *lru.Cache
}

// NewStater create a new stater over the given storage store.
func NewStater(db kv.Store, cacheSize int) *Stater {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, _ := lru.New(cacheSize)
	return &Stater{db, cache}
}

// NewState create a new state object.
func (s *Stater) NewState() *State {
	return newState(s.db, s.cache)
}
