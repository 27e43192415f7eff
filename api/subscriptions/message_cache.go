// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"encoding/json"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/multirewards/api/types"
	"github.com/vechain/multirewards/logdb"
)

// messageCache shares the encoded message of an event among subscribers.
type messageCache struct {
	cache *lru.Cache
	mu    sync.Mutex
}

type eventKey struct {
	opNum uint32
	index uint32
}

func newMessageCache(cacheSize int) *messageCache {
	if cacheSize > 1000 {
		cacheSize = 1000
	}
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		// lru.New only throws an error if the number is less than 1
		panic(fmt.Errorf("failed to create message cache: %v", err))
	}
	return &messageCache{
		cache: cache,
	}
}

// GetOrAdd returns the message of the event, encoding it on a cache miss.
// The second return value indicates whether the message is newly generated.
func (mc *messageCache) GetOrAdd(ev *logdb.Event) ([]byte, bool, error) {
	key := eventKey{ev.OpNumber, ev.Index}

	mc.mu.Lock()
	defer mc.mu.Unlock()
	if msg, ok := mc.cache.Get(key); ok {
		return msg.([]byte), false, nil
	}
	msg, err := json.Marshal(types.ConvertEvent(ev))
	if err != nil {
		return nil, false, err
	}
	mc.cache.Add(key, msg)
	return msg, true, nil
}
