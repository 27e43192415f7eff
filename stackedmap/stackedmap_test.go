// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/multirewards/stackedmap"
)

func M(a ...any) []any {
	return a
}

func TestStackedMap(t *testing.T) {
	assert := assert.New(t)
	src := make(map[string]string)
	src["foo"] = "bar"

	sm := stackedmap.New(func(key any) (any, bool, error) {
		v, r := src[key.(string)]
		return v, r, nil
	})

	tests := []struct {
		f         func()
		depth     int
		putKey    string
		putValue  string
		getKey    string
		getReturn []any
	}{
		{func() {}, 1, "", "", "foo", []any{"bar", true, nil}},
		{func() { sm.Push() }, 2, "foo", "baz", "foo", []any{"baz", true, nil}},
		{func() {}, 2, "foo", "baz1", "foo", []any{"baz1", true, nil}},
		{func() { sm.Push() }, 3, "foo", "qux", "foo", []any{"qux", true, nil}},
		{func() { sm.Pop() }, 2, "", "", "foo", []any{"baz1", true, nil}},
		{func() { sm.Pop() }, 1, "", "", "foo", []any{"bar", true, nil}},

		{func() { sm.Push(); sm.Push() }, 3, "", "", "", nil},
		{func() { sm.PopTo(1) }, 1, "", "", "", nil},
	}

	for _, test := range tests {
		test.f()
		assert.Equal(test.depth, sm.Depth())
		if test.putKey != "" {
			sm.Put(test.putKey, test.putValue)
		}
		if test.getKey != "" {
			assert.Equal(test.getReturn, M(sm.Get(test.getKey)))
		}
	}
}

func TestStackedMapJournal(t *testing.T) {
	sm := stackedmap.New(func(any) (any, bool, error) { return nil, false, nil })

	sm.Put("a", 1)
	rev := sm.Push()
	sm.Put("b", 2)
	sm.Put("a", 3)

	var keys []any
	sm.Journal(func(k, v any) bool {
		keys = append(keys, k)
		return true
	})
	assert.Equal(t, []any{"a", "b", "a"}, keys)

	sm.PopTo(rev)
	keys = nil
	sm.Journal(func(k, v any) bool {
		keys = append(keys, k)
		return true
	})
	assert.Equal(t, []any{"a"}, keys)

	v, ok, err := sm.Get("a")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestStackedMapSourceError(t *testing.T) {
	boom := errors.New("boom")
	sm := stackedmap.New(func(any) (any, bool, error) { return nil, false, boom })

	_, _, err := sm.Get("missing")
	assert.Equal(t, boom, err)

	sm.Put("missing", "now")
	v, ok, err := sm.Get("missing")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "now", v)
}
