// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/multirewards/thor"
)

type index uint64

func (i index) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(i))
}

// Array is an append-only dynamic array, laid out like a Solidity storage array:
// the length lives at pos and elements in a mapping derived from pos.
type Array[V any] struct {
	length   *Uint256
	elements *Mapping[index, V]
}

func NewArray[V any](context *Context, pos thor.Bytes32) *Array[V] {
	return &Array[V]{
		length:   NewUint256(context, pos),
		elements: NewMapping[index, V](context, thor.Blake2b(pos.Bytes())),
	}
}

func (a *Array[V]) Len() (uint64, error) {
	l, err := a.length.Get()
	if err != nil {
		return 0, err
	}
	return l.Uint64(), nil
}

func (a *Array[V]) At(i uint64) (value V, err error) {
	n, err := a.Len()
	if err != nil {
		return value, err
	}
	if i >= n {
		return value, errors.Errorf("index %d out of range [0, %d)", i, n)
	}
	return a.elements.Get(index(i))
}

func (a *Array[V]) Push(value V) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	if err := a.elements.Set(index(n), value); err != nil {
		return err
	}
	a.length.Set(new(uint256.Int).SetUint64(n + 1))
	return nil
}

// All returns every element in insertion order.
func (a *Array[V]) All() ([]V, error) {
	n, err := a.Len()
	if err != nil {
		return nil, err
	}
	values := make([]V, 0, n)
	for i := range n {
		v, err := a.elements.Get(index(i))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
