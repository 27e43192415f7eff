// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import "math"

// sequence orders events by operation number, then by index in the operation.
type sequence int64

func newSequence(opNum uint32, index uint32) sequence {
	if (index & math.MaxInt32) != index {
		panic("index too large")
	}
	return (sequence(opNum) << 31) | sequence(index)
}

func (s sequence) OpNumber() uint32 {
	return uint32(s >> 31)
}

func (s sequence) Index() uint32 {
	return uint32(s & math.MaxInt32)
}
