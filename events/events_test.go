// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestBuffer(t *testing.T) {
	b := NewBuffer()
	assert.Zero(t, b.Len())

	b.Emit(&Event{Name: Staked, Amount: uint256.NewInt(1)})
	mark := b.Len()
	b.Emit(&Event{Name: RewardPaid})
	b.Emit(&Event{Name: Withdrawn})
	assert.Equal(t, 3, b.Len())

	b.Truncate(mark)
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, Staked, b.Events()[0].Name)

	// truncating beyond the length is a no-op
	b.Truncate(5)
	assert.Equal(t, 1, b.Len())
}
