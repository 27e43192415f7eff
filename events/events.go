// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package events defines the notifications emitted by the built-in contracts
// and the buffer collecting them during an operation.
package events

import (
	"github.com/holiman/uint256"

	"github.com/vechain/multirewards/thor"
)

// Event names.
const (
	Staked                    = "Staked"
	Withdrawn                 = "Withdrawn"
	RewardPaid                = "RewardPaid"
	RewardAdded               = "RewardAdded"
	RewardsDurationUpdated    = "RewardsDurationUpdated"
	RewardTokenAdded          = "RewardTokenAdded"
	RewardsDistributorUpdated = "RewardsDistributorUpdated"
	PauseChanged              = "PauseChanged"
	Transfer                  = "Transfer"
)

// Event is a notification raised by a contract.
// Fields not relevant to the event name are left zero.
type Event struct {
	Name         string
	Address      thor.Address // emitting contract
	Account      thor.Address // staker, claimer, sender
	Counterparty thor.Address // recipient, distributor
	Token        thor.Address
	Amount       *uint256.Int
	Duration     uint64
	Flag         bool
}

// Emitter receives events.
type Emitter interface {
	Emit(ev *Event)
}

// Buffer collects events in emission order.
// Truncate drops events emitted after a failed step.
type Buffer struct {
	events []*Event
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Emit(ev *Event) {
	b.events = append(b.events, ev)
}

func (b *Buffer) Len() int {
	return len(b.events)
}

func (b *Buffer) Truncate(n int) {
	if n < len(b.events) {
		b.events = b.events[:n]
	}
}

// Events returns the collected events.
func (b *Buffer) Events() []*Event {
	return b.events
}
