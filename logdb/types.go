// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"github.com/holiman/uint256"

	"github.com/vechain/multirewards/events"
	"github.com/vechain/multirewards/thor"
)

// Event represents events.Event that can be stored in db.
type Event struct {
	OpNumber     uint32 // operation that emitted the event
	Index        uint32 // position within the operation
	Time         uint64
	Name         string
	Address      thor.Address // always the emitting contract
	Account      thor.Address
	Counterparty thor.Address
	Token        thor.Address
	Amount       *uint256.Int
	Duration     uint64
	Flag         bool
}

// newEvent converts events.Event to Event.
func newEvent(opNum uint32, index uint32, time uint64, ev *events.Event) *Event {
	return &Event{
		OpNumber:     opNum,
		Index:        index,
		Time:         time,
		Name:         ev.Name,
		Address:      ev.Address,
		Account:      ev.Account,
		Counterparty: ev.Counterparty,
		Token:        ev.Token,
		Amount:       ev.Amount,
		Duration:     ev.Duration,
		Flag:         ev.Flag,
	}
}

type RangeType string

const (
	Operation RangeType = "operation"
	Time      RangeType = "time"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Range struct {
	Unit RangeType
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// EventCriteria matches events having all the set fields.
type EventCriteria struct {
	Address *thor.Address
	Name    *string
	Account *thor.Address
	Token   *thor.Address
}

// EventFilter matches events meeting any of the criteria.
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}
