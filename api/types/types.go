// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package types holds the json types shared by the api resources.
package types

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"

	"github.com/vechain/multirewards/engine"
	"github.com/vechain/multirewards/logdb"
	"github.com/vechain/multirewards/thor"
)

// Amount converts a uint256 to its json form.
func Amount(v *uint256.Int) *math.HexOrDecimal256 {
	if v == nil {
		return (*math.HexOrDecimal256)(new(big.Int))
	}
	return (*math.HexOrDecimal256)(v.ToBig())
}

// ParseAmount converts a json amount to uint256. A missing amount is zero.
func ParseAmount(v *math.HexOrDecimal256) (*uint256.Int, error) {
	if v == nil {
		return new(uint256.Int), nil
	}
	b := (*big.Int)(v)
	if b.Sign() < 0 {
		return nil, errors.New("negative amount")
	}
	amount, overflow := uint256.FromBig(b)
	if overflow {
		return nil, errors.New("amount exceeds 256 bits")
	}
	return amount, nil
}

// EventMeta locates an event.
type EventMeta struct {
	OpNumber uint32 `json:"opNumber"`
	Index    uint32 `json:"index"`
	Time     uint64 `json:"time"`
}

// Event is an indexed event.
type Event struct {
	Name         string                `json:"name"`
	Address      thor.Address          `json:"address"`
	Account      thor.Address          `json:"account"`
	Counterparty thor.Address          `json:"counterparty"`
	Token        thor.Address          `json:"token"`
	Amount       *math.HexOrDecimal256 `json:"amount"`
	Duration     uint64                `json:"duration"`
	Flag         bool                  `json:"flag"`
	Meta         EventMeta             `json:"meta"`
}

// ConvertEvent converts an indexed event to its json form.
func ConvertEvent(ev *logdb.Event) *Event {
	return &Event{
		Name:         ev.Name,
		Address:      ev.Address,
		Account:      ev.Account,
		Counterparty: ev.Counterparty,
		Token:        ev.Token,
		Amount:       Amount(ev.Amount),
		Duration:     ev.Duration,
		Flag:         ev.Flag,
		Meta: EventMeta{
			OpNumber: ev.OpNumber,
			Index:    ev.Index,
			Time:     ev.Time,
		},
	}
}

// ConvertEvents converts a batch of indexed events.
func ConvertEvents(evs []*logdb.Event) []*Event {
	out := make([]*Event, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ConvertEvent(ev))
	}
	return out
}

// OpResult is the response of a committed operation.
type OpResult struct {
	OpNumber uint32   `json:"opNumber"`
	Time     uint64   `json:"time"`
	Events   []*Event `json:"events"`
}

// ConvertResult converts an engine result.
func ConvertResult(res *engine.Result) *OpResult {
	return &OpResult{
		OpNumber: res.OpNumber,
		Time:     res.Time,
		Events:   ConvertEvents(res.Events),
	}
}

// TokenAmount is an amount of a token.
type TokenAmount struct {
	Token  thor.Address          `json:"token"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}
