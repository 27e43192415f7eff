// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"math"

	"github.com/vechain/multirewards/logdb"
	"github.com/vechain/multirewards/thor"
)

type EventCriteria struct {
	Address *thor.Address `json:"address"`
	Name    *string       `json:"name"`
	Account *thor.Address `json:"account"`
	Token   *thor.Address `json:"token"`
}

type Range struct {
	Unit logdb.RangeType `json:"unit"`
	From *uint64         `json:"from,omitempty"`
	To   *uint64         `json:"to,omitempty"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type EventFilter struct {
	CriteriaSet []*EventCriteria `json:"criteriaSet"`
	Range       *Range           `json:"range"`
	Options     *Options         `json:"options"`
	Order       logdb.Order      `json:"order"`
}

func convertRange(r *Range) (*logdb.Range, error) {
	if r == nil {
		return nil, nil
	}
	unit := r.Unit
	switch unit {
	case "":
		unit = logdb.Operation
	case logdb.Operation, logdb.Time:
	default:
		return nil, fmt.Errorf("unit: unsupported %q", r.Unit)
	}
	out := &logdb.Range{Unit: unit, To: math.MaxInt64}
	if r.From != nil {
		out.From = *r.From
	}
	if r.To != nil {
		out.To = min(*r.To, math.MaxInt64)
	}
	return out, nil
}

// ConvertEventFilter converts the json filter to a logdb filter.
func ConvertEventFilter(filter *EventFilter) (*logdb.EventFilter, error) {
	rng, err := convertRange(filter.Range)
	if err != nil {
		return nil, err
	}
	out := &logdb.EventFilter{
		Range: rng,
		Order: filter.Order,
	}
	if filter.Options != nil {
		out.Options = &logdb.Options{Offset: filter.Options.Offset, Limit: filter.Options.Limit}
	}
	for _, c := range filter.CriteriaSet {
		out.CriteriaSet = append(out.CriteriaSet, &logdb.EventCriteria{
			Address: c.Address,
			Name:    c.Name,
			Account: c.Account,
			Token:   c.Token,
		})
	}
	return out, nil
}
