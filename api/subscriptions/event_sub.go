// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/url"

	"github.com/pkg/errors"

	"github.com/vechain/multirewards/logdb"
	"github.com/vechain/multirewards/thor"
)

// eventFilter selects the events a subscriber receives. Unset fields match anything.
type eventFilter struct {
	Address *thor.Address
	Name    string
	Account *thor.Address
	Token   *thor.Address
}

func parseAddressParam(query url.Values, name string) (*thor.Address, error) {
	s := query.Get(name)
	if s == "" {
		return nil, nil
	}
	addr, err := thor.ParseAddress(s)
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}
	return addr, nil
}

func parseEventFilter(query url.Values) (*eventFilter, error) {
	f := &eventFilter{Name: query.Get("name")}
	var err error
	if f.Address, err = parseAddressParam(query, "addr"); err != nil {
		return nil, err
	}
	if f.Account, err = parseAddressParam(query, "account"); err != nil {
		return nil, err
	}
	if f.Token, err = parseAddressParam(query, "token"); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *eventFilter) Match(ev *logdb.Event) bool {
	if f.Address != nil && *f.Address != ev.Address {
		return false
	}
	if f.Name != "" && f.Name != ev.Name {
		return false
	}
	if f.Account != nil && *f.Account != ev.Account {
		return false
	}
	if f.Token != nil && *f.Token != ev.Token {
		return false
	}
	return true
}
