// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accumulator tracks rewards per staked unit and the rewards owed to each account.
package accumulator

import (
	"github.com/holiman/uint256"

	"github.com/vechain/multirewards/builtin/multirewards/registry"
	"github.com/vechain/multirewards/builtin/multirewards/schedule"
	"github.com/vechain/multirewards/builtin/multirewards/stakes"
	"github.com/vechain/multirewards/builtin/reverts"
	"github.com/vechain/multirewards/builtin/solidity"
	"github.com/vechain/multirewards/thor"
)

var accountsSlot = thor.Blake2b([]byte("accumulator-accounts"))

// Account is the reward state of an account for one token.
type Account struct {
	Paid uint256.Int // reward per token at the last settlement
	Owed uint256.Int
}

type accountKey struct {
	account thor.Address
	token   thor.Address
}

func (k accountKey) Bytes() []byte {
	return append(k.account.Bytes(), k.token.Bytes()...)
}

// Accumulator settles rewards lazily: the global accumulator only moves
// when somebody touches the token, accounts only when they act.
type Accumulator struct {
	stakes    *stakes.Stakes
	registry  *registry.Registry
	schedules *schedule.Schedules
	accounts  *solidity.Mapping[accountKey, *Account]
}

func New(ctx *solidity.Context, stakes *stakes.Stakes, registry *registry.Registry, schedules *schedule.Schedules) *Accumulator {
	return &Accumulator{
		stakes:    stakes,
		registry:  registry,
		schedules: schedules,
		accounts:  solidity.NewMapping[accountKey, *Account](ctx, accountsSlot),
	}
}

// GlobalAccrue moves the accumulator of token up to now and returns the updated schedule.
func (a *Accumulator) GlobalAccrue(token thor.Address, now uint64) (*schedule.Schedule, error) {
	total, err := a.stakes.TotalStaked()
	if err != nil {
		return nil, err
	}
	s, err := a.schedules.Get(token)
	if err != nil {
		return nil, err
	}
	if err := s.Accrue(now, total); err != nil {
		return nil, err
	}
	if err := a.schedules.Set(token, s); err != nil {
		return nil, err
	}
	return s, nil
}

// RewardPerToken projects the accumulator of token at now.
func (a *Accumulator) RewardPerToken(token thor.Address, now uint64) (*uint256.Int, error) {
	total, err := a.stakes.TotalStaked()
	if err != nil {
		return nil, err
	}
	s, err := a.schedules.Get(token)
	if err != nil {
		return nil, err
	}
	return s.RewardPerToken(now, total)
}

// pending returns staked * (rpt - paid) / scale.
func pending(staked, rpt, paid *uint256.Int) (*uint256.Int, error) {
	if rpt.Lt(paid) {
		return nil, reverts.ErrOverflow.Reason("accumulator decreased")
	}
	delta := new(uint256.Int).Sub(rpt, paid)
	if _, overflow := delta.MulOverflow(delta, staked); overflow {
		return nil, reverts.ErrOverflow.Reason("earned")
	}
	return delta.Div(delta, thor.RewardScale), nil
}

// Settle accrues token globally, then books what account earned since its last settlement.
func (a *Accumulator) Settle(account, token thor.Address, now uint64) error {
	s, err := a.GlobalAccrue(token, now)
	if err != nil {
		return err
	}
	staked, err := a.stakes.BalanceOf(account)
	if err != nil {
		return err
	}
	acc, err := a.accounts.Get(accountKey{account, token})
	if err != nil {
		return err
	}
	p, err := pending(staked, &s.RewardPerTokenStored, &acc.Paid)
	if err != nil {
		return err
	}
	if _, overflow := acc.Owed.AddOverflow(&acc.Owed, p); overflow {
		return reverts.ErrOverflow.Reason("owed")
	}
	acc.Paid = s.RewardPerTokenStored
	return a.accounts.Set(accountKey{account, token}, acc)
}

// Accrue settles account for every registered token in registration order.
// Any address, the zero address included, is settled as a regular account.
func (a *Accumulator) Accrue(account thor.Address, now uint64) error {
	tokens, err := a.registry.Tokens()
	if err != nil {
		return err
	}
	for _, token := range tokens {
		if err := a.Settle(account, token, now); err != nil {
			return err
		}
	}
	return nil
}

// AccrueAll moves the accumulator of every registered token without settling any account.
func (a *Accumulator) AccrueAll(now uint64) error {
	tokens, err := a.registry.Tokens()
	if err != nil {
		return err
	}
	for _, token := range tokens {
		if _, err := a.GlobalAccrue(token, now); err != nil {
			return err
		}
	}
	return nil
}

// Earned returns what account could claim for token at now.
func (a *Accumulator) Earned(account, token thor.Address, now uint64) (*uint256.Int, error) {
	staked, err := a.stakes.BalanceOf(account)
	if err != nil {
		return nil, err
	}
	rpt, err := a.RewardPerToken(token, now)
	if err != nil {
		return nil, err
	}
	acc, err := a.accounts.Get(accountKey{account, token})
	if err != nil {
		return nil, err
	}
	earned, err := pending(staked, rpt, &acc.Paid)
	if err != nil {
		return nil, err
	}
	if _, overflow := earned.AddOverflow(earned, &acc.Owed); overflow {
		return nil, reverts.ErrOverflow.Reason("earned")
	}
	return earned, nil
}

// TakeOwed zeroes the owed amount of account for token and returns it.
// The account must have been settled before.
func (a *Accumulator) TakeOwed(account, token thor.Address) (*uint256.Int, error) {
	acc, err := a.accounts.Get(accountKey{account, token})
	if err != nil {
		return nil, err
	}
	owed := acc.Owed.Clone()
	if owed.IsZero() {
		return owed, nil
	}
	acc.Owed.Clear()
	if err := a.accounts.Set(accountKey{account, token}, acc); err != nil {
		return nil, err
	}
	return owed, nil
}
