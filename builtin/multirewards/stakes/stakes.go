// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"github.com/holiman/uint256"

	"github.com/vechain/multirewards/builtin/reverts"
	"github.com/vechain/multirewards/builtin/solidity"
	"github.com/vechain/multirewards/thor"
)

var (
	totalSlot    = thor.Blake2b([]byte("stakes-total"))
	balancesSlot = thor.Blake2b([]byte("stakes-balances"))
)

// Stakes keeps the principal deposited by each account.
// The sum of all balances always equals the total.
type Stakes struct {
	total    *solidity.Uint256
	balances *solidity.Mapping[thor.Address, uint256.Int]
}

func New(ctx *solidity.Context) *Stakes {
	return &Stakes{
		total:    solidity.NewUint256(ctx, totalSlot),
		balances: solidity.NewMapping[thor.Address, uint256.Int](ctx, balancesSlot),
	}
}

func (s *Stakes) TotalStaked() (*uint256.Int, error) {
	return s.total.Get()
}

func (s *Stakes) BalanceOf(account thor.Address) (*uint256.Int, error) {
	bal, err := s.balances.Get(account)
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

func (s *Stakes) Deposit(account thor.Address, amount *uint256.Int) error {
	bal, err := s.balances.Get(account)
	if err != nil {
		return err
	}
	if _, overflow := bal.AddOverflow(&bal, amount); overflow {
		return reverts.ErrOverflow
	}
	if err := s.total.Add(amount); err != nil {
		return err
	}
	return s.balances.Set(account, bal)
}

func (s *Stakes) Release(account thor.Address, amount *uint256.Int) error {
	bal, err := s.balances.Get(account)
	if err != nil {
		return err
	}
	if bal.Lt(amount) {
		return reverts.ErrInvalidAmount.Reason("withdraw exceeds staked balance")
	}
	if err := s.total.Sub(amount); err != nil {
		return err
	}
	bal.Sub(&bal, amount)
	return s.balances.Set(account, bal)
}
