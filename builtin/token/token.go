// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token implements a fungible token ledger kept in contract storage.
package token

import (
	"github.com/holiman/uint256"

	"github.com/vechain/multirewards/builtin/reverts"
	"github.com/vechain/multirewards/builtin/solidity"
	"github.com/vechain/multirewards/events"
	"github.com/vechain/multirewards/state"
	"github.com/vechain/multirewards/thor"
)

var (
	totalSupplySlot = thor.Blake2b([]byte("total-supply"))
	balancesSlot    = thor.Blake2b([]byte("balances"))
)

// Token is a fungible token whose ledger lives in the storage of its own address.
type Token struct {
	addr     thor.Address
	supply   *solidity.Uint256
	balances *solidity.Mapping[thor.Address, uint256.Int]
	emitter  events.Emitter
}

func New(addr thor.Address, state *state.State, emitter events.Emitter) *Token {
	ctx := solidity.NewContext(addr, state)
	return &Token{
		addr:     addr,
		supply:   solidity.NewUint256(ctx, totalSupplySlot),
		balances: solidity.NewMapping[thor.Address, uint256.Int](ctx, balancesSlot),
		emitter:  emitter,
	}
}

func (t *Token) Address() thor.Address {
	return t.addr
}

func (t *Token) TotalSupply() (*uint256.Int, error) {
	return t.supply.Get()
}

func (t *Token) BalanceOf(addr thor.Address) (*uint256.Int, error) {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return nil, err
	}
	return &bal, nil
}

// Mint credits amount to the given account out of nothing.
func (t *Token) Mint(to thor.Address, amount *uint256.Int) error {
	if err := t.supply.Add(amount); err != nil {
		return err
	}
	bal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	if _, overflow := bal.AddOverflow(&bal, amount); overflow {
		return reverts.ErrOverflow
	}
	if err := t.balances.Set(to, bal); err != nil {
		return err
	}
	t.emit(thor.Address{}, to, amount)
	return nil
}

// Transfer moves amount from one account to another.
func (t *Token) Transfer(from, to thor.Address, amount *uint256.Int) error {
	fromBal, err := t.balances.Get(from)
	if err != nil {
		return err
	}
	if fromBal.Lt(amount) {
		return reverts.ErrExternalTransfer.Reason("transfer amount exceeds balance")
	}
	fromBal.Sub(&fromBal, amount)
	if err := t.balances.Set(from, fromBal); err != nil {
		return err
	}

	toBal, err := t.balances.Get(to)
	if err != nil {
		return err
	}
	if _, overflow := toBal.AddOverflow(&toBal, amount); overflow {
		return reverts.ErrOverflow
	}
	if err := t.balances.Set(to, toBal); err != nil {
		return err
	}
	t.emit(from, to, amount)
	return nil
}

func (t *Token) emit(from, to thor.Address, amount *uint256.Int) {
	if t.emitter == nil {
		return
	}
	t.emitter.Emit(&events.Event{
		Name:         events.Transfer,
		Address:      t.addr,
		Account:      from,
		Counterparty: to,
		Token:        t.addr,
		Amount:       amount.Clone(),
	})
}

// Vault exposes the balance of holder as a pullable and pushable asset.
func (t *Token) Vault(holder thor.Address) *Vault {
	return &Vault{token: t, holder: holder}
}

// Vault is the view of a token held by a contract.
type Vault struct {
	token  *Token
	holder thor.Address
}

// Pull moves amount from an account into the vault.
func (v *Vault) Pull(from thor.Address, amount *uint256.Int) error {
	return v.token.Transfer(from, v.holder, amount)
}

// Push moves amount from the vault to an account.
func (v *Vault) Push(to thor.Address, amount *uint256.Int) error {
	return v.token.Transfer(v.holder, to, amount)
}

// Held returns the balance held by the vault.
func (v *Vault) Held() (*uint256.Int, error) {
	return v.token.BalanceOf(v.holder)
}
