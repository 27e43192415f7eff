// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/multirewards/api/types"
	"github.com/vechain/multirewards/thor"
)

// Account for marshal account
type Account struct {
	Staked *math.HexOrDecimal256 `json:"staked"`
	Earned []*types.TokenAmount  `json:"earned"`
}

// Balance is the ledger balance of an account.
type Balance struct {
	Token   thor.Address          `json:"token"`
	Balance *math.HexOrDecimal256 `json:"balance"`
}

// AmountRequest is the body of stake and withdraw.
type AmountRequest struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// TransferRequest is the body of a ledger transfer.
type TransferRequest struct {
	Token  thor.Address          `json:"token"`
	To     thor.Address          `json:"to"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}
