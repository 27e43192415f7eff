// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/multirewards/thor"
)

// Pool is the overview of the staking pool.
type Pool struct {
	Address      thor.Address          `json:"address"`
	Admin        thor.Address          `json:"admin"`
	StakingToken thor.Address          `json:"stakingToken"`
	Paused       bool                  `json:"paused"`
	TotalSupply  *math.HexOrDecimal256 `json:"totalSupply"`
	RewardTokens []thor.Address        `json:"rewardTokens"`
	OpNumber     uint32                `json:"opNumber"`
	Time         uint64                `json:"time"`
}

// SetPaused is the body of a pause toggle.
type SetPaused struct {
	Caller thor.Address `json:"caller"`
	Paused bool         `json:"paused"`
}
