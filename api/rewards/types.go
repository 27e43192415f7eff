// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/multirewards/thor"
)

// Reward is the config, schedule and projections of a reward token.
type Reward struct {
	Token                    thor.Address          `json:"token"`
	Distributor              thor.Address          `json:"distributor"`
	Duration                 uint64                `json:"duration"`
	PeriodFinish             uint64                `json:"periodFinish"`
	RewardRate               *math.HexOrDecimal256 `json:"rewardRate"`
	LastUpdateTime           uint64                `json:"lastUpdateTime"`
	RewardPerTokenStored     *math.HexOrDecimal256 `json:"rewardPerTokenStored"`
	RewardPerToken           *math.HexOrDecimal256 `json:"rewardPerToken"`
	LastTimeRewardApplicable uint64                `json:"lastTimeRewardApplicable"`
	RewardForDuration        *math.HexOrDecimal256 `json:"rewardForDuration"`
}

// AddReward is the body of a reward token registration.
type AddReward struct {
	Caller      thor.Address `json:"caller"`
	Token       thor.Address `json:"token"`
	Distributor thor.Address `json:"distributor"`
	Duration    uint64       `json:"duration"`
}

// Notify is the body of a reward funding.
type Notify struct {
	Caller thor.Address          `json:"caller"`
	Amount *math.HexOrDecimal256 `json:"amount"`
}

// SetDuration is the body of a period duration change.
type SetDuration struct {
	Caller   thor.Address `json:"caller"`
	Duration uint64       `json:"duration"`
}

// SetDistributor is the body of a distributor change.
type SetDistributor struct {
	Caller      thor.Address `json:"caller"`
	Distributor thor.Address `json:"distributor"`
}
