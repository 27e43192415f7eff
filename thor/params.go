// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import "github.com/holiman/uint256"

// RewardScale is the fixed-point scale of the reward-per-token accumulator.
var RewardScale = uint256.NewInt(1e18)

// Ether is one whole token unit expressed in its smallest denomination.
var Ether = uint256.NewInt(1e18)
