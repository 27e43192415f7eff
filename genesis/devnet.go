// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/multirewards/thor"
)

// Well-known addresses of the development pool.
var (
	DevPool         = thor.BytesToAddress([]byte("multirewards-pool"))
	DevStakingToken = thor.BytesToAddress([]byte("staking-token"))
	DevRewardTokens = []thor.Address{
		thor.BytesToAddress([]byte("reward-token-1")),
		thor.BytesToAddress([]byte("reward-token-2")),
	}
)

// DevAccounts returns the pre-funded accounts of the development pool.
// The first one is the admin and the distributor of every reward token.
func DevAccounts() []thor.Address {
	accs := make([]thor.Address, 0, 5)
	for i := range 5 {
		accs = append(accs, thor.BytesToAddress(thor.Blake2b([]byte(fmt.Sprintf("dev-account-%d", i))).Bytes()))
	}
	return accs
}

// NewDevnet create genesis for development mode.
func NewDevnet(launchTime uint64) *Genesis {
	accs := DevAccounts()
	// 1 billion tokens each
	balance := new(big.Int).Mul(big.NewInt(1e9), big.NewInt(1e18))

	cfg := &Config{
		LaunchTime:   launchTime,
		Pool:         DevPool,
		Admin:        accs[0],
		StakingToken: DevStakingToken,
	}
	for _, tok := range DevRewardTokens {
		cfg.Rewards = append(cfg.Rewards, Reward{Token: tok, Distributor: accs[0], Duration: 7 * 24 * 3600})
	}
	for _, tok := range append([]thor.Address{DevStakingToken}, DevRewardTokens...) {
		for _, acc := range accs {
			cfg.Accounts = append(cfg.Accounts, Account{Token: tok, Address: acc, Balance: (*math.HexOrDecimal256)(balance)})
		}
	}

	gen, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return gen
}
