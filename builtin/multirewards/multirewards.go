// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package multirewards implements a staking pool paying several reward
// tokens, each emitted at its own rate over its own period.
package multirewards

import (
	"github.com/holiman/uint256"

	"github.com/vechain/multirewards/builtin/multirewards/accumulator"
	"github.com/vechain/multirewards/builtin/multirewards/registry"
	"github.com/vechain/multirewards/builtin/multirewards/schedule"
	"github.com/vechain/multirewards/builtin/multirewards/stakes"
	"github.com/vechain/multirewards/builtin/solidity"
	"github.com/vechain/multirewards/events"
	"github.com/vechain/multirewards/log"
	"github.com/vechain/multirewards/state"
	"github.com/vechain/multirewards/thor"
)

var logger = log.WithContext("pkg", "multirewards")

var (
	adminSlot        = thor.Blake2b([]byte("admin"))
	stakingTokenSlot = thor.Blake2b([]byte("staking-token"))
	pausedSlot       = thor.Blake2b([]byte("paused"))
)

// Asset moves one token in and out of the pool.
type Asset interface {
	Pull(from thor.Address, amount *uint256.Int) error
	Push(to thor.Address, amount *uint256.Int) error
	Held() (*uint256.Int, error)
}

// Assets resolves the asset the pool holds of the given token.
type Assets func(token thor.Address) Asset

// Journal collects events and can drop those emitted after a mark.
type Journal interface {
	events.Emitter
	Len() int
	Truncate(n int)
}

// RewardData is the combined config and schedule of a reward token.
type RewardData struct {
	Distributor          thor.Address
	Duration             uint64
	PeriodFinish         uint64
	RewardRate           *uint256.Int
	LastUpdateTime       uint64
	RewardPerTokenStored *uint256.Int
}

// MultiRewards is the pool contract bound to a state.
type MultiRewards struct {
	addr    thor.Address
	state   *state.State
	assets  Assets
	journal Journal

	admin        *solidity.Address
	stakingToken *solidity.Address
	paused       *solidity.Bool

	stakes      *stakes.Stakes
	registry    *registry.Registry
	schedules   *schedule.Schedules
	accumulator *accumulator.Accumulator
}

func New(addr thor.Address, state *state.State, assets Assets, journal Journal) *MultiRewards {
	ctx := solidity.NewContext(addr, state)
	st := stakes.New(ctx)
	reg := registry.New(ctx)
	sch := schedule.NewSchedules(ctx)
	return &MultiRewards{
		addr:         addr,
		state:        state,
		assets:       assets,
		journal:      journal,
		admin:        solidity.NewAddress(ctx, adminSlot),
		stakingToken: solidity.NewAddress(ctx, stakingTokenSlot),
		paused:       solidity.NewBool(ctx, pausedSlot),
		stakes:       st,
		registry:     reg,
		schedules:    sch,
		accumulator:  accumulator.New(ctx, st, reg, sch),
	}
}

// Initialize sets the admin and the staking token. Used at genesis.
func (m *MultiRewards) Initialize(admin, stakingToken thor.Address) {
	m.admin.Set(&admin)
	m.stakingToken.Set(&stakingToken)
}

func (m *MultiRewards) Address() thor.Address {
	return m.addr
}

func (m *MultiRewards) Admin() (thor.Address, error) {
	return m.admin.Get()
}

func (m *MultiRewards) StakingToken() (thor.Address, error) {
	return m.stakingToken.Get()
}

func (m *MultiRewards) Paused() (bool, error) {
	return m.paused.Get()
}

// TotalSupply returns the total staked principal.
func (m *MultiRewards) TotalSupply() (*uint256.Int, error) {
	return m.stakes.TotalStaked()
}

// BalanceOf returns the principal staked by account.
func (m *MultiRewards) BalanceOf(account thor.Address) (*uint256.Int, error) {
	return m.stakes.BalanceOf(account)
}

func (m *MultiRewards) RewardTokens() ([]thor.Address, error) {
	return m.registry.Tokens()
}

func (m *MultiRewards) Earned(account, token thor.Address, now uint64) (*uint256.Int, error) {
	if _, err := m.registry.Get(token); err != nil {
		return nil, err
	}
	return m.accumulator.Earned(account, token, now)
}

func (m *MultiRewards) RewardPerToken(token thor.Address, now uint64) (*uint256.Int, error) {
	if _, err := m.registry.Get(token); err != nil {
		return nil, err
	}
	return m.accumulator.RewardPerToken(token, now)
}

func (m *MultiRewards) LastTimeRewardApplicable(token thor.Address, now uint64) (uint64, error) {
	if _, err := m.registry.Get(token); err != nil {
		return 0, err
	}
	s, err := m.schedules.Get(token)
	if err != nil {
		return 0, err
	}
	return s.LastTimeApplicable(now), nil
}

// GetRewardForDuration returns the reward emitted over a full period at the current rate.
func (m *MultiRewards) GetRewardForDuration(token thor.Address) (*uint256.Int, error) {
	cfg, err := m.registry.Get(token)
	if err != nil {
		return nil, err
	}
	s, err := m.schedules.Get(token)
	if err != nil {
		return nil, err
	}
	return s.ForDuration(cfg.Duration)
}

func (m *MultiRewards) RewardData(token thor.Address) (*RewardData, error) {
	cfg, err := m.registry.Get(token)
	if err != nil {
		return nil, err
	}
	s, err := m.schedules.Get(token)
	if err != nil {
		return nil, err
	}
	return &RewardData{
		Distributor:          cfg.Distributor,
		Duration:             cfg.Duration,
		PeriodFinish:         s.PeriodFinish,
		RewardRate:           s.RewardRate.Clone(),
		LastUpdateTime:       s.LastUpdateTime,
		RewardPerTokenStored: s.RewardPerTokenStored.Clone(),
	}, nil
}
