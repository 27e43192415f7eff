// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package schedule

import (
	"github.com/holiman/uint256"

	"github.com/vechain/multirewards/builtin/reverts"
	"github.com/vechain/multirewards/builtin/solidity"
	"github.com/vechain/multirewards/thor"
)

var schedulesSlot = thor.Blake2b([]byte("schedules"))

// Schedule is the emission state of one reward token.
type Schedule struct {
	RewardRate           uint256.Int // per second
	PeriodFinish         uint64
	LastUpdateTime       uint64
	RewardPerTokenStored uint256.Int // scaled by thor.RewardScale
}

// LastTimeApplicable returns min(now, PeriodFinish).
func (s *Schedule) LastTimeApplicable(now uint64) uint64 {
	return min(now, s.PeriodFinish)
}

// Active reports whether the period is still running at now.
func (s *Schedule) Active(now uint64) bool {
	return now <= s.PeriodFinish && s.PeriodFinish != 0
}

// elapsed returns the seconds since the last update that still emit rewards.
func (s *Schedule) elapsed(now uint64) uint64 {
	applicable := s.LastTimeApplicable(now)
	if applicable <= s.LastUpdateTime {
		return 0
	}
	return applicable - s.LastUpdateTime
}

// emitted returns rate * seconds.
func (s *Schedule) emitted(seconds uint64) (*uint256.Int, error) {
	v, overflow := new(uint256.Int).MulOverflow(&s.RewardRate, uint256.NewInt(seconds))
	if overflow {
		return nil, reverts.ErrOverflow.Reason("emission")
	}
	return v, nil
}

// RewardPerToken projects the accumulator at now without mutating the schedule.
func (s *Schedule) RewardPerToken(now uint64, totalStaked *uint256.Int) (*uint256.Int, error) {
	if totalStaked.IsZero() {
		return s.RewardPerTokenStored.Clone(), nil
	}
	inc, err := s.emitted(s.elapsed(now))
	if err != nil {
		return nil, err
	}
	if _, overflow := inc.MulOverflow(inc, thor.RewardScale); overflow {
		return nil, reverts.ErrOverflow.Reason("reward per token")
	}
	inc.Div(inc, totalStaked)
	if _, overflow := inc.AddOverflow(inc, &s.RewardPerTokenStored); overflow {
		return nil, reverts.ErrOverflow.Reason("reward per token")
	}
	return inc, nil
}

// Accrue moves the accumulator up to now.
// With nothing staked the last update time stays put, so the elapsed
// emission is still distributed once stake resumes.
func (s *Schedule) Accrue(now uint64, totalStaked *uint256.Int) error {
	if totalStaked.IsZero() {
		return nil
	}
	rpt, err := s.RewardPerToken(now, totalStaked)
	if err != nil {
		return err
	}
	s.RewardPerTokenStored = *rpt
	if applicable := s.LastTimeApplicable(now); applicable > s.LastUpdateTime {
		s.LastUpdateTime = applicable
	}
	return nil
}

// Fund restarts the period at now with amount plus whatever the current
// period has not emitted yet. Accrue must have run at now before.
// Emission of time that passed with nobody staked is not carried over.
// held is the reward balance after amount was received.
func (s *Schedule) Fund(amount *uint256.Int, duration, now uint64, held *uint256.Int) error {
	if duration == 0 {
		return reverts.ErrInvalidDuration.Reason("duration must be positive")
	}
	total := amount.Clone()
	if now < s.PeriodFinish {
		leftover, err := s.emitted(s.PeriodFinish - now)
		if err != nil {
			return err
		}
		if _, overflow := total.AddOverflow(total, leftover); overflow {
			return reverts.ErrOverflow.Reason("reward")
		}
	}

	rate := total.Div(total, uint256.NewInt(duration))
	// rate <= total, so rate * duration cannot overflow
	full := new(uint256.Int).Mul(rate, uint256.NewInt(duration))
	if full.Gt(held) {
		return reverts.ErrInsufficientFunding.Reason("rate %v over %d seconds exceeds balance %v", rate, duration, held)
	}
	if now > ^uint64(0)-duration {
		return reverts.ErrOverflow.Reason("period finish")
	}

	s.RewardRate = *rate
	s.LastUpdateTime = now
	s.PeriodFinish = now + duration
	return nil
}

// ForDuration returns the reward emitted over duration at the current rate.
func (s *Schedule) ForDuration(duration uint64) (*uint256.Int, error) {
	return s.emitted(duration)
}

// Schedules stores one schedule per reward token.
type Schedules struct {
	m *solidity.Mapping[thor.Address, *Schedule]
}

func NewSchedules(ctx *solidity.Context) *Schedules {
	return &Schedules{solidity.NewMapping[thor.Address, *Schedule](ctx, schedulesSlot)}
}

func (s *Schedules) Get(token thor.Address) (*Schedule, error) {
	return s.m.Get(token)
}

func (s *Schedules) Set(token thor.Address, schedule *Schedule) error {
	return s.m.Set(token, schedule)
}
