// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package multirewards

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/multirewards/builtin/reverts"
	"github.com/vechain/multirewards/events"
	"github.com/vechain/multirewards/state"
	"github.com/vechain/multirewards/thor"
)

// atomic runs fn in a checkpoint. On error every storage write and every
// event emitted by fn is dropped.
func (m *MultiRewards) atomic(fn func() error) error {
	revision := m.state.NewCheckpoint()
	mark := m.journal.Len()
	if err := fn(); err != nil {
		m.state.RevertTo(revision)
		m.journal.Truncate(mark)
		return err
	}
	return nil
}

func (m *MultiRewards) asset(token thor.Address) (Asset, error) {
	asset := m.assets(token)
	if asset == nil {
		return nil, reverts.ErrUnknownToken.Reason("no asset for %v", token)
	}
	return asset, nil
}

// transferError passes reverts and storage errors through and turns
// anything else into an external transfer failure.
func transferError(err error) error {
	if err == nil || reverts.IsRevertErr(err) {
		return err
	}
	var stateErr *state.Error
	if errors.As(err, &stateErr) {
		return err
	}
	return reverts.ErrExternalTransfer.Reason("%v", err)
}

func (m *MultiRewards) emit(ev *events.Event) {
	ev.Address = m.addr
	m.journal.Emit(ev)
}

func (m *MultiRewards) onlyAdmin(caller thor.Address) error {
	admin, err := m.admin.Get()
	if err != nil {
		return err
	}
	if caller != admin {
		return reverts.ErrUnauthorized.Reason("caller is not the admin")
	}
	return nil
}

func (m *MultiRewards) principal() (Asset, error) {
	token, err := m.stakingToken.Get()
	if err != nil {
		return nil, err
	}
	return m.asset(token)
}

// Stake deposits amount of the staking token from caller.
func (m *MultiRewards) Stake(caller thor.Address, amount *uint256.Int, now uint64) error {
	return m.atomic(func() error {
		if amount == nil || amount.IsZero() {
			return reverts.ErrInvalidAmount.Reason("cannot stake 0")
		}
		paused, err := m.paused.Get()
		if err != nil {
			return err
		}
		if paused {
			return reverts.ErrPaused
		}
		if err := m.accumulator.Accrue(caller, now); err != nil {
			return err
		}
		if err := m.stakes.Deposit(caller, amount); err != nil {
			return err
		}
		asset, err := m.principal()
		if err != nil {
			return err
		}
		if err := transferError(asset.Pull(caller, amount)); err != nil {
			return err
		}
		m.emit(&events.Event{Name: events.Staked, Account: caller, Amount: amount.Clone()})
		logger.Debug("staked", "account", caller, "amount", amount)
		return nil
	})
}

// Withdraw returns amount of principal to caller. Owed rewards are kept.
func (m *MultiRewards) Withdraw(caller thor.Address, amount *uint256.Int, now uint64) error {
	return m.atomic(func() error {
		return m.withdraw(caller, amount, now)
	})
}

func (m *MultiRewards) withdraw(caller thor.Address, amount *uint256.Int, now uint64) error {
	if amount == nil || amount.IsZero() {
		return reverts.ErrInvalidAmount.Reason("cannot withdraw 0")
	}
	if err := m.accumulator.Accrue(caller, now); err != nil {
		return err
	}
	if err := m.stakes.Release(caller, amount); err != nil {
		return err
	}
	asset, err := m.principal()
	if err != nil {
		return err
	}
	if err := transferError(asset.Push(caller, amount)); err != nil {
		return err
	}
	m.emit(&events.Event{Name: events.Withdrawn, Account: caller, Amount: amount.Clone()})
	logger.Debug("withdrawn", "account", caller, "amount", amount)
	return nil
}

// GetReward pays caller everything owed on every reward token.
func (m *MultiRewards) GetReward(caller thor.Address, now uint64) error {
	return m.atomic(func() error {
		return m.getReward(caller, now)
	})
}

func (m *MultiRewards) getReward(caller thor.Address, now uint64) error {
	if err := m.accumulator.Accrue(caller, now); err != nil {
		return err
	}
	tokens, err := m.registry.Tokens()
	if err != nil {
		return err
	}
	for _, token := range tokens {
		// zeroed before the transfer, a re-entrant claim finds nothing
		owed, err := m.accumulator.TakeOwed(caller, token)
		if err != nil {
			return err
		}
		if owed.IsZero() {
			continue
		}
		asset, err := m.asset(token)
		if err != nil {
			return err
		}
		if err := transferError(asset.Push(caller, owed)); err != nil {
			return err
		}
		m.emit(&events.Event{Name: events.RewardPaid, Account: caller, Token: token, Amount: owed})
		logger.Debug("reward paid", "account", caller, "token", token, "amount", owed)
	}
	return nil
}

// Exit withdraws the whole stake and claims all rewards.
func (m *MultiRewards) Exit(caller thor.Address, now uint64) error {
	return m.atomic(func() error {
		bal, err := m.stakes.BalanceOf(caller)
		if err != nil {
			return err
		}
		if err := m.withdraw(caller, bal, now); err != nil {
			return err
		}
		return m.getReward(caller, now)
	})
}

// AddReward registers a reward token.
func (m *MultiRewards) AddReward(caller, token, distributor thor.Address, duration uint64) error {
	return m.atomic(func() error {
		if err := m.onlyAdmin(caller); err != nil {
			return err
		}
		staking, err := m.stakingToken.Get()
		if err != nil {
			return err
		}
		// the principal vault would back the reward solvency check
		if token == staking {
			return reverts.ErrDuplicateRegistration.Reason("staking token cannot be a reward token")
		}
		if err := m.registry.Register(token, distributor, duration); err != nil {
			return err
		}
		m.emit(&events.Event{
			Name:         events.RewardTokenAdded,
			Token:        token,
			Counterparty: distributor,
			Duration:     duration,
		})
		logger.Info("reward token added", "token", token, "distributor", distributor, "duration", duration)
		return nil
	})
}

// NotifyRewardAmount pulls amount from the distributor and restarts the period of token.
func (m *MultiRewards) NotifyRewardAmount(caller, token thor.Address, amount *uint256.Int, now uint64) error {
	return m.atomic(func() error {
		cfg, err := m.registry.Get(token)
		if err != nil {
			return err
		}
		if caller != cfg.Distributor {
			return reverts.ErrUnauthorized.Reason("caller is not the distributor")
		}
		if amount == nil || amount.IsZero() {
			return reverts.ErrInvalidAmount.Reason("cannot notify 0")
		}
		s, err := m.accumulator.GlobalAccrue(token, now)
		if err != nil {
			return err
		}
		asset, err := m.asset(token)
		if err != nil {
			return err
		}
		if err := transferError(asset.Pull(caller, amount)); err != nil {
			return err
		}
		held, err := asset.Held()
		if err != nil {
			return transferError(err)
		}
		if err := s.Fund(amount, cfg.Duration, now, held); err != nil {
			return err
		}
		if err := m.schedules.Set(token, s); err != nil {
			return err
		}
		m.emit(&events.Event{Name: events.RewardAdded, Token: token, Amount: amount.Clone()})
		logger.Debug("reward added", "token", token, "amount", amount, "rate", &s.RewardRate, "finish", s.PeriodFinish)
		return nil
	})
}

// SetRewardsDuration changes the period length of token once its period is over.
func (m *MultiRewards) SetRewardsDuration(caller, token thor.Address, duration uint64, now uint64) error {
	return m.atomic(func() error {
		cfg, err := m.registry.Get(token)
		if err != nil {
			return err
		}
		if caller != cfg.Distributor {
			return reverts.ErrUnauthorized.Reason("caller is not the distributor")
		}
		s, err := m.schedules.Get(token)
		if err != nil {
			return err
		}
		if s.Active(now) {
			return reverts.ErrPeriodActive.Reason("period finishes at %d", s.PeriodFinish)
		}
		if err := m.registry.SetDuration(token, duration); err != nil {
			return err
		}
		m.emit(&events.Event{Name: events.RewardsDurationUpdated, Token: token, Duration: duration})
		return nil
	})
}

// SetRewardsDistributor replaces the distributor of token.
func (m *MultiRewards) SetRewardsDistributor(caller, token, distributor thor.Address) error {
	return m.atomic(func() error {
		if err := m.onlyAdmin(caller); err != nil {
			return err
		}
		if err := m.registry.SetDistributor(token, distributor); err != nil {
			return err
		}
		m.emit(&events.Event{Name: events.RewardsDistributorUpdated, Token: token, Counterparty: distributor})
		return nil
	})
}

// SetPaused pauses or resumes staking. Setting the current value is a no-op.
func (m *MultiRewards) SetPaused(caller thor.Address, paused bool) error {
	return m.atomic(func() error {
		if err := m.onlyAdmin(caller); err != nil {
			return err
		}
		current, err := m.paused.Get()
		if err != nil {
			return err
		}
		if current == paused {
			return nil
		}
		m.paused.Set(paused)
		m.emit(&events.Event{Name: events.PauseChanged, Flag: paused})
		logger.Info("pause changed", "paused", paused)
		return nil
	})
}
