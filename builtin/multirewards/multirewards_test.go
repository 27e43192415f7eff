// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package multirewards

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/multirewards/builtin/reverts"
	"github.com/vechain/multirewards/builtin/token"
	"github.com/vechain/multirewards/events"
	"github.com/vechain/multirewards/lvldb"
	"github.com/vechain/multirewards/state"
	"github.com/vechain/multirewards/thor"
)

var (
	poolAddr     = thor.BytesToAddress([]byte("pool"))
	owner        = thor.BytesToAddress([]byte("owner"))
	stakingToken = thor.BytesToAddress([]byte("staking"))
	reward1      = thor.BytesToAddress([]byte("reward1"))
	reward2      = thor.BytesToAddress([]byte("reward2"))
	acc1         = thor.BytesToAddress([]byte("acc1"))
	acc2         = thor.BytesToAddress([]byte("acc2"))
	acc3         = thor.BytesToAddress([]byte("acc3"))
)

const t0 = uint64(1_700_000_000)

type testEnv struct {
	t         *testing.T
	state     *state.State
	buf       *events.Buffer
	pool      *MultiRewards
	tokens    map[thor.Address]*token.Token
	overrides map[thor.Address]Asset
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db, 0).NewState()
	env := &testEnv{
		t:         t,
		state:     st,
		buf:       events.NewBuffer(),
		tokens:    make(map[thor.Address]*token.Token),
		overrides: make(map[thor.Address]Asset),
	}
	for _, addr := range []thor.Address{stakingToken, reward1, reward2} {
		env.tokens[addr] = token.New(addr, st, env.buf)
	}
	env.pool = New(poolAddr, st, func(addr thor.Address) Asset {
		if a, ok := env.overrides[addr]; ok {
			return a
		}
		if tok, ok := env.tokens[addr]; ok {
			return tok.Vault(poolAddr)
		}
		return nil
	}, env.buf)
	env.pool.Initialize(owner, stakingToken)
	return env
}

func ether(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), thor.Ether)
}

func (e *testEnv) mint(tok, to thor.Address, amount *uint256.Int) {
	require.NoError(e.t, e.tokens[tok].Mint(to, amount))
}

func (e *testEnv) balance(tok, addr thor.Address) *uint256.Int {
	bal, err := e.tokens[tok].BalanceOf(addr)
	require.NoError(e.t, err)
	return bal
}

func (e *testEnv) earned(account, tok thor.Address, now uint64) *uint256.Int {
	v, err := e.pool.Earned(account, tok, now)
	require.NoError(e.t, err)
	return v
}

func (e *testEnv) stake(account thor.Address, amount *uint256.Int, now uint64) {
	e.mint(stakingToken, account, amount)
	require.NoError(e.t, e.pool.Stake(account, amount, now))
}

func (e *testEnv) fund(tok thor.Address, amount *uint256.Int, now uint64) {
	e.mint(tok, owner, amount)
	require.NoError(e.t, e.pool.NotifyRewardAmount(owner, tok, amount, now))
}

func (e *testEnv) named(name string) []*events.Event {
	var out []*events.Event
	for _, ev := range e.buf.Events() {
		if ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}

// share returns floor(b * reward / total).
func share(b, reward, total *uint256.Int) *uint256.Int {
	v := new(uint256.Int).Mul(b, reward)
	return v.Div(v, total)
}

func TestThreeAccounts(t *testing.T) {
	env := newTestEnv(t)
	pool := env.pool

	require.NoError(t, pool.AddReward(owner, reward1, owner, 100000))
	require.NoError(t, pool.AddReward(owner, reward2, owner, 100000))

	data, err := pool.RewardData(reward1)
	require.NoError(t, err)
	assert.Equal(t, owner, data.Distributor)
	assert.Equal(t, uint64(100000), data.Duration)

	stakes := map[thor.Address]*uint256.Int{acc1: ether(5000), acc2: ether(10000), acc3: ether(1000)}
	accounts := []thor.Address{acc1, acc2, acc3}
	for _, acc := range accounts {
		env.stake(acc, stakes[acc], t0)
	}
	assert.Len(t, env.named(events.Staked), 3)

	total, err := pool.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, ether(16000), total)

	r1, r2 := ether(100000), ether(40000)
	now := t0 + 10
	env.fund(reward1, r1, now)
	env.fund(reward2, r2, now)
	assert.Len(t, env.named(events.RewardAdded), 2)

	now += 1_000_000
	for _, acc := range accounts {
		assert.Equal(t, share(stakes[acc], r1, total), env.earned(acc, reward1, now))
		assert.Equal(t, share(stakes[acc], r2, total), env.earned(acc, reward2, now))
	}

	for _, acc := range accounts {
		require.NoError(t, pool.GetReward(acc, now))
	}
	assert.Len(t, env.named(events.RewardPaid), 6)
	for _, acc := range accounts {
		assert.True(t, env.earned(acc, reward1, now).IsZero())
		assert.True(t, env.earned(acc, reward2, now).IsZero())
		assert.Equal(t, share(stakes[acc], r1, total), env.balance(reward1, acc))
		assert.Equal(t, share(stakes[acc], r2, total), env.balance(reward2, acc))
	}

	// second round, then exit
	env.fund(reward1, r1, now)
	env.fund(reward2, r2, now)
	now += 1_000_000
	for _, acc := range accounts {
		assert.Equal(t, share(stakes[acc], r1, total), env.earned(acc, reward1, now))
		assert.Equal(t, share(stakes[acc], r2, total), env.earned(acc, reward2, now))
	}
	for _, acc := range accounts {
		require.NoError(t, pool.Exit(acc, now))
	}
	for _, acc := range accounts {
		bal, err := pool.BalanceOf(acc)
		require.NoError(t, err)
		assert.True(t, bal.IsZero())
		assert.Equal(t, stakes[acc], env.balance(stakingToken, acc))

		doubled := new(uint256.Int).Mul(share(stakes[acc], r1, total), uint256.NewInt(2))
		assert.Equal(t, doubled, env.balance(reward1, acc))
	}
	total, err = pool.TotalSupply()
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.Len(t, env.named(events.Withdrawn), 3)
}

func TestIdempotentClaim(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.pool.AddReward(owner, reward1, owner, 100))
	env.stake(acc1, uint256.NewInt(10), t0)
	env.fund(reward1, uint256.NewInt(1000), t0)

	require.NoError(t, env.pool.GetReward(acc1, t0+50))
	assert.Equal(t, uint64(500), env.balance(reward1, acc1).Uint64())

	mark := env.buf.Len()
	require.NoError(t, env.pool.GetReward(acc1, t0+50))
	assert.Equal(t, mark, env.buf.Len())
	assert.Equal(t, uint64(500), env.balance(reward1, acc1).Uint64())

	// claiming without stake or rewards does nothing
	require.NoError(t, env.pool.GetReward(acc2, t0+50))
	assert.Equal(t, mark, env.buf.Len())
}

func TestEarnedMonotonic(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.pool.AddReward(owner, reward1, owner, 100))
	env.stake(acc1, uint256.NewInt(3), t0)
	env.stake(acc2, uint256.NewInt(7), t0)
	env.fund(reward1, uint256.NewInt(1000), t0)

	prev := uint256.NewInt(0)
	for now := t0; now <= t0+150; now += 7 {
		e := env.earned(acc1, reward1, now)
		assert.False(t, e.Lt(prev), "earned decreased at %d", now)
		prev = e
	}
	// withdrawing keeps the owed amount
	require.NoError(t, env.pool.Withdraw(acc1, uint256.NewInt(3), t0+60))
	assert.Equal(t, env.earned(acc1, reward1, t0+60), env.earned(acc1, reward1, t0+90))
	assert.False(t, env.earned(acc1, reward1, t0+60).IsZero())
}

func TestProportionality(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.pool.AddReward(owner, reward1, owner, 7))
	stakes := map[thor.Address]uint64{acc1: 3, acc2: 7, acc3: 11}
	for acc, amount := range stakes {
		env.stake(acc, uint256.NewInt(amount), t0)
	}
	env.fund(reward1, uint256.NewInt(1000), t0)

	emitted, err := env.pool.GetRewardForDuration(reward1)
	require.NoError(t, err)
	assert.Equal(t, uint64(142*7), emitted.Uint64())

	sum := uint64(0)
	for acc := range stakes {
		sum += env.earned(acc, reward1, t0+7).Uint64()
	}
	assert.LessOrEqual(t, sum, emitted.Uint64())
	assert.LessOrEqual(t, emitted.Uint64()-sum, uint64(len(stakes)))
}

func TestRollover(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.pool.AddReward(owner, reward1, owner, 100))
	env.stake(acc1, uint256.NewInt(1), t0)

	env.fund(reward1, uint256.NewInt(1000), t0)
	env.fund(reward1, uint256.NewInt(1000), t0+50)

	data, err := env.pool.RewardData(reward1)
	require.NoError(t, err)
	// (1000 + 50*10) / 100
	assert.Equal(t, uint64(15), data.RewardRate.Uint64())
	assert.Equal(t, t0+150, data.PeriodFinish)
	assert.Equal(t, t0+50, data.LastUpdateTime)

	assert.Equal(t, uint64(2000), env.earned(acc1, reward1, t0+500).Uint64())

	applicable, err := env.pool.LastTimeRewardApplicable(reward1, t0+500)
	require.NoError(t, err)
	assert.Equal(t, t0+150, applicable)
}

func TestNoStakers(t *testing.T) {
	t.Run("stake resumes", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.pool.AddReward(owner, reward1, owner, 100))
		env.fund(reward1, uint256.NewInt(1000), t0)

		env.stake(acc1, uint256.NewInt(5), t0+40)
		assert.Equal(t, uint64(1000), env.earned(acc1, reward1, t0+200).Uint64())
	})

	t.Run("refunded before stake", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.pool.AddReward(owner, reward1, owner, 100))
		env.fund(reward1, uint256.NewInt(1000), t0)
		env.fund(reward1, uint256.NewInt(1000), t0+40)

		data, err := env.pool.RewardData(reward1)
		require.NoError(t, err)
		// (1000 + 60*10 leftover) / 100, the first 40 seconds are not carried over
		assert.Equal(t, uint64(16), data.RewardRate.Uint64())
		assert.Equal(t, t0+40, data.LastUpdateTime)

		env.stake(acc1, uint256.NewInt(5), t0+40)
		require.NoError(t, env.pool.GetReward(acc1, t0+200))
		assert.Equal(t, uint64(1600), env.balance(reward1, acc1).Uint64())
		assert.Equal(t, uint64(400), env.balance(reward1, poolAddr).Uint64())
	})
}

func TestAddRewardErrors(t *testing.T) {
	env := newTestEnv(t)
	pool := env.pool

	assert.ErrorIs(t, pool.AddReward(acc1, reward1, owner, 100), reverts.ErrUnauthorized)
	assert.ErrorIs(t, pool.AddReward(owner, reward1, owner, 0), reverts.ErrInvalidDuration)
	require.NoError(t, pool.AddReward(owner, reward1, owner, 100))
	assert.ErrorIs(t, pool.AddReward(owner, reward1, acc1, 50), reverts.ErrDuplicateRegistration)
	assert.ErrorIs(t, pool.AddReward(owner, stakingToken, owner, 100), reverts.ErrDuplicateRegistration)

	tokens, err := pool.RewardTokens()
	require.NoError(t, err)
	assert.Equal(t, []thor.Address{reward1}, tokens)
	assert.Len(t, env.named(events.RewardTokenAdded), 1)
}

func TestNotifyErrors(t *testing.T) {
	env := newTestEnv(t)
	pool := env.pool
	require.NoError(t, pool.AddReward(owner, reward1, owner, 100))
	env.mint(reward1, owner, uint256.NewInt(10_000))

	assert.ErrorIs(t, pool.NotifyRewardAmount(owner, reward2, uint256.NewInt(1), t0), reverts.ErrUnknownToken)
	assert.ErrorIs(t, pool.NotifyRewardAmount(acc1, reward1, uint256.NewInt(1), t0), reverts.ErrUnauthorized)
	assert.ErrorIs(t, pool.NotifyRewardAmount(owner, reward1, uint256.NewInt(0), t0), reverts.ErrInvalidAmount)
	assert.ErrorIs(t, pool.NotifyRewardAmount(owner, reward1, nil, t0), reverts.ErrInvalidAmount)
	assert.ErrorIs(t, pool.NotifyRewardAmount(owner, reward1, uint256.NewInt(20_000), t0), reverts.ErrExternalTransfer)
	assert.Equal(t, uint64(10_000), env.balance(reward1, owner).Uint64())
}

func TestInsufficientFunding(t *testing.T) {
	env := newTestEnv(t)
	pool := env.pool
	require.NoError(t, pool.AddReward(owner, reward1, owner, 100))
	env.stake(acc1, uint256.NewInt(1), t0)
	env.fund(reward1, uint256.NewInt(1000), t0)

	// drain the pool behind its back
	require.NoError(t, env.tokens[reward1].Transfer(poolAddr, acc2, uint256.NewInt(900)))

	env.mint(reward1, owner, uint256.NewInt(10))
	mark := env.buf.Len()
	err := pool.NotifyRewardAmount(owner, reward1, uint256.NewInt(10), t0+50)
	assert.ErrorIs(t, err, reverts.ErrInsufficientFunding)

	// everything rolled back
	assert.Equal(t, mark, env.buf.Len())
	assert.Equal(t, uint64(10), env.balance(reward1, owner).Uint64())
	data, err := pool.RewardData(reward1)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), data.RewardRate.Uint64())
	assert.Equal(t, t0+100, data.PeriodFinish)
	assert.Equal(t, t0, data.LastUpdateTime)
}

func TestStakeWithdrawErrors(t *testing.T) {
	env := newTestEnv(t)
	pool := env.pool

	assert.ErrorIs(t, pool.Stake(acc1, uint256.NewInt(0), t0), reverts.ErrInvalidAmount)
	assert.ErrorIs(t, pool.Stake(acc1, nil, t0), reverts.ErrInvalidAmount)
	assert.ErrorIs(t, pool.Withdraw(acc1, nil, t0), reverts.ErrInvalidAmount)
	// no principal to pull
	mark := env.buf.Len()
	assert.ErrorIs(t, pool.Stake(acc1, uint256.NewInt(5), t0), reverts.ErrExternalTransfer)
	assert.Equal(t, mark, env.buf.Len())
	bal, err := pool.BalanceOf(acc1)
	require.NoError(t, err)
	assert.True(t, bal.IsZero())

	env.stake(acc1, uint256.NewInt(5), t0)
	assert.ErrorIs(t, pool.Withdraw(acc1, uint256.NewInt(0), t0), reverts.ErrInvalidAmount)
	assert.ErrorIs(t, pool.Withdraw(acc1, uint256.NewInt(6), t0), reverts.ErrInvalidAmount)
	assert.ErrorIs(t, pool.Exit(acc2, t0), reverts.ErrInvalidAmount)

	require.NoError(t, pool.Withdraw(acc1, uint256.NewInt(2), t0))
	bal, err = pool.BalanceOf(acc1)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), bal.Uint64())
	assert.Equal(t, uint64(2), env.balance(stakingToken, acc1).Uint64())
}

func TestPause(t *testing.T) {
	env := newTestEnv(t)
	pool := env.pool
	env.stake(acc1, uint256.NewInt(5), t0)

	assert.ErrorIs(t, pool.SetPaused(acc1, true), reverts.ErrUnauthorized)
	require.NoError(t, pool.SetPaused(owner, true))
	require.NoError(t, pool.SetPaused(owner, true))
	assert.Len(t, env.named(events.PauseChanged), 1)

	paused, err := pool.Paused()
	require.NoError(t, err)
	assert.True(t, paused)

	env.mint(stakingToken, acc2, uint256.NewInt(5))
	assert.ErrorIs(t, pool.Stake(acc2, uint256.NewInt(5), t0), reverts.ErrPaused)

	// leaving stays possible
	require.NoError(t, pool.Withdraw(acc1, uint256.NewInt(1), t0))
	require.NoError(t, pool.Exit(acc1, t0))

	require.NoError(t, pool.SetPaused(owner, false))
	require.NoError(t, pool.Stake(acc2, uint256.NewInt(5), t0))
}

func TestSetRewardsDuration(t *testing.T) {
	env := newTestEnv(t)
	pool := env.pool
	require.NoError(t, pool.AddReward(owner, reward1, owner, 100))

	// not funded yet
	require.NoError(t, pool.SetRewardsDuration(owner, reward1, 200, t0))
	env.fund(reward1, uint256.NewInt(2000), t0)

	assert.ErrorIs(t, pool.SetRewardsDuration(acc1, reward1, 50, t0+300), reverts.ErrUnauthorized)
	assert.ErrorIs(t, pool.SetRewardsDuration(owner, reward1, 50, t0+200), reverts.ErrPeriodActive)
	assert.ErrorIs(t, pool.SetRewardsDuration(owner, reward1, 0, t0+201), reverts.ErrInvalidDuration)
	assert.ErrorIs(t, pool.SetRewardsDuration(owner, reward2, 50, t0+201), reverts.ErrUnknownToken)
	require.NoError(t, pool.SetRewardsDuration(owner, reward1, 50, t0+201))

	updated := env.named(events.RewardsDurationUpdated)
	require.Len(t, updated, 2)
	assert.Equal(t, uint64(50), updated[1].Duration)

	data, err := pool.RewardData(reward1)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), data.Duration)
}

func TestSetRewardsDistributor(t *testing.T) {
	env := newTestEnv(t)
	pool := env.pool
	require.NoError(t, pool.AddReward(owner, reward1, owner, 100))

	assert.ErrorIs(t, pool.SetRewardsDistributor(acc1, reward1, acc1), reverts.ErrUnauthorized)
	assert.ErrorIs(t, pool.SetRewardsDistributor(owner, reward2, acc1), reverts.ErrUnknownToken)
	require.NoError(t, pool.SetRewardsDistributor(owner, reward1, acc1))

	env.mint(reward1, owner, uint256.NewInt(100))
	env.mint(reward1, acc1, uint256.NewInt(100))
	assert.ErrorIs(t, pool.NotifyRewardAmount(owner, reward1, uint256.NewInt(100), t0), reverts.ErrUnauthorized)
	require.NoError(t, pool.NotifyRewardAmount(acc1, reward1, uint256.NewInt(100), t0))
}

func TestQueries(t *testing.T) {
	env := newTestEnv(t)
	pool := env.pool

	admin, err := pool.Admin()
	require.NoError(t, err)
	assert.Equal(t, owner, admin)
	stk, err := pool.StakingToken()
	require.NoError(t, err)
	assert.Equal(t, stakingToken, stk)
	assert.Equal(t, poolAddr, pool.Address())

	_, err = pool.Earned(acc1, reward1, t0)
	assert.ErrorIs(t, err, reverts.ErrUnknownToken)
	_, err = pool.RewardPerToken(reward1, t0)
	assert.ErrorIs(t, err, reverts.ErrUnknownToken)
	_, err = pool.GetRewardForDuration(reward1)
	assert.ErrorIs(t, err, reverts.ErrUnknownToken)
	_, err = pool.LastTimeRewardApplicable(reward1, t0)
	assert.ErrorIs(t, err, reverts.ErrUnknownToken)
	_, err = pool.RewardData(reward1)
	assert.ErrorIs(t, err, reverts.ErrUnknownToken)

	require.NoError(t, pool.AddReward(owner, reward1, owner, 100))
	rpt, err := pool.RewardPerToken(reward1, t0)
	require.NoError(t, err)
	assert.True(t, rpt.IsZero())

	env.stake(acc1, uint256.NewInt(2), t0)
	env.fund(reward1, uint256.NewInt(1000), t0)
	rpt, err = pool.RewardPerToken(reward1, t0+10)
	require.NoError(t, err)
	// 10 * 10 * 1e18 / 2
	assert.Equal(t, new(uint256.Int).Mul(uint256.NewInt(50), thor.RewardScale), rpt)

	forDuration, err := pool.GetRewardForDuration(reward1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), forDuration.Uint64())
}

// reentrantAsset claims again from inside every payout.
type reentrantAsset struct {
	Asset
	pool     *MultiRewards
	now      uint64
	reenters int
	errs     []error
}

func (r *reentrantAsset) Push(to thor.Address, amount *uint256.Int) error {
	if err := r.Asset.Push(to, amount); err != nil {
		return err
	}
	if r.reenters == 0 {
		r.reenters++
		r.errs = append(r.errs, r.pool.GetReward(to, r.now))
	}
	return nil
}

func TestReentrantClaim(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.pool.AddReward(owner, reward1, owner, 100))
	env.stake(acc1, uint256.NewInt(1), t0)
	env.fund(reward1, uint256.NewInt(1000), t0)

	asset := &reentrantAsset{Asset: env.tokens[reward1].Vault(poolAddr), pool: env.pool, now: t0 + 100}
	env.overrides[reward1] = asset

	require.NoError(t, env.pool.GetReward(acc1, t0+100))
	require.Len(t, asset.errs, 1)
	assert.NoError(t, asset.errs[0])

	assert.Equal(t, uint64(1000), env.balance(reward1, acc1).Uint64())
	assert.True(t, env.balance(reward1, poolAddr).IsZero())
	assert.Len(t, env.named(events.RewardPaid), 1)
}

type failingAsset struct {
	Asset
}

func (failingAsset) Push(thor.Address, *uint256.Int) error {
	return assert.AnError
}

func TestFailedPayoutRollsBack(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.pool.AddReward(owner, reward1, owner, 100))
	require.NoError(t, env.pool.AddReward(owner, reward2, owner, 100))
	env.stake(acc1, uint256.NewInt(1), t0)
	env.fund(reward1, uint256.NewInt(1000), t0)
	env.fund(reward2, uint256.NewInt(500), t0)

	env.overrides[reward2] = failingAsset{env.tokens[reward2].Vault(poolAddr)}
	mark := env.buf.Len()
	err := env.pool.GetReward(acc1, t0+100)
	assert.ErrorIs(t, err, reverts.ErrExternalTransfer)

	// reward1 payout was undone too
	assert.Equal(t, mark, env.buf.Len())
	assert.True(t, env.balance(reward1, acc1).IsZero())
	assert.Equal(t, uint64(1000), env.earned(acc1, reward1, t0+100).Uint64())
	assert.Equal(t, uint64(500), env.earned(acc1, reward2, t0+100).Uint64())
}

func TestFailedExitRollsBack(t *testing.T) {
	env := newTestEnv(t)
	pool := env.pool
	require.NoError(t, pool.AddReward(owner, reward1, owner, 100))
	env.stake(acc1, uint256.NewInt(10), t0)
	env.stake(acc2, uint256.NewInt(30), t0)
	env.fund(reward1, uint256.NewInt(1000), t0)

	env.overrides[reward1] = failingAsset{env.tokens[reward1].Vault(poolAddr)}
	mark := env.buf.Len()
	assert.ErrorIs(t, pool.Exit(acc1, t0+100), reverts.ErrExternalTransfer)

	bal, err := pool.BalanceOf(acc1)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), bal.Uint64())
	total, err := pool.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, uint64(40), total.Uint64())

	assert.True(t, env.balance(stakingToken, acc1).IsZero())
	assert.Equal(t, uint64(40), env.balance(stakingToken, poolAddr).Uint64())
	assert.Equal(t, mark, env.buf.Len())
	assert.Empty(t, env.named(events.Withdrawn))
	assert.Equal(t, uint64(250), env.earned(acc1, reward1, t0+100).Uint64())

	delete(env.overrides, reward1)
	require.NoError(t, pool.Exit(acc1, t0+100))
	assert.Equal(t, uint64(10), env.balance(stakingToken, acc1).Uint64())
	assert.Equal(t, uint64(250), env.balance(reward1, acc1).Uint64())
	assert.Len(t, env.named(events.Withdrawn), 1)
}

func TestZeroAddressAccount(t *testing.T) {
	env := newTestEnv(t)
	pool := env.pool
	var zero thor.Address
	require.NoError(t, pool.AddReward(owner, reward1, owner, 1000))
	env.stake(acc1, ether(100), t0)
	env.fund(reward1, ether(1000), t0)

	env.stake(zero, ether(100), t0+500)
	assert.True(t, env.earned(zero, reward1, t0+500).IsZero())

	require.NoError(t, pool.GetReward(zero, t0+1000))
	require.NoError(t, pool.GetReward(acc1, t0+1000))
	assert.Equal(t, ether(250), env.balance(reward1, zero))
	assert.Equal(t, ether(750), env.balance(reward1, acc1))
	assert.True(t, env.balance(reward1, poolAddr).IsZero())
}
