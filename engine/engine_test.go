// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/multirewards/builtin/multirewards"
	"github.com/vechain/multirewards/builtin/reverts"
	"github.com/vechain/multirewards/events"
	"github.com/vechain/multirewards/genesis"
	"github.com/vechain/multirewards/kv"
	"github.com/vechain/multirewards/logdb"
	"github.com/vechain/multirewards/lvldb"
	"github.com/vechain/multirewards/thor"
)

var (
	poolAddr = thor.BytesToAddress([]byte("pool"))
	owner    = thor.BytesToAddress([]byte("owner"))
	staking  = thor.BytesToAddress([]byte("staking"))
	reward1  = thor.BytesToAddress([]byte("reward1"))
	reward2  = thor.BytesToAddress([]byte("reward2"))
	acc1     = thor.BytesToAddress([]byte("acc1"))
	acc2     = thor.BytesToAddress([]byte("acc2"))
	acc3     = thor.BytesToAddress([]byte("acc3"))
)

const t0 = uint64(1_700_000_000)

func ether(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), thor.Ether)
}

func hexOrDecimal(v *uint256.Int) *math.HexOrDecimal256 {
	return (*math.HexOrDecimal256)(v.ToBig())
}

func share(b, reward, total *uint256.Int) *uint256.Int {
	v := new(uint256.Int).Mul(b, reward)
	return v.Div(v, total)
}

func testGenesis(t *testing.T) *genesis.Genesis {
	gen, err := genesis.New(&genesis.Config{
		LaunchTime:   t0,
		Pool:         poolAddr,
		Admin:        owner,
		StakingToken: staking,
		Rewards: []genesis.Reward{
			{Token: reward1, Distributor: owner, Duration: 100000},
			{Token: reward2, Distributor: owner, Duration: 100000},
		},
		Accounts: []genesis.Account{
			{Token: staking, Address: acc1, Balance: hexOrDecimal(ether(5000))},
			{Token: staking, Address: acc2, Balance: hexOrDecimal(ether(10000))},
			{Token: staking, Address: acc3, Balance: hexOrDecimal(ether(1000))},
			{Token: reward1, Address: owner, Balance: hexOrDecimal(ether(200000))},
			{Token: reward2, Address: owner, Balance: hexOrDecimal(ether(80000))},
		},
	})
	require.NoError(t, err)
	return gen
}

type testEngine struct {
	*Engine
	t   *testing.T
	now uint64
	db  kv.Store
}

func newTestEngine(t *testing.T) *testEngine {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { logDB.Close() })

	te := &testEngine{t: t, now: t0, db: db}
	eng, err := New(db, logDB, testGenesis(t), func() uint64 { return te.now }, 0)
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	te.Engine = eng
	return te
}

func (te *testEngine) balance(tok, addr thor.Address) *uint256.Int {
	bal, err := te.TokenBalance(tok, addr)
	require.NoError(te.t, err)
	return bal
}

func (te *testEngine) earned(acc, tok thor.Address) (v *uint256.Int) {
	require.NoError(te.t, te.View(func(pool *multirewards.MultiRewards, now uint64) (err error) {
		v, err = pool.Earned(acc, tok, now)
		return
	}))
	return
}

func (te *testEngine) count(name string) int {
	evs, err := te.LogDB().FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Name: &name}},
	})
	require.NoError(te.t, err)
	return len(evs)
}

func TestGenesis(t *testing.T) {
	te := newTestEngine(t)

	opNum, lastTime := te.Progress()
	assert.Equal(t, uint32(0), opNum)
	assert.Equal(t, t0, lastTime)

	require.NoError(t, te.View(func(pool *multirewards.MultiRewards, _ uint64) error {
		admin, err := pool.Admin()
		require.NoError(t, err)
		assert.Equal(t, owner, admin)
		tokens, err := pool.RewardTokens()
		require.NoError(t, err)
		assert.Equal(t, []thor.Address{reward1, reward2}, tokens)
		return nil
	}))
	assert.Equal(t, ether(5000), te.balance(staking, acc1))
	assert.Equal(t, 2, te.count(events.RewardTokenAdded))
	assert.Equal(t, 5, te.count(events.Transfer))
}

func TestThreeAccounts(t *testing.T) {
	te := newTestEngine(t)

	stakes := map[thor.Address]*uint256.Int{acc1: ether(5000), acc2: ether(10000), acc3: ether(1000)}
	accounts := []thor.Address{acc1, acc2, acc3}
	for _, acc := range accounts {
		_, err := te.Stake(acc, stakes[acc])
		require.NoError(t, err)
	}
	total := ether(16000)

	r1, r2 := ether(100000), ether(40000)
	te.now += 10
	_, err := te.NotifyRewardAmount(owner, reward1, r1)
	require.NoError(t, err)
	_, err = te.NotifyRewardAmount(owner, reward2, r2)
	require.NoError(t, err)

	te.now += 1_000_000
	for _, acc := range accounts {
		assert.Equal(t, share(stakes[acc], r1, total), te.earned(acc, reward1))
		assert.Equal(t, share(stakes[acc], r2, total), te.earned(acc, reward2))
		_, err := te.GetReward(acc)
		require.NoError(t, err)
		assert.Equal(t, share(stakes[acc], r1, total), te.balance(reward1, acc))
		assert.Equal(t, share(stakes[acc], r2, total), te.balance(reward2, acc))
	}
	// account 1 holds 5000/16000 of 100000
	assert.Equal(t, ether(31250), te.balance(reward1, acc1))

	_, err = te.NotifyRewardAmount(owner, reward1, r1)
	require.NoError(t, err)
	_, err = te.NotifyRewardAmount(owner, reward2, r2)
	require.NoError(t, err)
	te.now += 1_000_000

	for _, acc := range accounts {
		res, err := te.Exit(acc)
		require.NoError(t, err)
		assert.Equal(t, te.now, res.Time)
	}
	for _, acc := range accounts {
		assert.Equal(t, stakes[acc], te.balance(staking, acc))
		doubled := new(uint256.Int).Mul(share(stakes[acc], r1, total), uint256.NewInt(2))
		assert.Equal(t, doubled, te.balance(reward1, acc))
	}

	opNum, _ := te.Progress()
	assert.Equal(t, uint32(13), opNum)
	assert.Equal(t, 12, te.count(events.RewardPaid))
	assert.Equal(t, 3, te.count(events.Withdrawn))
	assert.Equal(t, 4, te.count(events.RewardAdded))
}

func TestRevertIsNotCommitted(t *testing.T) {
	te := newTestEngine(t)

	_, err := te.Stake(acc1, ether(100))
	require.NoError(t, err)

	_, err = te.Withdraw(acc1, ether(101))
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)

	_, err = te.Stake(acc1, ether(1_000_000))
	assert.ErrorIs(t, err, reverts.ErrExternalTransfer)

	_, err = te.NotifyRewardAmount(acc1, reward1, ether(1))
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)

	opNum, _ := te.Progress()
	assert.Equal(t, uint32(1), opNum)
	assert.Equal(t, ether(4900), te.balance(staking, acc1))
	assert.Equal(t, 1, te.count(events.Staked))
	assert.Equal(t, 0, te.count(events.Withdrawn))
}

func TestMonotonicClock(t *testing.T) {
	te := newTestEngine(t)

	te.now = t0 + 100
	res, err := te.Stake(acc1, ether(1))
	require.NoError(t, err)
	assert.Equal(t, t0+100, res.Time)

	te.now = t0 + 50
	res, err = te.Stake(acc1, ether(1))
	require.NoError(t, err)
	assert.Equal(t, t0+100, res.Time)
	assert.Equal(t, uint32(2), res.OpNumber)
	for _, ev := range res.Events {
		assert.Equal(t, t0+100, ev.Time)
		assert.Equal(t, uint32(2), ev.OpNumber)
	}
}

func TestReopen(t *testing.T) {
	te := newTestEngine(t)

	te.now += 5
	_, err := te.Stake(acc2, ether(10))
	require.NoError(t, err)

	eng, err := New(te.db, te.LogDB(), testGenesis(t), func() uint64 { return t0 }, 0)
	require.NoError(t, err)
	opNum, lastTime := eng.Progress()
	assert.Equal(t, uint32(1), opNum)
	assert.Equal(t, t0+5, lastTime)

	bal, err := eng.TokenBalance(staking, acc2)
	require.NoError(t, err)
	assert.Equal(t, ether(9990), bal)

	_, err = New(te.db, te.LogDB(), genesis.NewDevnet(t0), nil, 0)
	assert.ErrorContains(t, err, "genesis mismatch")
}

func TestSubscribeEvents(t *testing.T) {
	te := newTestEngine(t)

	ch := make(chan []*logdb.Event, 4)
	sub := te.SubscribeEvents(ch)
	defer sub.Unsubscribe()

	_, err := te.Stake(acc3, ether(1))
	require.NoError(t, err)

	evs := <-ch
	names := make(map[string]bool)
	for _, ev := range evs {
		names[ev.Name] = true
		assert.Equal(t, uint32(1), ev.OpNumber)
	}
	assert.True(t, names[events.Staked])
	assert.True(t, names[events.Transfer])

	// reverted operations publish nothing
	_, err = te.Withdraw(acc3, ether(2))
	require.Error(t, err)
	assert.Len(t, ch, 0)
}

func TestTransfer(t *testing.T) {
	te := newTestEngine(t)

	res, err := te.Transfer(acc1, staking, acc2, ether(5))
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	assert.Equal(t, events.Transfer, res.Events[0].Name)
	assert.Equal(t, staking, res.Events[0].Address)
	assert.Equal(t, ether(4995), te.balance(staking, acc1))
	assert.Equal(t, ether(10005), te.balance(staking, acc2))

	_, err = te.Transfer(acc1, staking, acc2, new(uint256.Int))
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)
	_, err = te.Transfer(acc1, staking, acc2, nil)
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)
}

func TestTransferFromPool(t *testing.T) {
	te := newTestEngine(t)

	_, err := te.Stake(acc1, ether(10))
	require.NoError(t, err)
	pool := te.Pool()
	require.Equal(t, ether(10), te.balance(staking, pool))

	_, err = te.Transfer(pool, staking, acc2, ether(10))
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)
	assert.Equal(t, ether(10), te.balance(staking, pool))
	assert.Equal(t, ether(10000), te.balance(staking, acc2))
}

func TestNilAmount(t *testing.T) {
	te := newTestEngine(t)

	_, err := te.Stake(acc1, nil)
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)
	_, err = te.Withdraw(acc1, nil)
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)
	_, err = te.NotifyRewardAmount(owner, reward1, nil)
	assert.ErrorIs(t, err, reverts.ErrInvalidAmount)

	assert.Equal(t, ether(5000), te.balance(staking, acc1))
}

func TestAdminOperations(t *testing.T) {
	te := newTestEngine(t)
	newToken := thor.BytesToAddress([]byte("reward3"))

	_, err := te.AddReward(acc1, newToken, acc1, 10)
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)
	_, err = te.AddReward(owner, newToken, acc1, 10)
	require.NoError(t, err)

	_, err = te.SetRewardsDistributor(owner, newToken, acc2)
	require.NoError(t, err)
	_, err = te.SetRewardsDuration(acc2, newToken, 20)
	require.NoError(t, err)

	_, err = te.SetPaused(owner, true)
	require.NoError(t, err)
	_, err = te.Stake(acc1, ether(1))
	assert.ErrorIs(t, err, reverts.ErrPaused)

	require.NoError(t, te.View(func(pool *multirewards.MultiRewards, _ uint64) error {
		data, err := pool.RewardData(newToken)
		require.NoError(t, err)
		assert.Equal(t, acc2, data.Distributor)
		assert.Equal(t, uint64(20), data.Duration)
		return nil
	}))
}

func TestCheck(t *testing.T) {
	te := newTestEngine(t)
	assert.NoError(t, te.Check())

	_, err := te.Stake(acc1, ether(1))
	require.NoError(t, err)
	assert.NoError(t, te.Check())

	require.NoError(t, te.LogDB().Close())
	res, err := te.Stake(acc1, ether(1))
	require.NoError(t, err, "indexing failure must not undo the operation")
	assert.Equal(t, uint32(2), res.OpNumber)
	assert.Error(t, te.Check())
}
