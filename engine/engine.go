// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package engine serialises pool operations over persistent state and
// indexes the events they emit.
package engine

import (
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/multirewards/builtin/multirewards"
	"github.com/vechain/multirewards/builtin/reverts"
	"github.com/vechain/multirewards/builtin/token"
	"github.com/vechain/multirewards/events"
	"github.com/vechain/multirewards/genesis"
	"github.com/vechain/multirewards/kv"
	"github.com/vechain/multirewards/log"
	"github.com/vechain/multirewards/logdb"
	"github.com/vechain/multirewards/state"
	"github.com/vechain/multirewards/thor"
)

var logger = log.WithContext("pkg", "engine")

// Clock returns the current time in unix seconds.
type Clock func() uint64

// SystemClock reads the wall clock.
func SystemClock() uint64 {
	return uint64(time.Now().Unix())
}

// Result describes a committed operation.
type Result struct {
	OpNumber uint32
	Time     uint64
	Events   []*logdb.Event
}

// Engine runs operations one at a time. State and events are committed only
// when the operation succeeds.
type Engine struct {
	mu      sync.RWMutex
	stater  *state.Stater
	logDB   *logdb.LogDB
	pool    thor.Address
	staking thor.Address
	clock   Clock
	opNum   uint32
	lastNow uint64
	idxErr  error

	feed  event.Feed
	scope event.SubscriptionScope
}

// New opens the engine over db. An empty db is initialised from gen, a db
// built from another genesis is rejected.
func New(db kv.Store, logDB *logdb.LogDB, gen *genesis.Genesis, clock Clock, cacheSize int) (*Engine, error) {
	if clock == nil {
		clock = SystemClock
	}
	stater := state.NewStater(db, cacheSize)
	st := stater.NewState()
	m := newMeta(st)

	storedID, err := m.GenesisID()
	if err != nil {
		return nil, errors.WithMessage(err, "read genesis id")
	}

	switch {
	case storedID.IsZero():
		evs, err := gen.Build(st)
		if err != nil {
			return nil, errors.WithMessage(err, "build genesis")
		}
		launch := gen.Config().LaunchTime
		m.SetGenesisID(gen.ID())
		m.SetProgress(0, launch)
		if err := st.Stage().Commit(); err != nil {
			return nil, errors.WithMessage(err, "commit genesis")
		}
		if err := logDB.NewBatch(0, launch).Insert(evs).Commit(); err != nil {
			return nil, errors.WithMessage(err, "index genesis events")
		}
		logger.Info("genesis initialized", "id", gen.ID(), "events", len(evs))
	case storedID != gen.ID():
		return nil, errors.Errorf("genesis mismatch: stored %v, given %v", storedID, gen.ID())
	}

	opNum, lastNow, err := m.Progress()
	if err != nil {
		return nil, errors.WithMessage(err, "read progress")
	}

	return &Engine{
		stater:  stater,
		logDB:   logDB,
		pool:    gen.Config().Pool,
		staking: gen.Config().StakingToken,
		clock:   clock,
		opNum:   opNum,
		lastNow: lastNow,
	}, nil
}

// Pool returns the pool contract address.
func (e *Engine) Pool() thor.Address {
	return e.pool
}

// LogDB returns the event index.
func (e *Engine) LogDB() *logdb.LogDB {
	return e.logDB
}

// Progress returns the number and time of the last committed operation.
func (e *Engine) Progress() (opNum uint32, lastTime uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.opNum, e.lastNow
}

// Check reads the stored progress back and reports a mismatch with the
// running engine or a failure to index the last operation's events.
func (e *Engine) Check() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	opNum, lastTime, err := newMeta(e.stater.NewState()).Progress()
	if err != nil {
		return errors.WithMessage(err, "read progress")
	}
	if opNum != e.opNum || lastTime != e.lastNow {
		return errors.Errorf("progress mismatch: stored #%v, running #%v", opNum, e.opNum)
	}
	return e.idxErr
}

// now never goes backwards, whatever the clock says.
func (e *Engine) now() uint64 {
	return max(e.clock(), e.lastNow)
}

func (e *Engine) newPool(st *state.State, journal *events.Buffer) *multirewards.MultiRewards {
	assets := func(addr thor.Address) multirewards.Asset {
		return token.New(addr, st, journal).Vault(e.pool)
	}
	return multirewards.New(e.pool, st, assets, journal)
}

// execute runs op on a fresh state and commits it on success.
func (e *Engine) execute(op string, fn func(st *state.State, journal *events.Buffer, now uint64) error) (res *Result, err error) {
	start := time.Now()
	defer func() {
		metricOpCount().AddWithLabel(1, map[string]string{"op": op, "outcome": outcome(err)})
		metricOpDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"op": op})
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	st := e.stater.NewState()
	journal := events.NewBuffer()
	if err := fn(st, journal, now); err != nil {
		if !reverts.IsRevertErr(err) {
			logger.Warn("operation failed", "op", op, "err", err)
		} else {
			logger.Debug("operation reverted", "op", op, "err", err)
		}
		return nil, err
	}

	opNum := e.opNum + 1
	newMeta(st).SetProgress(opNum, now)
	if err := st.Stage().Commit(); err != nil {
		return nil, errors.WithMessage(err, "commit state")
	}
	e.opNum, e.lastNow = opNum, now

	batch := e.logDB.NewBatch(opNum, now).Insert(journal.Events())
	if err := batch.Commit(); err != nil {
		// state is already durable, the operation stands
		logger.Error("failed to index events", "op", op, "opNum", opNum, "err", err)
		e.idxErr = errors.WithMessagef(err, "index events of #%v", opNum)
	} else {
		e.idxErr = nil
	}
	evs := batch.Events()
	if len(evs) > 0 {
		e.feed.Send(evs)
	}

	metricOpNumber().Set(int64(opNum))
	if total, err := e.newPool(st, events.NewBuffer()).TotalSupply(); err == nil {
		metricTotalStaked().Set(wholeUnits(total))
	}
	logger.Debug("operation committed", "op", op, "opNum", opNum, "time", now, "events", len(evs))

	return &Result{OpNumber: opNum, Time: now, Events: evs}, nil
}

func (e *Engine) poolOp(op string, fn func(pool *multirewards.MultiRewards, now uint64) error) (*Result, error) {
	return e.execute(op, func(st *state.State, journal *events.Buffer, now uint64) error {
		return fn(e.newPool(st, journal), now)
	})
}

func (e *Engine) Stake(caller thor.Address, amount *uint256.Int) (*Result, error) {
	return e.poolOp("stake", func(pool *multirewards.MultiRewards, now uint64) error {
		return pool.Stake(caller, amount, now)
	})
}

func (e *Engine) Withdraw(caller thor.Address, amount *uint256.Int) (*Result, error) {
	return e.poolOp("withdraw", func(pool *multirewards.MultiRewards, now uint64) error {
		return pool.Withdraw(caller, amount, now)
	})
}

func (e *Engine) GetReward(caller thor.Address) (*Result, error) {
	return e.poolOp("getReward", func(pool *multirewards.MultiRewards, now uint64) error {
		return pool.GetReward(caller, now)
	})
}

func (e *Engine) Exit(caller thor.Address) (*Result, error) {
	return e.poolOp("exit", func(pool *multirewards.MultiRewards, now uint64) error {
		return pool.Exit(caller, now)
	})
}

func (e *Engine) AddReward(caller, rewardToken, distributor thor.Address, duration uint64) (*Result, error) {
	return e.poolOp("addReward", func(pool *multirewards.MultiRewards, _ uint64) error {
		return pool.AddReward(caller, rewardToken, distributor, duration)
	})
}

func (e *Engine) NotifyRewardAmount(caller, rewardToken thor.Address, amount *uint256.Int) (*Result, error) {
	return e.poolOp("notifyRewardAmount", func(pool *multirewards.MultiRewards, now uint64) error {
		return pool.NotifyRewardAmount(caller, rewardToken, amount, now)
	})
}

func (e *Engine) SetRewardsDuration(caller, rewardToken thor.Address, duration uint64) (*Result, error) {
	return e.poolOp("setRewardsDuration", func(pool *multirewards.MultiRewards, now uint64) error {
		return pool.SetRewardsDuration(caller, rewardToken, duration, now)
	})
}

func (e *Engine) SetRewardsDistributor(caller, rewardToken, distributor thor.Address) (*Result, error) {
	return e.poolOp("setRewardsDistributor", func(pool *multirewards.MultiRewards, _ uint64) error {
		return pool.SetRewardsDistributor(caller, rewardToken, distributor)
	})
}

func (e *Engine) SetPaused(caller thor.Address, paused bool) (*Result, error) {
	return e.poolOp("setPaused", func(pool *multirewards.MultiRewards, _ uint64) error {
		return pool.SetPaused(caller, paused)
	})
}

// Transfer moves tokens between two accounts of the in-state ledger.
func (e *Engine) Transfer(caller, tokenAddr, to thor.Address, amount *uint256.Int) (*Result, error) {
	return e.execute("transfer", func(st *state.State, journal *events.Buffer, _ uint64) error {
		if amount == nil || amount.IsZero() {
			return reverts.ErrInvalidAmount.Reason("zero transfer")
		}
		// vault balances only move through pool operations
		if caller == e.pool {
			return reverts.ErrUnauthorized.Reason("pool vault cannot transfer")
		}
		return token.New(tokenAddr, st, journal).Transfer(caller, to, amount)
	})
}

// View runs a read-only query against the committed state at the current time.
func (e *Engine) View(fn func(pool *multirewards.MultiRewards, now uint64) error) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return fn(e.newPool(e.stater.NewState(), events.NewBuffer()), e.now())
}

// TokenBalance returns the ledger balance of an account.
func (e *Engine) TokenBalance(tokenAddr, account thor.Address) (*uint256.Int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return token.New(tokenAddr, e.stater.NewState(), events.NewBuffer()).BalanceOf(account)
}

// SubscribeEvents delivers the events of every committed operation to ch.
// Slow receivers stall the engine, so ch should be drained promptly.
func (e *Engine) SubscribeEvents(ch chan<- []*logdb.Event) event.Subscription {
	return e.scope.Track(e.feed.Subscribe(ch))
}

// Close ends all subscriptions.
func (e *Engine) Close() {
	e.scope.Close()
}
