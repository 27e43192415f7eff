// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package enginetest builds engines over in-memory storage for tests.
package enginetest

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/multirewards/engine"
	"github.com/vechain/multirewards/genesis"
	"github.com/vechain/multirewards/logdb"
	"github.com/vechain/multirewards/lvldb"
)

// LaunchTime is the genesis time of test engines.
const LaunchTime = uint64(1_700_000_000)

// Harness is an engine over in-memory storage with a settable clock.
type Harness struct {
	*engine.Engine
	Genesis *genesis.Genesis
	now     atomic.Uint64
}

// New creates a devnet engine. Everything is released when the test ends.
func New(t *testing.T) *Harness {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	logDB, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { logDB.Close() })

	h := &Harness{Genesis: genesis.NewDevnet(LaunchTime)}
	h.now.Store(LaunchTime)
	eng, err := engine.New(db, logDB, h.Genesis, h.now.Load, 0)
	require.NoError(t, err)
	t.Cleanup(eng.Close)
	h.Engine = eng
	return h
}

// Advance moves the clock forward.
func (h *Harness) Advance(seconds uint64) {
	h.now.Add(seconds)
}
