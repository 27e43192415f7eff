// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	opNum    uint32
	lastTime uint64
	err      error
}

func (f *fakeSource) Progress() (uint32, uint64) { return f.opNum, f.lastTime }
func (f *fakeSource) Check() error               { return f.err }

func TestHealth_Status(t *testing.T) {
	src := &fakeSource{opNum: 7, lastTime: 1700000100}
	h := New(src)
	checked := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return checked }

	status, err := h.Status()
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.Equal(t, &Operation{Number: 7, Time: 1700000100}, status.LastOperation)
	assert.Equal(t, checked, status.CheckedAt)
	assert.Empty(t, status.Error)
}

func TestHealth_Unhealthy(t *testing.T) {
	src := &fakeSource{err: errors.New("index events of #3: database is closed")}
	h := New(src)

	status, err := h.Status()
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.Equal(t, "index events of #3: database is closed", status.Error)

	src.err = nil
	status, err = h.Status()
	require.NoError(t, err)
	assert.True(t, status.Healthy)
}
