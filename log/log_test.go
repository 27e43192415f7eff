// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(JSONHandler(&buf)).With("pkg", "test")
	l.Info("staked", "amount", 10)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "staked", rec["msg"])
	assert.Equal(t, "test", rec["pkg"])
	assert.Equal(t, float64(10), rec["amount"])
}

func TestTerminalHandlerLevel(t *testing.T) {
	var (
		buf bytes.Buffer
		lvl slog.LevelVar
	)
	lvl.Set(FromLegacyLevel(3))
	l := NewLogger(NewTerminalHandlerWithLevel(&buf, &lvl, false)).With("pkg", "test")

	l.Debug("hidden")
	assert.Zero(t, buf.Len())

	l.Info("shown", "k", "v")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=v")

	buf.Reset()
	lvl.Set(LevelDebug)
	l.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")

	buf.Reset()
	lvl.Set(LevelError)
	l.Warn("hidden again")
	assert.Zero(t, buf.Len())
}

func TestJSONHandlerWithLevel(t *testing.T) {
	var (
		buf bytes.Buffer
		lvl slog.LevelVar
	)
	lvl.Set(LevelWarn)
	l := NewLogger(JSONHandlerWithLevel(&buf, &lvl))

	l.Info("hidden")
	assert.Zero(t, buf.Len())

	lvl.Set(LevelInfo)
	l.Info("reward paid", "amount", uint256.NewInt(1500))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "reward paid", rec["msg"])
	assert.Equal(t, "info", rec["lvl"])
	assert.Equal(t, "1500", rec["amount"])
	assert.Contains(t, rec, "t")
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelDebug, FromLegacyLevel(4))
	assert.Equal(t, LevelError, FromLegacyLevel(1))
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing")
}

func TestSetHandler(t *testing.T) {
	pkgLogger := WithContext("pkg", "early")

	var buf bytes.Buffer
	SetHandler(JSONHandler(&buf))
	defer SetHandler(slog.DiscardHandler)

	pkgLogger.Warn("after swap", "n", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "after swap", rec["msg"])
	assert.Equal(t, "early", rec["pkg"])
}
