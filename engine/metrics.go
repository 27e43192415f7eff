// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package engine

import (
	"github.com/holiman/uint256"

	"github.com/vechain/multirewards/builtin/reverts"
	"github.com/vechain/multirewards/metrics"
	"github.com/vechain/multirewards/thor"
)

var (
	metricOpCount     = metrics.LazyLoadCounterVec("engine_operation_count", []string{"op", "outcome"})
	metricOpDuration  = metrics.LazyLoadHistogramVec("engine_operation_duration_us", []string{"op"}, metrics.BucketOps)
	metricTotalStaked = metrics.LazyLoadGauge("engine_total_staked_units")
	metricOpNumber    = metrics.LazyLoadGauge("engine_operation_number")
)

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case reverts.IsRevertErr(err):
		return "revert"
	default:
		return "error"
	}
}

// wholeUnits converts a wei scaled amount to whole units for gauges.
func wholeUnits(v *uint256.Int) int64 {
	units := new(uint256.Int).Div(v, thor.Ether)
	if !units.IsUint64() || units.Uint64() > 1<<62 {
		return 1 << 62
	}
	return int64(units.Uint64())
}
