// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"strings"

	"github.com/vechain/multirewards/metrics"
)

var (
	metricCriteriaLengthBucket = metrics.LazyLoadHistogramVec("logdb_criteria_length_bucket", []string{"type"}, []int64{0, 2, 5, 10, 25, 100, 1000})
	metricEventQueryParameters = metrics.LazyLoadCounterVec("logdb_query_parameters", []string{"parameters"})
	metricQueryOrderCounter    = metrics.LazyLoadCounterVec("logdb_query_order", []string{"order", "type"})
	metricOffsetBucket         = metrics.LazyLoadHistogramVec("logdb_query_offset_bucket", []string{"type"}, []int64{
		0, 1_000, 5_000, 10_000, 25_000, 50_000, 100_000, 250_000, 500_000, 1_000_000,
	})
	metricLimitBucket = metrics.LazyLoadHistogramVec("logdb_query_limit_bucket", []string{"type"}, []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleEventsFilter(filter *EventFilter) {
	if metrics.NoOp() {
		return
	}

	metricsHandleCommon(filter.Options, filter.Order, len(filter.CriteriaSet), "event")

	for _, c := range filter.CriteriaSet {
		paramsUsed := make([]string, 0)
		if c.Address != nil {
			paramsUsed = append(paramsUsed, "address")
		}
		if c.Name != nil {
			paramsUsed = append(paramsUsed, "name")
		}
		if c.Account != nil {
			paramsUsed = append(paramsUsed, "account")
		}
		if c.Token != nil {
			paramsUsed = append(paramsUsed, "token")
		}
		metricEventQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(paramsUsed, ",")})
	}
}

func metricsHandleCommon(options *Options, order Order, criteriaLen int, queryType string) {
	metricCriteriaLengthBucket().ObserveWithLabels(int64(criteriaLen), map[string]string{"type": queryType})

	if order == DESC {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "desc", "type": queryType})
	} else {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "asc", "type": queryType})
	}

	if options == nil {
		return
	}
	offset := min(options.Offset, 1_000_001)
	metricOffsetBucket().ObserveWithLabels(int64(offset), map[string]string{"type": queryType})

	limit := min(options.Limit, 1001)
	metricLimitBucket().ObserveWithLabels(int64(limit), map[string]string{"type": queryType})
}
