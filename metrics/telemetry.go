// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is a facade over the metrics backend. Meters are no-ops until
// InitializePrometheusMetrics is called.
package metrics

import (
	"net/http"
	"sync"
)

var metrics = defaultNoopMetrics()

type Metrics interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateGaugeVecMeter(name string, labels []string) GaugeVecMeter
	GetOrCreateHistogramMeter(name string, buckets []int64) HistogramMeter
	GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter
	GetOrCreateHandler() http.Handler
}

// HTTPHandler serves the collected metrics.
func HTTPHandler() http.Handler {
	return metrics.GetOrCreateHandler()
}

var (
	// BucketMillis suits request durations in milliseconds.
	BucketMillis = []int64{0, 500, 1000, 2000, 3000, 4000, 5000, 7500, 10_000}
	// BucketOps suits pool operation latency in microseconds.
	BucketOps = []int64{0, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10_000, 50_000}
)

type HistogramMeter interface {
	Observe(int64)
}

type HistogramVecMeter interface {
	ObserveWithLabels(int64, map[string]string)
}

type CountMeter interface {
	Add(int64)
}

type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

type GaugeMeter interface {
	Add(int64)
	Set(int64)
}

type GaugeVecMeter interface {
	AddWithLabel(int64, map[string]string)
	SetWithLabel(int64, map[string]string)
}

func Histogram(name string, buckets []int64) HistogramMeter {
	return metrics.GetOrCreateHistogramMeter(name, buckets)
}

func Counter(name string) CountMeter { return metrics.GetOrCreateCountMeter(name) }

// LazyLoad defers creating a meter until first use, so package level meters
// bind to whichever backend is installed by then.
func LazyLoad[T any](f func() T) func() T {
	return sync.OnceValue(f)
}

func LazyLoadHistogramVec(name string, labels []string, buckets []int64) func() HistogramVecMeter {
	return LazyLoad(func() HistogramVecMeter { return metrics.GetOrCreateHistogramVecMeter(name, labels, buckets) })
}

func LazyLoadCounter(name string) func() CountMeter {
	return LazyLoad(func() CountMeter { return metrics.GetOrCreateCountMeter(name) })
}

func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return LazyLoad(func() CountVecMeter { return metrics.GetOrCreateCountVecMeter(name, labels) })
}

func LazyLoadGauge(name string) func() GaugeMeter {
	return LazyLoad(func() GaugeMeter { return metrics.GetOrCreateGaugeMeter(name) })
}

func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	return LazyLoad(func() GaugeVecMeter { return metrics.GetOrCreateGaugeVecMeter(name, labels) })
}

// NoOp reports whether metrics collection is disabled.
func NoOp() bool {
	_, ok := metrics.(*noopMetrics)
	return ok
}
