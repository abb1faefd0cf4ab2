// Package metrics holds the prometheus collectors of the yield engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BaselineCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solar_baseline_cache_hits_total",
		Help: "Baseline lookups answered from the cache",
	})

	BaselineCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "solar_baseline_cache_misses_total",
		Help: "Baseline lookups that ran the orientation search",
	})

	BaselineCacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "solar_baseline_cache_entries",
		Help: "Number of (latitude bucket, day) baselines held in memory",
	})

	SimulationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solar_simulations_total",
		Help: "Single-day simulations served",
	}, []string{"weather"})

	OptimizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "solar_optimizations_total",
		Help: "Orientation searches run",
	}, []string{"kind"})

	AggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "solar_aggregation_duration_seconds",
		Help:    "Time spent aggregating a year of simulated days",
		Buckets: prometheus.DefBuckets,
	})
)
