package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basket_cache_hits_total",
			Help: "Total number of cache reads served from a fresh value",
		},
		[]string{"cache"},
	)

	cacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basket_cache_misses_total",
			Help: "Total number of cache reads that required a load",
		},
		[]string{"cache"},
	)

	cacheLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basket_cache_load_errors_total",
			Help: "Total number of failed cache loads",
		},
		[]string{"cache"},
	)

	cacheLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "basket_cache_load_duration_seconds",
			Help:    "Duration of cache loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"cache"},
	)

	cacheBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "basket_cache_breaker_state",
			Help: "Source circuit breaker state per cache (0 closed, 1 half-open, 2 open)",
		},
		[]string{"cache"},
	)
)
