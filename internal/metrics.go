package internal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commissionsCalculated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commissions_calculated_total",
		Help: "Commissions calculated, partitioned by EU classification.",
	}, []string{"eu"})

	binLookupDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bin_lookup_degraded_total",
		Help: "BIN lookups that failed and fell back to the default country.",
	})

	rateLookupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rate_lookup_failures_total",
		Help: "Currency rate lookups that failed and aborted the calculation.",
	})

	lookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lookup_duration_seconds",
		Help:    "Duration of calls to the external lookup providers.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})
)
