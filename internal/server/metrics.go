// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the Prometheus instruments for serve mode. Each server owns
// its registry so tests never trip duplicate registration.
type metrics struct {
	registry       *prometheus.Registry
	requests       *prometheus.CounterVec
	searchDuration prometheus.Histogram
	indexedEntries prometheus.Gauge
}

func newMetrics(namespace string) *metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	searchDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Fuzzy search latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	indexedEntries := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "indexed_entries",
			Help:      "Number of entries in the current index",
		},
	)

	registry.MustRegister(requests, searchDuration, indexedEntries)

	return &metrics{
		registry:       registry,
		requests:       requests,
		searchDuration: searchDuration,
		indexedEntries: indexedEntries,
	}
}

func (m *metrics) observeSearch(d time.Duration) {
	m.searchDuration.Observe(d.Seconds())
}

func (m *metrics) setIndexedEntries(n int) {
	m.indexedEntries.Set(float64(n))
}
