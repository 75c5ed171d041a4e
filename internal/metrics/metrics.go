// Ludographus - Game Telemetry Analytics and Genre Benchmarking
// Copyright 2026 Ludographus Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ludographus/ludographus

// Package metrics provides Prometheus instrumentation for the collection
// pipeline: upstream API calls, cache efficiency, persistence volume, and
// benchmark computation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream API metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "steam_api_request_duration_seconds",
			Help:    "Duration of Steam API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	APIRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steam_api_request_errors_total",
			Help: "Total number of failed Steam API requests",
		},
		[]string{"operation", "reason"}, // reason: "transport", "status", "rate_limit", "decode"
	)

	APIRateLimitRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "steam_api_rate_limit_retries_total",
			Help: "Total number of HTTP 429 cooldown retries",
		},
	)

	// Circuit breaker metrics
	BreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "steam_api_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	BreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steam_api_breaker_requests_total",
			Help: "Circuit breaker request outcomes",
		},
		[]string{"outcome"}, // "success", "failure", "rejected"
	)

	// Response cache metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "detail_cache_hits_total",
			Help: "Total number of detail cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "detail_cache_misses_total",
			Help: "Total number of detail cache misses",
		},
	)

	// Persistence metrics
	SnapshotsPersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "snapshots_persisted_total",
			Help: "Total number of game snapshots upserted",
		},
	)

	ExtendedDetailErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extended_detail_errors_total",
			Help: "Total number of per-category extended detail persistence failures",
		},
		[]string{"category"},
	)

	// Collection run metrics
	CollectionRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "collection_runs_total",
			Help: "Total number of collection runs",
		},
		[]string{"result"}, // "success", "failure", "cancelled"
	)

	CollectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collection_run_duration_seconds",
			Help:    "Duration of a full collection run in seconds",
			Buckets: []float64{1, 5, 15, 60, 120, 300, 600, 1800, 3600},
		},
	)

	EntitiesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entities_skipped_total",
			Help: "Total number of entities skipped due to per-entity failures",
		},
		[]string{"stage"},
	)

	// Benchmark metrics
	BenchmarksComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genre_benchmarks_computed_total",
			Help: "Total number of genre benchmark rows written",
		},
	)

	BenchmarkWriteErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "genre_benchmark_write_errors_total",
			Help: "Total number of per-genre benchmark write failures",
		},
	)

	// HTTP API metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route", "status"},
	)
)
