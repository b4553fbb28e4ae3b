// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for Postwise:
// - API endpoint latency and throughput
// - Best-time signal provenance and analysis outcomes
// - Circuit breakers guarding outbound providers
// - Generative response cache efficiency
// - Event bus throughput
// - Warehouse query latency

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of active API requests",
		},
	)

	// Best-time Analysis Metrics
	BestTimeSignals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "besttime_signal_total",
			Help: "Total number of signals gathered, by source and provenance",
		},
		[]string{"source", "provenance"}, // provenance: "live", "model", "recorded", "fallback", "mock"
	)

	BestTimeSignalDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "besttime_signal_duration_seconds",
			Help:    "Time spent gathering a single signal",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"source"},
	)

	BestTimeAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "besttime_analyses_total",
			Help: "Total number of best-time analyses",
		},
		[]string{"result"}, // "success", "error"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Generative Cache Metrics
	GeminiCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gemini_cache_requests_total",
			Help: "Generative response cache lookups",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published",
		},
		[]string{"topic"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_consumed_total",
			Help: "Total number of events consumed",
		},
		[]string{"topic", "result"}, // result: "success", "error"
	)

	// Warehouse Metrics
	WarehouseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "warehouse_query_duration_seconds",
			Help:    "Duration of DuckDB warehouse queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	WarehouseQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warehouse_query_errors_total",
			Help: "Total number of warehouse query errors",
		},
		[]string{"operation"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordSignal records one gathered best-time signal.
func RecordSignal(source, provenance string, duration time.Duration) {
	BestTimeSignals.WithLabelValues(source, provenance).Inc()
	BestTimeSignalDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordAnalysis records the outcome of a best-time analysis.
func RecordAnalysis(failed bool) {
	if failed {
		BestTimeAnalyses.WithLabelValues("error").Inc()
		return
	}
	BestTimeAnalyses.WithLabelValues("success").Inc()
}

// RecordCacheLookup records a generative cache lookup ("hit", "miss" or "error").
func RecordCacheLookup(result string) {
	GeminiCacheRequests.WithLabelValues(result).Inc()
}

// RecordEventPublished counts a published event.
func RecordEventPublished(topic string) {
	EventsPublished.WithLabelValues(topic).Inc()
}

// RecordEventConsumed counts a consumed event.
func RecordEventConsumed(topic string, err error) {
	if err != nil {
		EventsConsumed.WithLabelValues(topic, "error").Inc()
		return
	}
	EventsConsumed.WithLabelValues(topic, "success").Inc()
}

// RecordWarehouseQuery records a warehouse query metric
func RecordWarehouseQuery(operation string, duration time.Duration, err error) {
	WarehouseQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		WarehouseQueryErrors.WithLabelValues(operation).Inc()
	}
}
