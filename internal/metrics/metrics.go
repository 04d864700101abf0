// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package metrics

import (
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	gobreaker "github.com/sony/gobreaker/v2"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "securecheck_db_query_duration_seconds",
			Help:    "Duration of store queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securecheck_db_query_errors_total",
			Help: "Total number of failed store queries",
		},
		[]string{"operation", "error_type"},
	)

	DatasetRowsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "securecheck_dataset_rows_loaded",
			Help: "Number of traffic stop rows written by the last reset-and-load",
		},
	)

	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "securecheck_dataset_load_duration_seconds",
			Help:    "Duration of reset-and-load in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	// Catalog and summary metrics
	CatalogExecutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securecheck_catalog_executions_total",
			Help: "Total number of catalog query executions",
		},
		[]string{"query", "result"}, // result: "success", "error", "skipped"
	)

	SummaryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securecheck_summary_requests_total",
			Help: "Total number of summary lookups",
		},
		[]string{"outcome"}, // outcome: "match", "no_match", "invalid"
	)

	SummaryMatches = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "securecheck_summary_matches",
			Help:    "Number of rows matched per summary lookup",
			Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 500, 1000},
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securecheck_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "securecheck_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "securecheck_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "securecheck_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securecheck_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "securecheck_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "securecheck_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordDBQuery records a store query metric
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, classifyError(err)).Inc()
	}
}

// RecordDatasetLoad records the outcome of a reset-and-load.
func RecordDatasetLoad(rows int, duration time.Duration) {
	DatasetRowsLoaded.Set(float64(rows))
	DatasetLoadDuration.Observe(duration.Seconds())
}

// RecordCatalogExecution records one catalog execution. A query that was not
// run (the placeholder) is recorded as "skipped".
func RecordCatalogExecution(query string, executed bool, err error) {
	result := "success"
	switch {
	case err != nil:
		result = "error"
	case !executed:
		result = "skipped"
	}
	CatalogExecutions.WithLabelValues(query, result).Inc()
}

// RecordSummary records one summary lookup.
func RecordSummary(outcome string, matches int) {
	SummaryRequests.WithLabelValues(outcome).Inc()
	if outcome != "invalid" {
		SummaryMatches.Observe(float64(matches))
	}
}

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

// BreakerStateValue maps a breaker state to the gauge encoding.
func BreakerStateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// RecordBreakerTransition updates the breaker gauges on a state change.
func RecordBreakerTransition(name string, from, to gobreaker.State) {
	CircuitBreakerState.WithLabelValues(name).Set(BreakerStateValue(to))
	CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
	if to == gobreaker.StateClosed {
		CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
	}
}

// RecordBreakerResult counts one call through the breaker.
func RecordBreakerResult(name string, err error, consecutiveFailures uint32) {
	switch {
	case err == nil:
		CircuitBreakerRequests.WithLabelValues(name, "success").Inc()
		CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		CircuitBreakerRequests.WithLabelValues(name, "rejected").Inc()
	default:
		CircuitBreakerRequests.WithLabelValues(name, "failure").Inc()
		CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(float64(consecutiveFailures))
	}
}

// classifyError buckets an error into a low-cardinality label.
func classifyError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "context canceled"):
		return "timeout"
	case strings.Contains(msg, "circuit breaker"):
		return "circuit_open"
	case strings.Contains(msg, "connection"), strings.Contains(msg, "connect"):
		return "connection"
	case strings.Contains(msg, "syntax"), strings.Contains(msg, "parser"):
		return "syntax"
	default:
		return "other"
	}
}
