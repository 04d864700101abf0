// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

/*
Package metrics provides Prometheus metrics for the SecureCheck service.

Metrics are registered with the default registry through promauto and exposed
at /metrics in the Prometheus text format:

	curl http://localhost:8501/metrics

# Available Metrics

Store:
  - securecheck_db_query_duration_seconds (histogram, label: operation)
  - securecheck_db_query_errors_total (counter, labels: operation, error_type)
  - securecheck_dataset_rows_loaded (gauge)
  - securecheck_dataset_load_duration_seconds (histogram)

Catalog and summary:
  - securecheck_catalog_executions_total (counter, labels: query, result)
  - securecheck_summary_requests_total (counter, label: outcome)
  - securecheck_summary_matches (histogram)

HTTP:
  - securecheck_api_requests_total (counter, labels: method, endpoint, status_code)
  - securecheck_api_request_duration_seconds (histogram, labels: method, endpoint)
  - securecheck_api_active_requests (gauge)

Circuit breaker:
  - securecheck_circuit_breaker_state (gauge, 0=closed, 1=half-open, 2=open)
  - securecheck_circuit_breaker_requests_total (counter, labels: name, result)
  - securecheck_circuit_breaker_consecutive_failures (gauge)
  - securecheck_circuit_breaker_state_transitions_total (counter)

# Usage

	start := time.Now()
	table, err := db.RunQuery(ctx, "drug_vehicles", sql)
	metrics.RecordDBQuery("drug_vehicles", time.Since(start), err)

All functions are safe for concurrent use.
*/
package metrics
