// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package models

import (
	"time"

	"github.com/tomtom215/securecheck/internal/dataset"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusNoMatch = "no_match"
)

// Error codes.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeQueryNotFound = "QUERY_NOT_FOUND"
	CodeDataAccess    = "DATA_ACCESS_ERROR"
	CodeInternal      = "INTERNAL_ERROR"
	CodeUnavailable   = "SERVICE_UNAVAILABLE"
	CodeNotFound      = "NOT_FOUND"
	CodeMethod        = "METHOD_NOT_ALLOWED"
	CodeRateLimited   = "RATE_LIMITED"
)

// APIResponse is the envelope returned by every JSON endpoint.
//
// Status is "success", "error" or "no_match". A no_match response carries a
// Message instead of Data and is returned with HTTP 200.
//
// Example:
//
//	{
//	  "status": "success",
//	  "data": {"query": {"slug": "top-search-country", "label": "..."}, "executed": true, ...},
//	  "metadata": {"timestamp": "2026-01-02T10:00:00Z", "query_time_ms": 12, "request_id": "..."}
//	}
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data,omitempty"`
	Message  string    `json:"message,omitempty"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata accompanies every response.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is a structured error.
//
// Codes:
//   - VALIDATION_ERROR: malformed body or a form value out of range
//   - QUERY_NOT_FOUND: unknown catalog slug
//   - DATA_ACCESS_ERROR: the store failed while running a query
//   - SERVICE_UNAVAILABLE: readiness check failed or the store circuit is open
//   - NOT_FOUND, METHOD_NOT_ALLOWED: routing failures under /api
//   - RATE_LIMITED: the client exceeded the rate limit
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// QueryOption is one selector entry.
type QueryOption struct {
	Slug        string `json:"slug"`
	Label       string `json:"label"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// SummaryResponse is the payload of a matched summary lookup.
type SummaryResponse struct {
	Sentence   string                      `json:"sentence"`
	MatchCount int                         `json:"match_count"`
	Matches    []dataset.TrafficStopRecord `json:"matches"`
}

// HealthStatus reports liveness and readiness.
type HealthStatus struct {
	Status         string    `json:"status"`
	Version        string    `json:"version"`
	Driver         string    `json:"driver"`
	StoreConnected bool      `json:"store_connected"`
	RowCount       int64     `json:"row_count"`
	SnapshotRows   int       `json:"snapshot_rows"`
	BreakerState   string    `json:"breaker_state"`
	LoadedAt       time.Time `json:"loaded_at"`
	Uptime         float64   `json:"uptime_seconds"`
}
