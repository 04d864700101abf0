// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package api

import (
	"errors"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/tomtom215/securecheck/internal/catalog"
	"github.com/tomtom215/securecheck/internal/models"
)

// errMissingStore is returned by readiness checks when the handler was built
// without a store.
var errMissingStore = errors.New("store not configured")

// classifyQueryError maps a catalog execution error onto an HTTP status and
// API error code.
func classifyQueryError(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrUnknownQuery):
		return http.StatusNotFound, models.CodeQueryNotFound
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable, models.CodeUnavailable
	case errors.Is(err, catalog.ErrDataAccess):
		return http.StatusInternalServerError, models.CodeDataAccess
	default:
		return http.StatusInternalServerError, models.CodeInternal
	}
}

// queryErrorMessage is the client-facing text for a failed execution. Store
// error text stays in the logs.
func queryErrorMessage(code string) string {
	switch code {
	case models.CodeQueryNotFound:
		return "Query not found"
	case models.CodeUnavailable:
		return "Data store temporarily unavailable"
	case models.CodeDataAccess:
		return "Failed to run query"
	default:
		return "Internal server error"
	}
}
