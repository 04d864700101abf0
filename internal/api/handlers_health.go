// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/securecheck/internal/models"
)

// Health status values.
const (
	healthHealthy  = "healthy"
	healthDegraded = "degraded"
)

// readinessTimeout bounds the store round trips of a health check.
const readinessTimeout = 5 * time.Second

// storeStatus pings the store and counts the loaded rows.
func (h *Handler) storeStatus(ctx context.Context) (connected bool, rows int64, err error) {
	if h.store == nil {
		return false, 0, errMissingStore
	}

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return false, 0, err
	}
	rows, err = h.store.CountRows(ctx)
	if err != nil {
		return true, 0, err
	}
	return true, rows, nil
}

// Health handles health check requests
//
// GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	connected, rows, err := h.storeStatus(r.Context())

	health := models.HealthStatus{
		Status:         healthHealthy,
		Version:        h.version,
		StoreConnected: connected,
		RowCount:       rows,
		BreakerState:   "disabled",
		Uptime:         time.Since(h.startTime).Seconds(),
	}
	if err != nil {
		health.Status = healthDegraded
	}
	if h.store != nil {
		health.Driver = h.store.Driver()
		health.BreakerState = h.store.BreakerState()
	}
	if h.snapshot != nil {
		health.SnapshotRows = h.snapshot.Len()
		health.LoadedAt = h.snapshot.LoadedAt()
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     health,
		Metadata: metadataFor(r, time.Time{}),
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
//
// GET /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: map[string]any{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: metadataFor(r, time.Time{}),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only when the store answers and the table is readable.
//
// GET /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	connected, rows, err := h.storeStatus(r.Context())
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, &models.APIError{
			Code:    models.CodeUnavailable,
			Message: "Service not ready",
			Details: map[string]any{"store_connected": connected},
		}, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: map[string]any{
			"ready":     true,
			"row_count": rows,
		},
		Metadata: metadataFor(r, time.Time{}),
	})
}
