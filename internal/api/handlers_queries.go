// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/securecheck/internal/catalog"
	"github.com/tomtom215/securecheck/internal/logging"
	"github.com/tomtom215/securecheck/internal/models"
)

// queryOptions returns the selector entries with the placeholder first.
func queryOptions() []models.QueryOption {
	defs := catalog.All()
	opts := make([]models.QueryOption, 0, len(defs)+1)
	opts = append(opts, models.QueryOption{
		Slug:        catalog.PlaceholderSlug,
		Label:       catalog.PlaceholderLabel,
		Placeholder: true,
	})
	for _, d := range defs {
		opts = append(opts, models.QueryOption{Slug: d.Slug, Label: d.Label})
	}
	return opts
}

// ListQueries returns the catalog in selector order.
//
// GET /api/v1/queries
func (h *Handler) ListQueries(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     queryOptions(),
		Metadata: metadataFor(r, time.Time{}),
	})
}

// ExecuteQuery runs one catalog query and returns its result grid. The
// placeholder slug answers with executed=false and an empty grid.
//
// GET /api/v1/queries/{slug}
func (h *Handler) ExecuteQuery(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	start := time.Now()

	result, err := h.executor.ExecuteSlug(r.Context(), slug)
	if err != nil {
		status, code := classifyQueryError(err)
		var logErr error
		if status >= http.StatusInternalServerError {
			logErr = err
		}
		respondError(w, r, status, &models.APIError{
			Code:    code,
			Message: queryErrorMessage(code),
			Details: map[string]any{"query": sanitizeLogValue(slug)},
		}, logErr)
		return
	}

	if result.Executed {
		logging.Ctx(r.Context()).Debug().
			Str("query", slug).
			Int("rows", len(result.Rows)).
			Msg("Query executed")
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     result,
		Metadata: metadataFor(r, start),
	})
}
