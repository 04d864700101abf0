// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/securecheck/internal/metrics"
	"github.com/tomtom215/securecheck/internal/models"
	"github.com/tomtom215/securecheck/internal/summary"
)

// NoMatchMessage is shown when a summary lookup matches nothing.
const NoMatchMessage = "No entries match your filters.."

// lookupSummary validates, normalizes and runs one summary lookup. The
// returned APIError is non-nil only for invalid input; a lookup that matches
// nothing returns summary.ErrNoMatch.
func (h *Handler) lookupSummary(in *summary.Input) (summary.Result, *models.APIError, error) {
	if apiErr := validateRequest(in); apiErr != nil {
		metrics.RecordSummary("invalid", 0)
		return summary.Result{}, apiErr, nil
	}

	criteria, err := summary.Normalize(*in)
	if err != nil {
		metrics.RecordSummary("invalid", 0)
		return summary.Result{}, &models.APIError{
			Code:    models.CodeValidation,
			Message: err.Error(),
		}, nil
	}

	result, err := h.engine.Generate(criteria)
	return result, nil, err
}

// Summary matches the eight form values against the snapshot and describes
// the first matching stop.
//
// POST /api/v1/summary
//
//	{"driver_age": 27, "driver_gender": "Male", "violation": "Speeding",
//	 "stop_time": "10:15 PM", "search_conducted": "No", "stop_outcome": "Ticket",
//	 "stop_duration": "0-15", "drugs_related_stop": "No"}
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var in summary.Input
	if apiErr := decodeJSONBody(w, r, &in); apiErr != nil {
		metrics.RecordSummary("invalid", 0)
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	result, apiErr, err := h.lookupSummary(&in)
	switch {
	case apiErr != nil:
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	case errors.Is(err, summary.ErrNoMatch):
		respondJSON(w, http.StatusOK, &models.APIResponse{
			Status:   models.StatusNoMatch,
			Message:  NoMatchMessage,
			Metadata: metadataFor(r, start),
		})
		return
	case err != nil:
		respondError(w, r, http.StatusInternalServerError, &models.APIError{
			Code:    models.CodeInternal,
			Message: "Failed to generate summary",
		}, err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: models.StatusSuccess,
		Data: models.SummaryResponse{
			Sentence:   result.Sentence,
			MatchCount: len(result.Matches),
			Matches:    result.Matches,
		},
		Metadata: metadataFor(r, start),
	})
}
