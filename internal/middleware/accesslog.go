// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/securecheck/internal/logging"
)

// DefaultSlowRequestThreshold is used when RequestLogger is given zero.
const DefaultSlowRequestThreshold = time.Second

// RequestLogger writes one structured log line per request. Requests slower
// than slow are logged at warn level, server errors at error level, and
// everything else at debug level.
//
// Place it after RequestID so the line carries the request_id field.
func RequestLogger(slow time.Duration) func(http.Handler) http.Handler {
	if slow <= 0 {
		slow = DefaultSlowRequestThreshold
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			logger := logging.Ctx(r.Context())

			event := logger.Debug()
			msg := "Request served"
			switch {
			case rec.statusCode >= http.StatusInternalServerError:
				event = logger.Error()
				msg = "Request failed"
			case duration > slow:
				event = logger.Warn()
				msg = "Slow request detected"
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", rec.statusCode).
				Int("bytes", rec.bytes).
				Dur("duration", duration).
				Msg(msg)
		})
	}
}
