// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

/*
Package middleware provides the HTTP middleware shared by every SecureCheck
route.

Components:

  - RequestID: UUID request tracking, propagated to logging.Ctx
  - RequestLogger: one structured line per request, warn on slow requests
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - Compression: gzip for clients that accept it

All middleware use the func(http.Handler) http.Handler shape so they can be
passed straight to chi's Router.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(time.Second))
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

PrometheusMetrics and RequestLogger read the route pattern after the inner
handler returns, so they must be registered on the chi router itself rather
than wrapped around it.
*/
package middleware
