// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

/*
Package api serves the SecureCheck dashboard and its JSON API over a chi
router.

Endpoints:

	GET  /                         dashboard page (query selector, result grid, summary form)
	POST /summary                  summary form submission, rendered server-side
	GET  /api/v1/queries           catalog entries, placeholder first
	GET  /api/v1/queries/{slug}    execute one catalog query
	POST /api/v1/summary           summary lookup from a JSON body
	GET  /api/v1/health            store, snapshot and breaker status
	GET  /api/v1/health/live       liveness probe
	GET  /api/v1/health/ready      readiness probe (pings the store)
	GET  /metrics                  Prometheus scrape endpoint

Every JSON endpoint answers with a models.APIResponse envelope. A summary
lookup that matches nothing is answered with status "no_match" and HTTP 200;
it is an outcome, not an error.

Usage:

	handler := api.NewHandler(api.Deps{
	    Executor: catalog.NewExecutor(db),
	    Engine:   summary.NewEngine(snap),
	    Store:    db,
	    Snapshot: snap,
	    Version:  version,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareConfig(&cfg.Security))
	srv := &http.Server{Handler: router.Setup()}
*/
package api
