// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/securecheck/internal/middleware"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router. A nil cfg uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, cfg *ChiMiddlewareConfig) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(cfg),
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)                 // X-Request-ID header and logging context
	r.Use(chimiddleware.RealIP)                 // Client IP from X-Forwarded-For / X-Real-IP
	r.Use(router.chiMiddleware.RequestLogger()) // One log line per request
	r.Use(chimiddleware.Recoverer)              // Recover from panics
	r.Use(middleware.PrometheusMetrics)         // Request count and latency by route
	r.Use(router.chiMiddleware.CORS())          // Global so OPTIONS preflight is answered

	r.NotFound(router.handler.NotFound)
	r.MethodNotAllowed(router.handler.MethodNotAllowed)

	// ========================
	// Health Endpoints
	// ========================
	// Not rate limited so probes and monitors are never throttled
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Catalog and Summary API
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.Compression)

		r.Get("/queries", router.handler.ListQueries)
		r.Get("/queries/{slug}", router.handler.ExecuteQuery)
		r.Post("/summary", router.handler.Summary)
	})

	// ========================
	// Dashboard
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(DashboardSecurityHeaders())
		r.Use(middleware.Compression)

		r.Get("/", router.handler.Dashboard)
		r.Post("/summary", router.handler.DashboardSummary)
	})

	// ========================
	// Prometheus
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
