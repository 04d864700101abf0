// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package api

import (
	"context"
	"html/template"
	"time"

	"github.com/tomtom215/securecheck/internal/catalog"
	"github.com/tomtom215/securecheck/internal/dataset"
	"github.com/tomtom215/securecheck/internal/summary"
)

// StoreStatus is the slice of the store the health endpoints need.
// *database.DB satisfies it.
type StoreStatus interface {
	Ping(ctx context.Context) error
	CountRows(ctx context.Context) (int64, error)
	Driver() string
	BreakerState() string
}

// Deps are the collaborators a Handler serves from.
type Deps struct {
	Executor *catalog.Executor
	Engine   *summary.Engine
	Store    StoreStatus
	Snapshot *dataset.Snapshot
	Version  string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: JSON envelope and request helpers
//   - handlers_queries.go: catalog listing and execution
//   - handlers_summary.go: summary lookups
//   - handlers_health.go: health, liveness and readiness
//   - handlers_dashboard.go: server-rendered dashboard page
type Handler struct {
	executor  *catalog.Executor
	engine    *summary.Engine
	store     StoreStatus
	snapshot  *dataset.Snapshot
	version   string
	startTime time.Time
	page      *template.Template
}

// NewHandler creates a Handler. Version defaults to "dev".
func NewHandler(deps Deps) *Handler {
	version := deps.Version
	if version == "" {
		version = "dev"
	}

	return &Handler{
		executor:  deps.Executor,
		engine:    deps.Engine,
		store:     deps.Store,
		snapshot:  deps.Snapshot,
		version:   version,
		startTime: time.Now(),
		page:      dashboardTemplate,
	}
}
