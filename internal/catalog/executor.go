// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/securecheck/internal/database"
	"github.com/tomtom215/securecheck/internal/logging"
	"github.com/tomtom215/securecheck/internal/metrics"
)

var (
	// ErrDataAccess wraps any store failure during execution.
	ErrDataAccess = errors.New("data access error")

	// ErrUnknownQuery is returned for an ID outside the enumeration.
	ErrUnknownQuery = errors.New("unknown query")
)

// Store runs read-only SQL. *database.DB satisfies it.
type Store interface {
	RunQuery(ctx context.Context, name, query string) (*database.Table, error)
}

// Result is the outcome of one execution. Executed is false only for the
// placeholder, in which case Columns and Rows are empty.
type Result struct {
	Definition Definition `json:"query"`
	Executed   bool       `json:"executed"`
	Columns    []string   `json:"columns"`
	Rows       [][]any    `json:"rows"`
}

// Executor runs catalog queries against a store.
type Executor struct {
	store Store
}

// NewExecutor creates an Executor backed by store.
func NewExecutor(store Store) *Executor {
	return &Executor{store: store}
}

// Execute runs the query identified by id. Selecting the placeholder runs
// nothing and is not an error. Store failures are returned wrapping
// ErrDataAccess and are not retried.
func (e *Executor) Execute(ctx context.Context, id QueryID) (Result, error) {
	def, ok := Lookup(id)
	if !ok {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownQuery, int(id))
	}
	if def.IsPlaceholder() {
		metrics.RecordCatalogExecution(def.Slug, false, nil)
		return Result{Definition: def, Columns: []string{}, Rows: [][]any{}}, nil
	}

	ctx = logging.ContextWithQuery(ctx, def.Slug)
	table, err := e.store.RunQuery(ctx, def.Slug, def.SQL)
	metrics.RecordCatalogExecution(def.Slug, err == nil, err)
	if err != nil {
		return Result{Definition: def}, fmt.Errorf("%w: %s: %w", ErrDataAccess, def.Slug, err)
	}

	return Result{
		Definition: def,
		Executed:   true,
		Columns:    table.Columns,
		Rows:       table.Rows,
	}, nil
}

// ExecuteSlug resolves slug and executes it.
func (e *Executor) ExecuteSlug(ctx context.Context, slug string) (Result, error) {
	def, ok := BySlug(slug)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownQuery, slug)
	}
	return e.Execute(ctx, def.ID)
}

// ExecuteLabel resolves a selector label and executes it.
func (e *Executor) ExecuteLabel(ctx context.Context, label string) (Result, error) {
	def, ok := ByLabel(label)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownQuery, label)
	}
	return e.Execute(ctx, def.ID)
}
