// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/securecheck/internal/database"
	"github.com/tomtom215/securecheck/internal/logging"
)

type fakeStore struct {
	calls []string
	query string
	table *database.Table
	err   error
	slug  string
}

func (f *fakeStore) RunQuery(ctx context.Context, name, query string) (*database.Table, error) {
	f.calls = append(f.calls, name)
	f.query = query
	f.slug = logging.QueryFromContext(ctx)
	return f.table, f.err
}

func TestExecutePlaceholderIsNoOp(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	res, err := NewExecutor(store).Execute(context.Background(), Placeholder)
	if err != nil {
		t.Fatalf("Execute(Placeholder) error = %v", err)
	}
	if res.Executed {
		t.Error("placeholder must not report Executed")
	}
	if len(store.calls) != 0 {
		t.Errorf("store called %d times, want 0", len(store.calls))
	}
	if res.Rows == nil || res.Columns == nil {
		t.Error("placeholder result should carry empty, non-nil slices")
	}
}

func TestExecuteRunsDefinitionSQL(t *testing.T) {
	t.Parallel()

	store := &fakeStore{table: &database.Table{
		Columns: []string{"country_name", "search_count"},
		Rows:    [][]any{{"India", int64(2)}},
	}}
	res, err := NewExecutor(store).Execute(context.Background(), TopSearchCountry)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	def, _ := Lookup(TopSearchCountry)
	if store.query != def.SQL {
		t.Error("store received different SQL than the definition")
	}
	if store.slug != def.Slug {
		t.Errorf("context query = %q, want %q", store.slug, def.Slug)
	}
	if !res.Executed || len(res.Rows) != 1 || res.Columns[1] != "search_count" {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Definition.ID != TopSearchCountry {
		t.Errorf("Definition.ID = %d", res.Definition.ID)
	}
}

func TestExecuteWrapsStoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")
	store := &fakeStore{err: storeErr}

	_, err := NewExecutor(store).Execute(context.Background(), DrugRelatedVehicles)
	if !errors.Is(err, ErrDataAccess) {
		t.Fatalf("expected ErrDataAccess, got %v", err)
	}
	if !errors.Is(err, storeErr) {
		t.Errorf("expected underlying error to be preserved, got %v", err)
	}
	if len(store.calls) != 1 {
		t.Errorf("store called %d times, want exactly 1 (no retry)", len(store.calls))
	}
}

func TestExecuteUnknown(t *testing.T) {
	t.Parallel()

	exec := NewExecutor(&fakeStore{})
	if _, err := exec.Execute(context.Background(), QueryID(500)); !errors.Is(err, ErrUnknownQuery) {
		t.Errorf("Execute(500) error = %v, want ErrUnknownQuery", err)
	}
	if _, err := exec.ExecuteSlug(context.Background(), "missing"); !errors.Is(err, ErrUnknownQuery) {
		t.Errorf("ExecuteSlug(missing) error = %v, want ErrUnknownQuery", err)
	}
	if _, err := exec.ExecuteLabel(context.Background(), "missing"); !errors.Is(err, ErrUnknownQuery) {
		t.Errorf("ExecuteLabel(missing) error = %v, want ErrUnknownQuery", err)
	}
}

func TestExecuteByLabelAndSlug(t *testing.T) {
	t.Parallel()

	store := &fakeStore{table: &database.Table{Columns: []string{}, Rows: [][]any{}}}
	exec := NewExecutor(store)

	res, err := exec.ExecuteLabel(context.Background(), PlaceholderLabel)
	if err != nil || res.Executed {
		t.Errorf("ExecuteLabel(placeholder) = %+v, %v", res, err)
	}
	res, err = exec.ExecuteSlug(context.Background(), "stops-by-period")
	if err != nil || !res.Executed {
		t.Errorf("ExecuteSlug(stops-by-period) = %+v, %v", res, err)
	}
	if len(store.calls) != 1 {
		t.Errorf("store calls = %d, want 1", len(store.calls))
	}
}
