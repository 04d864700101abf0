// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/securecheck/internal/metrics"
)

// flakyStore answers or fails depending on its current setting.
type flakyStore struct {
	mu    sync.Mutex
	err   error
	rows  int64
	pings int
}

func (s *flakyStore) set(err error, rows int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err, s.rows = err, rows
}

func (s *flakyStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pings++
	return s.err
}

func (s *flakyStore) CountRows(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows, s.err
}

func (s *flakyStore) pingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pings
}

// The dataset gauge is process-global, so these tests do not run in parallel.

func TestStoreMonitorCheckTransitions(t *testing.T) {
	store := &flakyStore{rows: 7}
	m := NewStoreMonitorService(store, time.Minute)
	ctx := context.Background()

	if !m.check(ctx) {
		t.Fatal("first check should succeed")
	}
	if got := testutil.ToFloat64(metrics.DatasetRowsLoaded); got != 7 {
		t.Errorf("rows gauge = %v, want 7", got)
	}

	store.set(errors.New("connection refused"), 0)
	if m.check(ctx) {
		t.Error("check should fail while the store is down")
	}
	if got := testutil.ToFloat64(metrics.DatasetRowsLoaded); got != 7 {
		t.Errorf("rows gauge changed on failure: %v", got)
	}

	store.set(nil, 9)
	if !m.check(ctx) {
		t.Error("check should succeed after recovery")
	}
	if got := testutil.ToFloat64(metrics.DatasetRowsLoaded); got != 9 {
		t.Errorf("rows gauge = %v, want 9", got)
	}
}

func TestStoreMonitorServeProbesUntilCanceled(t *testing.T) {
	store := &flakyStore{rows: 1}
	m := NewStoreMonitorService(store, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	if err := m.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
	if store.pingCount() < 3 {
		t.Errorf("store pinged %d times, want at least 3", store.pingCount())
	}
}

func TestNewStoreMonitorServiceDefaults(t *testing.T) {
	m := NewStoreMonitorService(&flakyStore{}, 0)
	if m.interval != DefaultMonitorInterval {
		t.Errorf("interval = %v, want %v", m.interval, DefaultMonitorInterval)
	}
	if m.String() != "store-monitor" {
		t.Errorf("String() = %q", m.String())
	}
}
