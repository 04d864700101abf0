// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package services

import (
	"context"
	"time"

	"github.com/tomtom215/securecheck/internal/logging"
	"github.com/tomtom215/securecheck/internal/metrics"
)

// DefaultMonitorInterval is used when NewStoreMonitorService gets zero.
const DefaultMonitorInterval = 30 * time.Second

// monitorCheckTimeout bounds a single probe.
const monitorCheckTimeout = 5 * time.Second

// MonitoredStore is the part of the store the monitor probes.
// *database.DB satisfies it.
type MonitoredStore interface {
	Ping(ctx context.Context) error
	CountRows(ctx context.Context) (int64, error)
}

// StoreMonitorService probes the store on an interval. It logs when the
// store becomes unreachable and when it recovers, and keeps the
// securecheck_dataset_rows_loaded gauge in step with the table.
//
// Probe failures are logged, never returned; the monitor only stops when its
// context is canceled.
type StoreMonitorService struct {
	store    MonitoredStore
	interval time.Duration
	name     string

	healthy bool
	checked bool
}

// NewStoreMonitorService creates a monitor for store.
func NewStoreMonitorService(store MonitoredStore, interval time.Duration) *StoreMonitorService {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	return &StoreMonitorService{
		store:    store,
		interval: interval,
		name:     "store-monitor",
	}
}

// Serve implements suture.Service.
func (m *StoreMonitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// check runs one probe and reports whether the store answered.
func (m *StoreMonitorService) check(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, monitorCheckTimeout)
	defer cancel()

	rows, err := m.probe(probeCtx)
	if ctx.Err() != nil {
		return m.healthy
	}

	healthy := err == nil
	switch {
	case !healthy && (m.healthy || !m.checked):
		logging.Warn().Err(err).Msg("Store unreachable")
	case healthy && !m.healthy && m.checked:
		logging.Info().Int64("rows", rows).Msg("Store reachable again")
	}
	if healthy {
		metrics.DatasetRowsLoaded.Set(float64(rows))
	}

	m.healthy = healthy
	m.checked = true
	return healthy
}

func (m *StoreMonitorService) probe(ctx context.Context) (int64, error) {
	if err := m.store.Ping(ctx); err != nil {
		return 0, err
	}
	return m.store.CountRows(ctx)
}

// String implements fmt.Stringer for supervisor logs.
func (m *StoreMonitorService) String() string {
	return m.name
}
