// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/lib/pq"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/securecheck/internal/config"
	"github.com/tomtom215/securecheck/internal/logging"
)

const memoryPath = ":memory:"

// DB wraps the relational store holding the traffic_stop table.
type DB struct {
	conn    *sql.DB
	cfg     *config.DatabaseConfig
	breaker *gobreaker.CircuitBreaker[*Table]
}

// New opens the configured store, applies pool settings and verifies the
// connection. A nil or disabled breaker config runs queries unprotected.
func New(cfg *config.DatabaseConfig, breakerCfg *config.BreakerConfig) (*DB, error) {
	driver, dsn, err := dataSource(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}
	db.configureConnectionPool()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to reach %s database: %w", driver, err)
	}

	if breakerCfg != nil && breakerCfg.Enabled {
		db.breaker = newBreaker(breakerCfg)
	}

	logEvent := logging.Info().Str("driver", driver)
	if cfg.IsPostgres() {
		logEvent = logEvent.Str("address", cfg.Address()).Str("database", cfg.Name)
	} else {
		logEvent = logEvent.Str("path", cfg.Path)
	}
	logEvent.Bool("circuit_breaker", db.breaker != nil).Msg("Database connected")

	return db, nil
}

// dataSource returns the driver name and connection string for cfg.
func dataSource(cfg *config.DatabaseConfig) (string, string, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return "postgres", cfg.PostgresDSN(), nil
	case config.DriverDuckDB, "":
		numThreads := cfg.Threads
		if numThreads <= 0 {
			numThreads = runtime.NumCPU()
		}
		maxMemory := cfg.MaxMemory
		if maxMemory == "" {
			maxMemory = "1GB"
		}

		// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
		if cfg.Path != memoryPath {
			if dbDir := filepath.Dir(cfg.Path); dbDir != "" && dbDir != "." {
				if err := os.MkdirAll(dbDir, 0o750); err != nil {
					return "", "", fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
				}
			}
		}

		// Auto-install/auto-load stay off so startup never reaches the network.
		dsn := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
			cfg.Path, numThreads, maxMemory)
		return "duckdb", dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func (db *DB) configureConnectionPool() {
	maxOpen := db.cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = runtime.NumCPU()
	}
	maxIdle := db.cfg.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 2
	}
	lifetime := db.cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = time.Hour
	}

	db.conn.SetMaxOpenConns(maxOpen)
	db.conn.SetMaxIdleConns(maxIdle)
	db.conn.SetConnMaxLifetime(lifetime)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Close checkpoints a file-backed DuckDB store and closes the pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	if !db.cfg.IsPostgres() && db.cfg.Path != memoryPath {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
			logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
		}
		cancel()
	}

	return db.conn.Close()
}

// Ping verifies the store is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Conn returns the underlying connection pool.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Driver returns the configured driver name.
func (db *DB) Driver() string {
	if db.cfg.Driver == "" {
		return config.DriverDuckDB
	}
	return db.cfg.Driver
}

// ensureContext applies the configured query timeout when ctx has no deadline.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := db.cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	if ctx == nil {
		return context.WithTimeout(context.Background(), timeout)
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, timeout)
	}
	return ctx, func() {}
}
