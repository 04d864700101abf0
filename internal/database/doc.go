// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

/*
Package database owns the relational store behind the query catalog.

Two backends share one code path through database/sql: an embedded DuckDB
file (the default) and PostgreSQL via lib/pq. Statements use $n placeholders
and portable SQL so the same text runs on both.

# Lifecycle

At startup the store is opened with New and, unless disabled, the
traffic_stop table is rebuilt from the dataset snapshot:

	db, err := database.New(&cfg.Database, &cfg.Breaker)
	stats, err := db.ResetAndLoad(ctx, snap)

ResetAndLoad drops and recreates the table inside a single transaction and
inserts rows in batches of InsertBatchSize. It is destructive and assumes a
single writer.

# Queries

RunQuery executes read-only SQL and returns a Table whose values are
normalized across drivers (DuckDB HUGEINT and DECIMAL, PostgreSQL NUMERIC
text). When the breaker is enabled, consecutive store failures open the
circuit and later calls fail fast with gobreaker.ErrOpenState until the
breaker timeout elapses. Failures are never retried.
*/
package database
