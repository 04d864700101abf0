// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package database

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	duckdb "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/securecheck/internal/logging"
	"github.com/tomtom215/securecheck/internal/metrics"
)

// Table is a query result: ordered column names and rows of normalized values.
//
// Values are nil, bool, int64, float64, string or time.Time regardless of
// the driver that produced them.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// RunQuery executes a read-only statement and returns the full result.
// name labels metrics and logs. When the circuit breaker is open the call
// fails immediately without reaching the store.
func (db *DB) RunQuery(ctx context.Context, name, query string) (*Table, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	start := time.Now()
	var (
		table *Table
		err   error
	)
	if db.breaker != nil {
		table, err = db.breaker.Execute(func() (*Table, error) {
			return db.runQuery(ctx, query)
		})
		metrics.RecordBreakerResult(breakerName, err, db.breaker.Counts().ConsecutiveFailures)
	} else {
		table, err = db.runQuery(ctx, query)
	}
	duration := time.Since(start)
	metrics.RecordDBQuery(name, duration, err)

	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("operation", name).Dur("duration", duration).Msg("Query failed")
		return nil, fmt.Errorf("query %s: %w", name, err)
	}

	logging.Ctx(ctx).Debug().
		Str("operation", name).
		Int("rows", len(table.Rows)).
		Dur("duration", duration).
		Msg("Query executed")
	return table, nil
}

func (db *DB) runQuery(ctx context.Context, query string) (*Table, error) {
	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("read column types: %w", err)
	}
	dbTypes := make([]string, len(types))
	for i, ct := range types {
		dbTypes[i] = strings.ToUpper(ct.DatabaseTypeName())
	}

	table := &Table{Columns: columns, Rows: make([][]any, 0, 16)}
	for rows.Next() {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range raw {
			raw[i] = normalizeValue(v, dbTypes[i])
		}
		table.Rows = append(table.Rows, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return table, nil
}

// normalizeValue maps driver-specific scan results onto the Table value set.
func normalizeValue(v any, dbType string) any {
	switch val := v.(type) {
	case nil, bool, int64, float64, string, time.Time:
		return val
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		if val > 1<<63-1 {
			return float64(val)
		}
		return int64(val)
	case float32:
		return float64(val)
	case *big.Int:
		// DuckDB HUGEINT, produced by SUM over integers.
		if val == nil {
			return nil
		}
		if val.IsInt64() {
			return val.Int64()
		}
		f, _ := new(big.Float).SetInt(val).Float64()
		return f
	case duckdb.Decimal:
		return val.Float64()
	case []byte:
		// lib/pq returns NUMERIC as text.
		if dbType == "NUMERIC" || dbType == "DECIMAL" {
			return parseNumeric(string(val))
		}
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

func parseNumeric(s string) any {
	if !strings.ContainsAny(s, ".eE") {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
