// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/securecheck/internal/dataset"
	"github.com/tomtom215/securecheck/internal/logging"
	"github.com/tomtom215/securecheck/internal/metrics"
)

const defaultInsertBatchSize = 500

// LoadStats describes one reset-and-load run.
type LoadStats struct {
	Total     int       `json:"total"`
	Inserted  int       `json:"inserted"`
	Batches   int       `json:"batches"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// Duration returns how long the load took.
func (s LoadStats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

type column struct {
	name    string
	sqlType string
}

// schema lists the table columns after row_id, in dataset.Columns order.
var schema = []column{
	{dataset.ColVehicleNumber, "VARCHAR"},
	{dataset.ColViolationRaw, "VARCHAR"},
	{dataset.ColSearchConducted, "BOOLEAN"},
	{dataset.ColIsArrested, "BOOLEAN"},
	{dataset.ColDriverAgeRaw, "BIGINT"},
	{dataset.ColDriverGender, "VARCHAR"},
	{dataset.ColDriverRace, "VARCHAR"},
	{dataset.ColCountryName, "VARCHAR"},
	{dataset.ColStopDateTime, "TIMESTAMP"},
	{dataset.ColStopDate, "DATE"},
	{dataset.ColStopTime12hr, "VARCHAR"},
	{dataset.ColStopDuration, "VARCHAR"},
	{dataset.ColDrugsRelatedStop, "BOOLEAN"},
	{dataset.ColStopOutcome, "VARCHAR"},
}

func createTableSQL() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(dataset.TableName)
	b.WriteString(" (\n\trow_id BIGINT PRIMARY KEY")
	for _, c := range schema {
		b.WriteString(",\n\t")
		b.WriteString(c.name)
		b.WriteString(" ")
		b.WriteString(c.sqlType)
	}
	b.WriteString("\n)")
	return b.String()
}

// insertSQL builds a multi-row INSERT for n rows using $n placeholders,
// which both DuckDB and lib/pq accept. Temporal values are cast explicitly.
func insertSQL(n int) string {
	width := len(schema) + 1

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(dataset.TableName)
	b.WriteString(" (row_id")
	for _, c := range schema {
		b.WriteString(", ")
		b.WriteString(c.name)
	}
	b.WriteString(") VALUES ")

	for row := 0; row < n; row++ {
		if row > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		base := row * width
		b.WriteString("$" + strconv.Itoa(base+1))
		for i, c := range schema {
			b.WriteString(", ")
			ph := "$" + strconv.Itoa(base+i+2)
			switch c.sqlType {
			case "TIMESTAMP", "DATE":
				b.WriteString("CAST(" + ph + " AS " + c.sqlType + ")")
			default:
				b.WriteString(ph)
			}
		}
		b.WriteString(")")
	}
	return b.String()
}

// ResetAndLoad drops and recreates the traffic_stop table and inserts every
// record of snap, all in one transaction. Rows keep their snapshot RowID so
// the table preserves load order.
//
// The operation is destructive and assumes this process is the only writer.
// Running it twice on the same snapshot yields an identical table.
func (db *DB) ResetAndLoad(ctx context.Context, snap *dataset.Snapshot) (LoadStats, error) {
	stats := LoadStats{Total: snap.Len(), StartTime: time.Now()}

	batchSize := db.cfg.InsertBatchSize
	if batchSize <= 0 {
		batchSize = defaultInsertBatchSize
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("begin load transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+dataset.TableName); err != nil {
		return stats, fmt.Errorf("drop %s: %w", dataset.TableName, err)
	}
	if _, err := tx.ExecContext(ctx, createTableSQL()); err != nil {
		return stats, fmt.Errorf("create %s: %w", dataset.TableName, err)
	}

	fullBatch := insertSQL(batchSize)
	args := make([]any, 0, batchSize*(len(schema)+1))
	pending := 0

	flush := func() error {
		if pending == 0 {
			return nil
		}
		query := fullBatch
		if pending < batchSize {
			query = insertSQL(pending)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert batch %d: %w", stats.Batches+1, err)
		}
		stats.Inserted += pending
		stats.Batches++
		args = args[:0]
		pending = 0
		return nil
	}

	var loadErr error
	snap.Each(func(rec *dataset.TrafficStopRecord) bool {
		args = append(args, int64(rec.RowID))
		args = append(args, rec.Values()...)
		pending++
		if pending == batchSize {
			if loadErr = flush(); loadErr != nil {
				return false
			}
		}
		return true
	})
	if loadErr != nil {
		return stats, loadErr
	}
	if err := flush(); err != nil {
		return stats, err
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit load transaction: %w", err)
	}

	stats.EndTime = time.Now()
	metrics.RecordDatasetLoad(stats.Inserted, stats.Duration())
	logging.Info().
		Str("table", dataset.TableName).
		Int("rows", stats.Inserted).
		Int("batches", stats.Batches).
		Dur("duration", stats.Duration()).
		Msg("Reset-and-load complete")

	return stats, nil
}

// CountRows returns the number of rows in the traffic_stop table.
func (db *DB) CountRows(ctx context.Context) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+dataset.TableName).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", dataset.TableName, err)
	}
	return n, nil
}
