// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

// Package main prints catalog query results as terminal tables.
//
// With no arguments every catalog query runs in display order. Otherwise
// each argument is a query slug:
//
//	securecheck-report arrests-by-driver-age top-search-country
//
// The store is configured the same way as the server. When the
// traffic_stop table does not exist yet, the CSV is loaded first.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/tomtom215/securecheck/internal/catalog"
	"github.com/tomtom215/securecheck/internal/config"
	"github.com/tomtom215/securecheck/internal/database"
	"github.com/tomtom215/securecheck/internal/dataset"
	"github.com/tomtom215/securecheck/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	level := cfg.Logging.Level
	if level == "" || level == "info" || level == "debug" {
		level = "warn"
	}
	logging.Init(logging.Config{Level: level, Format: "console", Output: os.Stderr})

	defs, err := selectQueries(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database, &cfg.Breaker)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	if _, err := db.CountRows(ctx); err != nil {
		snap, err := dataset.LoadFile(cfg.Dataset.CSVPath)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
		if _, err := db.ResetAndLoad(ctx, snap); err != nil {
			return fmt.Errorf("reset and load %s: %w", dataset.TableName, err)
		}
	}

	exec := catalog.NewExecutor(db)
	for _, def := range defs {
		res, err := exec.Execute(ctx, def.ID)
		if err != nil {
			return err
		}
		printResult(out, res)
	}
	return nil
}

// selectQueries resolves slugs to definitions. No slugs selects every
// runnable query.
func selectQueries(slugs []string) ([]catalog.Definition, error) {
	if len(slugs) == 0 {
		return catalog.All(), nil
	}

	defs := make([]catalog.Definition, 0, len(slugs))
	for _, slug := range slugs {
		def, ok := catalog.BySlug(slug)
		if !ok {
			return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownQuery, slug)
		}
		if def.IsPlaceholder() {
			continue
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func printResult(out io.Writer, res catalog.Result) {
	color.New(color.FgYellow, color.Bold).Fprintf(out, "\n%s\n", res.Definition.Label)

	if len(res.Rows) == 0 {
		color.New(color.FgCyan).Fprintln(out, "No rows returned.")
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader(res.Columns)
	table.SetAutoFormatHeaders(false)
	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellText(v)
		}
		table.Append(cells)
	}
	table.Render()
}

func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "True"
		}
		return "False"
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.DateTime)
	default:
		return fmt.Sprint(val)
	}
}
