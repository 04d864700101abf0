// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/securecheck/internal/api"
	"github.com/tomtom215/securecheck/internal/catalog"
	"github.com/tomtom215/securecheck/internal/config"
	"github.com/tomtom215/securecheck/internal/database"
	"github.com/tomtom215/securecheck/internal/dataset"
	"github.com/tomtom215/securecheck/internal/logging"
	"github.com/tomtom215/securecheck/internal/summary"
	"github.com/tomtom215/securecheck/internal/supervisor"
	"github.com/tomtom215/securecheck/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("SecureCheck exited with error")
		os.Exit(1)
	}
}

//nolint:gocyclo // sequential startup steps
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Version:   version,
	})

	logging.Info().
		Str("version", version).
		Str("csv_path", cfg.Dataset.CSVPath).
		Str("driver", cfg.Database.Driver).
		Bool("reset_on_start", cfg.Dataset.ResetOnStart).
		Msg("Starting SecureCheck")

	if cfg.HasWildcardCORS() && cfg.IsProduction() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins in production")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	snap, err := dataset.LoadFile(cfg.Dataset.CSVPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	db, err := database.New(&cfg.Database, &cfg.Breaker)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Dataset.ResetOnStart {
		if _, err := db.ResetAndLoad(ctx, snap); err != nil {
			return fmt.Errorf("reset and load %s: %w", dataset.TableName, err)
		}
	} else {
		rows, err := db.CountRows(ctx)
		if err != nil {
			return fmt.Errorf("inspect existing %s table: %w", dataset.TableName, err)
		}
		logging.Info().Int64("rows", rows).Msg("Using existing table (DATASET_RESET_ON_START=false)")
	}

	handler := api.NewHandler(api.Deps{
		Executor: catalog.NewExecutor(db),
		Engine:   summary.NewEngine(snap),
		Store:    db,
		Snapshot: snap,
		Version:  version,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareConfig(&cfg.Security))

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Handler:           router.Setup(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewStoreMonitorService(db, services.DefaultMonitorInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, services.DefaultShutdownTimeout))
	logging.Info().Str("addr", addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for services to stop...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
		stop()
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("SecureCheck stopped gracefully")
	return nil
}
