// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

// Package testinfra provides container fixtures for integration tests.
//
// Fixtures are built on testcontainers-go and compiled only with the
// integration build tag:
//
//	go test -tags integration ./...
//
// # PostgreSQL Container
//
// PostgresContainer starts a disposable PostgreSQL server and exposes a
// ready-to-use config.DatabaseConfig, so the database package can be
// exercised against the same driver production uses:
//
//	func TestLoadOnPostgres(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    pg, err := testinfra.NewPostgresContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, pg.Container)
//
//	    cfg := pg.DatabaseConfig()
//	    db, err := database.New(&cfg, nil)
//	    // ...
//	}
//
// Tests are skipped when Docker is not available. The first run pulls the
// image; later runs use the local cache.
package testinfra
