// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

/*
Package main is the entry point for the SecureCheck server.

SecureCheck loads a CSV of police traffic stop records into a relational
store and serves an analytics dashboard over it: a catalog of fixed SQL
queries and a filter-driven natural-language summary of matching stops.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("securecheck")
	├── DataSupervisor ("data-layer")
	│   └── Store monitor (periodic ping and row count)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (dashboard, JSON API, health, metrics)

Startup order:

 1. Configuration: Koanf v2 with .env, config file and environment variables
 2. Logging: zerolog with level and format from configuration
 3. Dataset: the CSV is parsed into an immutable in-memory snapshot
 4. Store: DuckDB (default) or PostgreSQL, with reset-and-load when enabled
 5. Catalog executor and summary engine
 6. HTTP router and supervisor tree

A CSV that cannot be read, or a store that cannot be reached or loaded,
stops the process before it accepts requests.

# Configuration

Common environment variables:

	DATASET_CSV_PATH=data/cleaned_traffic_stop.csv
	DATASET_RESET_ON_START=true
	DB_DRIVER=duckdb            # or postgres
	DUCKDB_PATH=data/securecheck.duckdb
	HTTP_PORT=8501
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests and the store is closed before exit.
*/
package main
