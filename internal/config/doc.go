// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

/*
Package config provides centralized configuration management for SecureCheck.

Configuration is layered with Koanf v2: built-in defaults, an optional YAML
file, an optional .env file and finally environment variables.

# Configuration Sources

  - config.yaml (or the file named by CONFIG_PATH)
  - .env (or the file named by DOTENV_PATH), loaded with godotenv
  - Process environment (highest priority)

# Environment Variables

Database:
  - DB_DRIVER: duckdb or postgres (default: duckdb)
  - DUCKDB_PATH: DuckDB file path (default: /data/securecheck.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
  - DUCKDB_THREADS: DuckDB worker threads (default: NumCPU)
  - DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE: PostgreSQL
    connection parameters (default: localhost:5432, postgres, traffic, disable)
  - DB_MAX_OPEN_CONNS, DB_MAX_IDLE_CONNS, DB_CONN_MAX_LIFETIME: pool sizing
  - QUERY_TIMEOUT: per catalog query deadline (default: 30s)
  - INSERT_BATCH_SIZE: rows per INSERT during reset-and-load (default: 500)

Dataset:
  - DATASET_CSV_PATH: traffic stop CSV (default: data/cleaned_traffic_stop.csv)
  - DATASET_RESET_ON_START: drop and reload the table at startup (default: true)

Circuit breaker:
  - BREAKER_ENABLED, BREAKER_MAX_REQUESTS, BREAKER_INTERVAL,
    BREAKER_TIMEOUT, BREAKER_FAILURE_THRESHOLD

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8501)
  - SERVER_TIMEOUT: Read/write timeout (default: 30s)
  - ENVIRONMENT: development, staging or production

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
