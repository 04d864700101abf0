// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// config file, a .env file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. .env File: Optional dotenv file, exported into the process environment
//  4. Environment Variables: Override any setting
//
// Configuration Categories:
//
//  1. Data:
//     - Database: relational store the catalog runs against (DuckDB or PostgreSQL)
//     - Dataset: CSV source and reset-and-load behavior
//     - Breaker: circuit breaker around catalog query execution
//
//  2. Serving:
//     - Server: HTTP server configuration (port, host, timeout)
//     - Security: CORS and rate limiting
//
//  3. Observability:
//     - Logging: Log levels and output formats
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Dataset  DatasetConfig  `koanf:"dataset"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	Server   ServerConfig   `koanf:"server"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// Supported database drivers.
const (
	DriverDuckDB   = "duckdb"
	DriverPostgres = "postgres"
)

// DatabaseConfig holds relational store settings.
//
// Path, MaxMemory and Threads apply to DuckDB. Host, Port, User, Password,
// Name and SSLMode apply to PostgreSQL.
type DatabaseConfig struct {
	Driver string `koanf:"driver"`

	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU

	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`

	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	QueryTimeout    time.Duration `koanf:"query_timeout"`
	InsertBatchSize int           `koanf:"insert_batch_size"`
}

// IsPostgres reports whether the PostgreSQL driver is selected.
func (d *DatabaseConfig) IsPostgres() bool {
	return d.Driver == DriverPostgres
}

// PostgresDSN builds a lib/pq key/value connection string.
func (d *DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Address returns host:port of the PostgreSQL server, for log fields.
func (d *DatabaseConfig) Address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// DatasetConfig holds the CSV source settings.
type DatasetConfig struct {
	CSVPath string `koanf:"csv_path"`

	// ResetOnStart drops and reloads the traffic_stop table at startup.
	// Assumes this process is the only writer to the table.
	ResetOnStart bool `koanf:"reset_on_start"`
}

// BreakerConfig holds circuit breaker settings for catalog query execution.
type BreakerConfig struct {
	Enabled          bool          `koanf:"enabled"`
	MaxRequests      uint32        `koanf:"max_requests"`      // requests allowed while half-open
	Interval         time.Duration `koanf:"interval"`          // closed-state counter reset period
	Timeout          time.Duration `koanf:"timeout"`           // open-state duration before half-open
	FailureThreshold uint32        `koanf:"failure_threshold"` // consecutive failures that trip the breaker
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // "development", "staging", "production"
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration using the layered Koanf loader.
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
