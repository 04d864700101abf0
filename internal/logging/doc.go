// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

// Package logging provides centralized zerolog-based structured logging for SecureCheck.
//
// JSON output is the default; console output is available for local runs.
// Request-scoped fields (request_id, query) travel through context.Context
// and are attached by Ctx.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int("rows", snap.Len()).Msg("Dataset loaded")
//	logging.Ctx(ctx).Error().Err(err).Msg("Catalog query failed")
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
//
// # Supervisor Integration
//
// NewSlogLogger returns an *slog.Logger backed by zerolog for use with
// sutureslog.
package logging
