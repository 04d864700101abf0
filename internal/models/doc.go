// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

// Package models defines the JSON shapes exchanged over the HTTP API:
// the APIResponse envelope, APIError codes and endpoint payloads.
package models
