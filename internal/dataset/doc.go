// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

// Package dataset reads the traffic stop CSV into an immutable Snapshot.
//
// The Snapshot is built once at startup and handed to the components that
// need it: the database loader copies it into the traffic_stop table and the
// summary engine filters it in memory. Record order is the order of the
// source file and is the order "first match" refers to.
package dataset
