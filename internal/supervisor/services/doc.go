// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

/*
Package services provides suture.Service wrappers for SecureCheck
components.

Each wrapper implements suture's context-aware Serve pattern and
fmt.Stringer so supervisor events name the service:

  - HTTPServerService: binds the listener, runs an *http.Server and drains it on
    cancellation
  - StoreMonitorService: pings the store on an interval and logs
    reachability changes

A Serve method returns nil or ctx.Err() on shutdown and a non-nil error on
failure, which makes the supervisor restart it.
*/
package services
