// SecureCheck - Traffic Stop Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/securecheck

/*
Package supervisor runs SecureCheck's long-lived services under a suture v4
supervisor tree.

The tree has two layers so a failing monitor never takes the HTTP server
down with it:

	RootSupervisor ("securecheck")
	├── DataSupervisor ("data-layer")
	│   └── StoreMonitorService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Canceling the context
passed to Serve shuts every service down within TreeConfig.ShutdownTimeout.
Supervisor events are logged through sutureslog, which main wires to the
zerolog logger with logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewStoreMonitorService(db, 30*time.Second))
	tree.AddAPIService(services.NewHTTPServerService(server, ":8501", 10*time.Second))
	err = tree.Serve(ctx)
*/
package supervisor
