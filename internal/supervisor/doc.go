// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

/*
Package supervisor runs the long-lived parts of Postwise under a suture v4
supervisor tree.

Tree layout:

	postwise (root)
	├── messaging-layer
	│   └── event-router      (watermill consumers persisting to the warehouse)
	└── api-layer
	    └── http-server       (chi API)

A service that returns an error is restarted with suture's backoff. When
failures exceed FailureThreshold within the decay window the supervisor
backs off for FailureBackoff before trying again. Supervisor events are
logged through sutureslog using the zerolog-backed slog handler.

Usage:

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMessagingService(services.NewEventRouterService(newRouter))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err := tree.Serve(ctx) // blocks until ctx is cancelled

Service wrappers live in the services subpackage.
*/
package supervisor
