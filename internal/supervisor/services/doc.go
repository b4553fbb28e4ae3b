// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

/*
Package services adapts Postwise components to suture.Service.

  - HTTPServerService: ListenAndServe/Shutdown to Serve, with a bounded
    graceful shutdown
  - EventRouterService: runs the watermill consumer router, building a new
    router on every (re)start

Both implement fmt.Stringer so supervisor log lines name them.
*/
package services
