// Postwise - Best-Time-to-Post Recommendations for Artisan Sellers
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postwise

// Package auth provides optional HS256 bearer-token authentication for
// the HTTP API. With security.auth_mode "none" (the default) the
// middleware is a pass-through; with "jwt" every protected route needs an
// Authorization: Bearer header carrying a token signed with JWT_SECRET.
package auth
