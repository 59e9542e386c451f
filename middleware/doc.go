// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and JSON helpers.

# Request Helpers

  - WithLogging: slog request/completion lines with duration
  - CORS: cross-origin headers and preflight handling
  - ParseJSONBody: decode a JSON request body
  - JSONResponse / ErrorResponse: encode JSON responses
  - GetClientIP: client IP behind proxies

# Authentication

RequireUser validates the Authorization: Bearer token against a
*auth.JWTManager and stores the user ID and email in the request context:

	mux.HandleFunc("POST /bills", middleware.WithLogging(
		middleware.RequireUser(jwtManager, billHandler.CreateBill)))

Handlers read the identity back with GetUserID(r.Context()).
*/
package middleware
