// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines all HTTP routes using Go 1.22+ method patterns.

NewRouter wires the handlers to their routes and builds the shared
dependencies (JWT manager, assignment coordinator) from the parsed config.
Public routes get logging and metrics; routes that mutate state additionally
require a Bearer token.

	GET  /health
	GET  /metrics
	POST /auth/register
	POST /auth/login
	GET  /users/{id}
	GET  /users/{id}/bills
	POST /bills                (auth)
	GET  /bills
	GET  /bills/{id}
	PUT  /bills/{id}/stage     (auth)
	POST /bills/{id}/assign    (auth)
	POST /assignments          (auth)
*/
package router
