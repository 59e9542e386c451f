// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the billdesk API server.

Billdesk tracks bills (invoices) through a lifecycle of stages and assigns
them to users, with a hard per-user cap enforced even under concurrent
assignment requests.

# Starting the Server

The server reads configuration from a .env file, environment variables, or
CLI flags:

	JWT_SECRET=... go run .

Or with flags:

	go run . -p 3319 -d ./data/billdesk.db -jwt-secret ...

# Configuration

Required settings:

  - JWT_SECRET (-jwt-secret): Secret for session token signing

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_PATH (-d): SQLite file (default: ./data/billdesk.db)
  - TOKEN_HOURS (-token-hours): Session lifetime (default: 24)
  - ASSIGN_CAP (-cap): Max bills per user (default: 3)
  - LOG_LEVEL: debug, info, warn, error (default: info)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - assignment: the transactional bill-assignment coordinator
  - handlers: HTTP request handlers (users, bills, assignment)
  - router: Route definitions using Go 1.22+ routing
  - middleware: auth, CORS, logging, JSON helpers
  - models: Domain, request, and response types
  - auth: bcrypt credentials and JWT sessions
  - db: SQLite connection and schema creation
  - metrics: prometheus collectors and /metrics
  - logging: slog handler setup (tint or JSON)
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
