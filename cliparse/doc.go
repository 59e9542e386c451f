// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - DatabasePath: SQLite database file (default: ./data/billdesk.db)
  - JWTSecret: Secret for session token signing (required)
  - TokenHours: Session token lifetime in hours (default: 24)
  - AssignCap: Max bills assignable to one user (default: 3)

# CLI Flags

	-p            Server port
	-d            SQLite database path
	-jwt-secret   JWT signing secret
	-token-hours  Session token lifetime
	-cap          Assignment cap per user

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_PATH → -d
	JWT_SECRET    → -jwt-secret
	TOKEN_HOURS   → -token-hours
	ASSIGN_CAP    → -cap

CLI flags take precedence over environment variables. main loads a .env
file first (via godotenv), so local development can keep secrets there.

# Validation

ParseFlags returns an error if JWT_SECRET is missing or the assignment cap
is below 1.
*/
package cliparse
