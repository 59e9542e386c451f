// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

Open returns a *sql.DB backed by the pure-Go SQLite driver (modernc.org/sqlite)
with foreign keys enabled, a busy timeout, and immediate transaction locking.
CreateSchema creates the users and bills tables; it is idempotent and runs
on every startup.

The bills table enforces the closed stage set with a CHECK constraint and a
UNIQUE constraint on reference; assignment lookups are served by an index on
assigned_to.
*/
package db
