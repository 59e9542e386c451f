// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

-- Bills
CREATE TABLE IF NOT EXISTS bills (
    id TEXT PRIMARY KEY,
    reference TEXT NOT NULL UNIQUE,
    bill_date TEXT NOT NULL,
    stage TEXT NOT NULL DEFAULT 'Draft'
        CHECK (stage IN ('Draft', 'Submitted', 'Approved', 'Paying', 'On Hold', 'Rejected', 'Paid')),
    assigned_to TEXT REFERENCES users(id),
    submitted_at INTEGER,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bills_assigned_to ON bills(assigned_to);
CREATE INDEX IF NOT EXISTS idx_bills_stage ON bills(stage);
`
