// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Dialect selects placeholder style and driver name.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite"
}

// ParseDialect accepts "sqlite" or "postgres".
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(s) {
	case DialectSQLite, DialectPostgres:
		return Dialect(s), nil
	}
	return "", fmt.Errorf("unsupported database type %q", s)
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(conn *sql.DB) error {
	for _, stmt := range schema {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Statements are kept portable between SQLite and Postgres. Payload columns
// hold the JSON encoding of the model types.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS naming_session (
    id TEXT PRIMARY KEY,
    phase TEXT NOT NULL,
    payload TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_naming_session_phase ON naming_session(phase)`,
	`CREATE TABLE IF NOT EXISTS founder_profile (
    session_id TEXT NOT NULL REFERENCES naming_session(id) ON DELETE CASCADE,
    founder_id TEXT NOT NULL CHECK (founder_id IN ('founder_a', 'founder_b')),
    interview_status TEXT NOT NULL,
    payload TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (session_id, founder_id)
)`,
}
