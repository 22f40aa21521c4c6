// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Supported SQL dialects
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	var ddl string
	switch dialect {
	case DialectSQLite:
		ddl = sqliteSchema
	case DialectPostgres:
		ddl = postgresSchema
	default:
		return fmt.Errorf("unsupported dialect %q", dialect)
	}

	_, err := db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// participant_email is not a foreign key. Logs may name unregistered emails
// and outlive the participant.
const sqliteSchema = `
-- Participants
CREATE TABLE IF NOT EXISTS participants (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    organization TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    ticket_type TEXT NOT NULL DEFAULT 'general',
    status TEXT NOT NULL DEFAULT 'pending',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_participants_created_at ON participants(created_at);

-- Engagement Logs
CREATE TABLE IF NOT EXISTS engagement_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    participant_email TEXT NOT NULL,
    activity_type TEXT NOT NULL,
    details TEXT,
    score INTEGER NOT NULL DEFAULT 0,
    timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_engagement_logs_email ON engagement_logs(participant_email);
CREATE INDEX IF NOT EXISTS idx_engagement_logs_timestamp ON engagement_logs(timestamp);
`

const postgresSchema = `
-- Participants
CREATE TABLE IF NOT EXISTS participants (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    organization TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    ticket_type TEXT NOT NULL DEFAULT 'general',
    status TEXT NOT NULL DEFAULT 'pending',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_participants_created_at ON participants(created_at);

-- Engagement Logs
CREATE TABLE IF NOT EXISTS engagement_logs (
    id BIGSERIAL PRIMARY KEY,
    participant_email TEXT NOT NULL,
    activity_type TEXT NOT NULL,
    details TEXT,
    score INTEGER NOT NULL DEFAULT 0,
    timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_engagement_logs_email ON engagement_logs(participant_email);
CREATE INDEX IF NOT EXISTS idx_engagement_logs_timestamp ON engagement_logs(timestamp);
`
