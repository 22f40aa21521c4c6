// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables for a dialect:

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
SQLite and PostgreSQL variants differ only in id and timestamp column types.

# Tables

  - participants: registered attendees, email UNIQUE
  - engagement_logs: append-only scored activity events

# Relationships

	participants.email 1··* engagement_logs.participant_email

The relationship is soft. There is no foreign key, so a log may name an email
with no participant, and deleting a participant leaves its logs in place.

# Indexes

  - participants.email (unique)
  - participants.created_at
  - engagement_logs.participant_email
  - engagement_logs.timestamp
*/
package db
