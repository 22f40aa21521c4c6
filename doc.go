// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the QuestBridge API server.

QuestBridge is the backend of an event-management app. It keeps the attendee
ledger (registrations, check-in status, engagement scores, leaderboard)
and serves it as JSON, CSV and XLSX.

# Starting the Server

With no configuration the server listens on :5000 and keeps its data in
./questbridge.sqlite:

	go run .

Or with flags:

	go run . -p 5000 -t postgres -d "postgres://..."

# Configuration

Settings come from flags, the environment, or a .env file:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): sqlite, postgres or file (default: sqlite)
  - DATABASE_URL (-d): SQLite path or PostgreSQL DSN
  - DATA_DIR (-data-dir): JSON directory for the file type
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json output

The file type rewrites whole JSON files on each change and must only be used
by a single process.

# Architecture

  - handlers: HTTP request handlers (participants, engagement, downloads)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, recovery, metrics, JSON helpers
  - ledger: Registration, engagement logging, leaderboard
  - store: SQL and flat-file persistence
  - export: CSV and XLSX rendering
  - metrics: Prometheus collectors
  - models: Request/response and domain types
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
