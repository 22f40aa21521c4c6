// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Values are resolved in order, later sources winning:

 1. defaults
 2. the dotenv file (-env-file, default .env; ignored if missing)
 3. environment variables
 4. CLI flags

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseType: sqlite, postgres or file (default: sqlite)
  - DatabaseURL: SQLite path or PostgreSQL DSN (default for sqlite: questbridge.sqlite)
  - DataDir: JSON file directory for the file type (default: /tmp/questbridge)
  - LogLevel: debug, info, warn or error (default: info)
  - LogFormat: text or json (default: text)

# CLI Flags

	-p         Server port
	-d         Database URL
	-t         Storage type
	-data-dir  File storage directory
	-env-file  Dotenv file to load

# Environment Variables

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	DATA_DIR      → -data-dir
	LOG_LEVEL
	LOG_FORMAT

# Validation

ParseFlags returns an error when:

  - the port is outside 1-65535
  - the type is unknown
  - postgres is selected without a URL
*/
package cliparse
