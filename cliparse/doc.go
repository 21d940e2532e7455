// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - StoreType: file, memory, sqlite or postgres (default: file)
  - DataDir: Directory holding the JSON files (default: data)
  - DatabaseURL: SQL connection string (required for sqlite and postgres)
  - SessionSecret: Secret for session token HMAC (required)
  - SessionTTL: Session lifetime (default: 12h)
  - SeedDefaultUsers: Create admin and voter accounts on an empty store (default: true)

# Sources

Values are read in order, each overriding the last:

  - .env file in the working directory, if present
  - Environment variables
  - CLI flags

# CLI Flags and Environment Variables

	-p               PORT
	-t               STORE_TYPE
	--data-dir       DATA_DIR
	-d               DATABASE_URL
	--session-secret SESSION_SECRET
	--session-ttl    SESSION_TTL
	--seed-users     SEED_DEFAULT_USERS

# Validation

ParseFlags returns an error if required values are missing:

  - SESSION_SECRET must be provided
  - DATABASE_URL must be provided for the sqlite and postgres stores
*/
package cliparse
