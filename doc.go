// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote API server.

Quickly Vote runs single choice, multiple choice and yes/no polls for a
closed group of accounts. Admins draft, start and end polls; voters see the
polls they are allowed on and cast one ballot each.

# Starting the Server

The server reads environment variables (optionally from .env) or CLI flags:

	SESSION_SECRET=change-me go run .

Or with flags:

	go run . -p 3318 -t sqlite -d quickly-vote.db -session-secret change-me

# Configuration

Required settings:

  - SESSION_SECRET (-session-secret): HMAC key for session tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - STORE_TYPE (-t): file, memory, sqlite or postgres (default: file)
  - DATA_DIR (-data-dir): Directory for the file store (default: data)
  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - SESSION_TTL (-session-ttl): Session lifetime (default: 12h)
  - SEED_DEFAULT_USERS (-seed-users): Create admin/voter when no users exist

# Architecture

  - poll: Poll model, variants, state machine and filters
  - engine: Voting, lifecycle, accounts and read paths
  - audit: Audit entries, recorder and queries
  - store: Memory, JSON file and SQL repositories
  - db: SQL dialects and schema
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: Sessions, CORS, logging, JSON helpers
  - models: Accounts and request/response types
  - auth: Passwords, ids and session tokens
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
