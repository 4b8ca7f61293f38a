// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Rate API server.

Quickly Rate runs short-lived group rating sessions: a creator proposes a
few catalogue items, participants rate each from 1 to 10, and everyone
watching the session sees the ranked leaderboard update live. Sessions
are held in memory and disappear when they expire.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	IDENTITY_SALT=... DATABASE_URL=quickly-rate.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -identity-salt dev

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - DATABASE_URL (-d): Catalogue database (SQLite path or PostgreSQL URL)
  - IDENTITY_SALT (-identity-salt): Secret for anonymous voter IDs

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SESSION_DURATION (-session-duration): Session lifetime (default: 24h)
  - SUBSCRIBER_BUFFER (-subscriber-buffer): Queued events per live client (default: 16)
  - CATALOG_CACHE_SIZE (-catalog-cache): Cached items (default: 1024)
  - TAGS_TTL (-tags-ttl): Cache lifetime of item metadata (default: 24h)

# Architecture

  - session: In-memory session store, expiry and result aggregation
  - notify: Per-session event fan-out
  - clock: Time source, mockable in tests
  - catalog: Item metadata over the database with an LRU cache
  - handlers: HTTP request handlers (sessions, live events, items)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Shared domain and request/response types
  - auth: Random IDs and anonymous identities
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
