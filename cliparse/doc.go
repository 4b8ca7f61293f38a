// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	_ = cliparse.LoadDotEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])

LoadDotEnv reads a .env file (if present) into the environment before
parsing. Variables already set are not overridden.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - IdentitySalt: Secret for anonymous identity hashing (required)
  - SessionDuration: Lifetime of a voting session (default: 24h)
  - SubscriberBuffer: Queued events per live subscriber (default: 16)
  - CatalogCacheSize: Items kept in the catalogue cache (default: 1024)
  - TagsTTL: Freshness of cached item tags (default: 24h)

# CLI Flags

	-p                  Server port
	-d                  Database URL
	-t                  Database type
	--identity-salt     Anonymous identity salt
	--session-duration  Session lifetime (Go duration)
	--subscriber-buffer Per-subscriber queue size
	--catalog-cache     Catalogue cache entries
	--tags-ttl          Cached tag freshness (Go duration)

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	IDENTITY_SALT      → --identity-salt
	SESSION_DURATION   → --session-duration
	SUBSCRIBER_BUFFER  → --subscriber-buffer
	CATALOG_CACHE_SIZE → --catalog-cache
	TAGS_TTL           → --tags-ttl

CLI flags take precedence over environment variables.
*/
package cliparse
