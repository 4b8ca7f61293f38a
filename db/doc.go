// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connections

Open selects the driver from the configured database type:

	conn, err := db.Open("sqlite", "file:quickly-rate.db")
	conn, err := db.Open("postgres", "postgres://...")

PostgreSQL uses github.com/lib/pq; SQLite uses the pure Go
modernc.org/sqlite driver and is limited to one open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - item: Catalogue items with their tags (JSON array) and refresh time

Voting sessions are never persisted. They live in process memory and are
lost on restart.
*/
package db
