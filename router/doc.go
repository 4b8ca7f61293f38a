// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Rate API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(cfg, store, hub, items)

# Endpoints

Health:

	GET /health

Voting sessions:

	POST /sessions               - Create session
	GET  /sessions/{id}          - Session with candidates and votes
	POST /sessions/{id}/votes    - Submit a rating
	GET  /sessions/{id}/results  - Ranked leaderboard
	GET  /sessions/{id}/events   - Live results (Server-Sent Events)

Catalogue:

	POST /items      - Create or update item metadata
	GET  /items/{id} - Item metadata

Sessions are held in memory and vanish when they expire; only item
metadata is stored in the database.
*/
package router
