// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Rate API.

# Handler Types

Each handler is a struct holding its dependencies:

  - SessionHandler: Session creation, lookup, voting and results
  - EventsHandler: Server-Sent Events stream of live results
  - ItemHandler: Catalogue item metadata

	sessionHandler := handlers.NewSessionHandler(store, items, cfg)
	eventsHandler := handlers.NewEventsHandler(store, hub)
	itemHandler := handlers.NewItemHandler(items)

# Session Lifecycle

A session accepts votes until its expiry, then disappears:

	POST /sessions               → CreateSession (returns the session and its duration)
	GET  /sessions/{id}          → GetSession (404 once expired)
	POST /sessions/{id}/votes    → SubmitVote (404 unknown, 409 no longer active)
	GET  /sessions/{id}/results  → GetResults (empty leaderboard for unknown IDs)

Ratings must be between 1 and 10. Voters without an ID are given an
anonymous one derived from their IP.

# Live Results

	GET /sessions/{id}/events → Stream

The stream opens with the current leaderboard, then sends a VotesUpdated
event after every accepted vote and a final SessionExpired event. Clients
that fall behind miss intermediate updates rather than slowing voters.

# Items

	POST /items      → Upsert
	GET  /items/{id} → Get
*/
package handlers
