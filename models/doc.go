// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, event, request, and response types.

# Domain Types

  - Item: candidate being rated (id, name, tags)
  - Vote: one ballot for one item within a session
  - VotingSession: time-boxed rating activity over a fixed candidate list
  - VotingSessionResult: ranked leaderboard derived from a session
  - ItemResult: average rating, vote count and per-voter breakdown
  - Event: push notification delivered to session subscribers

# Request Types

  - CreateSessionRequest: creator_id, items, item_ids
  - SubmitVoteRequest: voter_id, voter_name, item_id, rating
  - UpsertItemRequest: id, name, tags

# Response Types

  - CreateSessionResponse: session, duration
  - SubmitVoteResponse: message
  - ErrorResponse: error, message

# Constants

Event types:

	EventVotesUpdated   = "VotesUpdated"
	EventSessionExpired = "SessionExpired"

Rating bounds enforced by the HTTP layer:

	MinRating = 1
	MaxRating = 10
*/
package models
