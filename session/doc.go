// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session owns the lifecycle of ephemeral voting sessions.

A Store keeps sessions in process memory in an xsync map keyed by session
ID, so operations on different sessions do not contend. Each session has
its own lock and an expiry timer armed at creation on the store's
clockwork.Clock (a fake clock in tests):

	hub := notify.NewHub()
	store := session.NewStore(hub, session.WithDuration(2*time.Hour))
	defer store.Close()

	s, _ := store.CreateSession("creator", items)
	err := store.AddVote(s.ID, models.Vote{VoterID: "v1", ItemID: 42, Rating: 8})
	results := store.GetResults(s.ID)

# Lifecycle

Sessions are created by CreateSession, mutated only by AddVote (append
only, no deduplication), and removed when their timer fires. Eviction
publishes exactly one SessionExpired event. Votes arriving after ExpiresAt
are rejected with ErrInactive even if the timer has not fired yet.

# Results

Aggregate ranks candidates by average rating (one decimal), then by vote
count, then by candidate order. The result's TotalVotes counts every
accepted vote, including votes for items that are not candidates, and
grows by one with each VotesUpdated event. GetResults on an unknown session returns
an empty result; GetSession returns ErrNotFound.
*/
package session
