// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify implements the live update fan-out for voting sessions.

Participants join a session group by session ID and receive events on a
buffered channel:

	sub := hub.Subscribe(sessionID)
	defer hub.Unsubscribe(sub)

	for ev := range sub.Events() {
		// ev.Type is VotesUpdated or SessionExpired
	}

# Delivery

Delivery is best-effort and at-most-once. Publish never blocks: a
subscriber whose queue is full misses the event, and there is no replay
for subscribers that join later. Late joiners fetch current results
separately.
*/
package notify
