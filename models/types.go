// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Rating bounds accepted by the HTTP layer
const (
	MinRating = 1
	MaxRating = 10
)

// Event type constants
const (
	EventVotesUpdated   = "VotesUpdated"
	EventSessionExpired = "SessionExpired"
)

// Domain types

// Item is a candidate being rated. Owned by the catalogue.
type Item struct {
	ID   int      `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

type Vote struct {
	SessionID string    `json:"session_id"`
	VoterID   string    `json:"voter_id"`
	VoterName string    `json:"voter_name"`
	ItemID    int       `json:"item_id"`
	Rating    int       `json:"rating"`
	VotedAt   time.Time `json:"voted_at"`
}

type VotingSession struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatorID  string    `json:"creator_id"`
	Candidates []Item    `json:"candidates"`
	Votes      []Vote    `json:"votes"`
}

// IsActive reports whether the session still accepts votes at now
func (s *VotingSession) IsActive(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

type VoterRating struct {
	VoterID   string `json:"voter_id"`
	VoterName string `json:"voter_name"`
	Rating    int    `json:"rating"`
}

type ItemResult struct {
	Item          Item          `json:"item"`
	AverageRating float64       `json:"average_rating"`
	TotalVotes    int           `json:"total_votes"`
	VoterRatings  []VoterRating `json:"voter_ratings"`
	Rank          int           `json:"rank"` // 1-indexed ranking
}

type VotingSessionResult struct {
	SessionID  string       `json:"session_id"`
	TotalVotes int          `json:"total_votes"` // accepted votes, counted or not
	Results    []ItemResult `json:"results"`
}

// Event is pushed to every subscriber of a session
type Event struct {
	Type      string               `json:"type"`
	SessionID string               `json:"session_id"`
	Results   *VotingSessionResult `json:"results,omitempty"`
}

// Request types

type CreateSessionRequest struct {
	CreatorID string `json:"creator_id"`
	Items     []Item `json:"items"`
	ItemIDs   []int  `json:"item_ids"`
}

type SubmitVoteRequest struct {
	VoterID   string `json:"voter_id"`
	VoterName string `json:"voter_name"`
	ItemID    int    `json:"item_id"`
	Rating    int    `json:"rating"`
}

type UpsertItemRequest struct {
	ID   int      `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// Response types

type CreateSessionResponse struct {
	Session  VotingSession `json:"session"`
	Duration string        `json:"duration"`
}

type SubmitVoteResponse struct {
	Message string `json:"message"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
