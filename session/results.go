// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"math"
	"sort"

	"github.com/danielhkuo/quickly-rate/models"
)

// Aggregate builds the ranked leaderboard for a session.
// Votes whose item is not a candidate are ignored.
func Aggregate(sessionID string, candidates []models.Item, votes []models.Vote) models.VotingSessionResult {
	// Bucket votes by item
	byItem := make(map[int][]models.Vote, len(candidates))
	for _, v := range votes {
		byItem[v.ItemID] = append(byItem[v.ItemID], v)
	}

	results := make([]models.ItemResult, len(candidates))
	for i, item := range candidates {
		itemVotes := byItem[item.ID]

		ratings := make([]int, len(itemVotes))
		for j, v := range itemVotes {
			ratings[j] = v.Rating
		}

		results[i] = models.ItemResult{
			Item:          item,
			AverageRating: averageRating(ratings),
			TotalVotes:    len(itemVotes),
			VoterRatings:  voterRatings(itemVotes),
		}
	}

	// Higher average wins, then more votes; otherwise keep candidate order
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.AverageRating != b.AverageRating {
			return a.AverageRating > b.AverageRating
		}
		return a.TotalVotes > b.TotalVotes
	})

	for i := range results {
		results[i].Rank = i + 1
	}

	return models.VotingSessionResult{
		SessionID:  sessionID,
		TotalVotes: len(votes),
		Results:    results,
	}
}

// averageRating returns the mean rounded to one decimal place, 0 for no ratings
func averageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0.0
	}

	// Summed as float64: ratings are unbounded and an int sum can overflow
	sum := 0.0
	for _, r := range ratings {
		sum += float64(r)
	}
	mean := sum / float64(len(ratings))
	return math.Round(mean*10) / 10
}

// voterRatings lists ballots most recent first. Equal timestamps keep
// reverse insertion order, so the later vote still comes first.
func voterRatings(votes []models.Vote) []models.VoterRating {
	ordered := make([]models.Vote, len(votes))
	for i, v := range votes {
		ordered[len(votes)-1-i] = v
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].VotedAt.After(ordered[j].VotedAt)
	})

	out := make([]models.VoterRating, len(ordered))
	for i, v := range ordered {
		out[i] = models.VoterRating{
			VoterID:   v.VoterID,
			VoterName: v.VoterName,
			Rating:    v.Rating,
		}
	}
	return out
}
