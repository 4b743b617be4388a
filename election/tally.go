// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"sort"

	"github.com/avelis/clubvote/models"
)

// Tally ranks the ballot by summed vote weight. Every ballot book appears in
// the results even with zero votes. Ties break toward the earlier ballot
// position, which selection already ordered by merit.
//
// The winner is nil only when no votes exist at all; an election that drew no
// voters has no winner and its books return to the pool. Vote rows that net
// to zero still count as participation and still crown a winner.
func Tally(ballot []int64, totals map[int64]float64, titles map[int64]string) ([]models.BookResult, *models.BookResult) {
	position := make(map[int64]int, len(ballot))
	results := make([]models.BookResult, 0, len(ballot))
	for i, bookID := range ballot {
		position[bookID] = i
		results = append(results, models.BookResult{
			BookID:     bookID,
			Title:      titles[bookID],
			TotalVotes: totals[bookID],
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].TotalVotes != results[j].TotalVotes {
			return results[i].TotalVotes > results[j].TotalVotes
		}
		return position[results[i].BookID] < position[results[j].BookID]
	})

	if len(totals) == 0 || len(results) == 0 {
		return results, nil
	}
	winner := results[0]
	return results, &winner
}

// quadraticCost is the quadratic-voting price of one submission: the sum of
// squared entry weights. Negative weights cost the same as positive ones.
// Each submission is priced on its own; earlier rows for the same voter do
// not raise the bill.
func quadraticCost(entries []models.VoteEntry) float64 {
	var cost float64
	for _, e := range entries {
		cost += e.Weight * e.Weight
	}
	return cost
}
