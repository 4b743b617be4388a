// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"sort"

	"github.com/avelis/clubvote/models"
)

// Options tune one selection run.
type Options struct {
	// Size is the maximum number of books on the ballot.
	Size int

	// MaxAppearances is how many winning elections a book may appear in
	// before it is retired from future ballots.
	MaxAppearances int

	// IncludeUnengaged keeps zero-reaction nominations eligible. Staging
	// environments turn this on so empty clubs still produce ballots.
	IncludeUnengaged bool
}

// Select ranks the candidate pool and returns the ballot, best first.
//
// Eligibility: past winners are out permanently, as is any book that has
// already appeared MaxAppearances times; a book nobody has reacted to is out
// unless IncludeUnengaged. The ranking favors fresh blood: books that have never
// been on a ballot sort ahead of returners regardless of score, then higher
// score wins, then the earlier-created book. The whole ordering is
// deterministic, so the same pool always yields the same ballot.
//
// Candidates at MaxAppearances-1 get LastChance set: this election is their
// final shot.
func Select(pool []models.Candidate, opts Options) []models.Candidate {
	eligible := make([]models.Candidate, 0, len(pool))
	for _, c := range pool {
		if c.PriorAppearances >= opts.MaxAppearances {
			continue
		}
		if c.Reactions == 0 && !opts.IncludeUnengaged {
			continue
		}
		c.LastChance = c.PriorAppearances == opts.MaxAppearances-1
		eligible = append(eligible, c)
	}

	sort.Slice(eligible, func(i, j int) bool {
		a, b := eligible[i], eligible[j]
		aReturning := a.PriorAppearances > 0
		bReturning := b.PriorAppearances > 0
		if aReturning != bReturning {
			return !aReturning
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.BookID < b.BookID
	})

	if len(eligible) > opts.Size {
		eligible = eligible[:opts.Size]
	}
	return eligible
}
