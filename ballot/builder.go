// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"context"
	"errors"
	"log/slog"

	"github.com/avelis/clubvote/chat"
	"github.com/avelis/clubvote/models"
	"github.com/avelis/clubvote/store"
)

// Builder assembles the candidate pool from storage and live chat engagement,
// then runs Select over it.
type Builder struct {
	store      *store.Store
	chat       chat.Client
	nomChannel int64
	logger     *slog.Logger
}

func NewBuilder(s *store.Store, c chat.Client, nomChannel int64, logger *slog.Logger) *Builder {
	return &Builder{store: s, chat: c, nomChannel: nomChannel, logger: logger}
}

// Build produces the ranked ballot for a new election.
//
// Engagement is refreshed synchronously from the chat platform before
// ranking: each nomination's reaction count becomes the number of distinct
// reactors excluding the nominator. A message the platform has lost counts
// as zero. Books that have already won are dropped before selection; they
// never recompete.
func (b *Builder) Build(ctx context.Context, opts Options) ([]models.Candidate, error) {
	pool, err := b.store.ListCandidates(ctx)
	if err != nil {
		return nil, err
	}
	winners, err := b.store.PastWinners(ctx)
	if err != nil {
		return nil, err
	}
	appearances, err := b.store.BallotAppearances(ctx)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.Candidate, 0, len(pool))
	for _, row := range pool {
		if winners[row.BookID] {
			continue
		}

		reactions, err := b.refreshEngagement(ctx, row)
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, models.Candidate{
			BookID:           row.BookID,
			Title:            row.Title,
			Reactions:        reactions,
			PreviousVotes:    row.VoteSum,
			Score:            float64(reactions) + row.VoteSum,
			PriorAppearances: appearances[row.BookID],
			CreatedAt:        row.CreatedAt,
		})
	}

	return Select(candidates, opts), nil
}

// refreshEngagement recounts a nomination's reactors and persists the new
// count so the stored number never goes stale.
func (b *Builder) refreshEngagement(ctx context.Context, row store.CandidateRow) (int, error) {
	reactors, err := b.chat.DistinctReactors(ctx, b.nomChannel, row.MessageID)
	if errors.Is(err, chat.ErrNotFound) {
		b.logger.Warn("nomination message gone, counting zero engagement",
			"nomination_id", row.NominationID, "message_id", row.MessageID)
		reactors = nil
	} else if err != nil {
		return 0, err
	}

	count := 0
	for _, id := range reactors {
		if id != row.NominatorID {
			count++
		}
	}

	if count != row.Reactions {
		if err := b.store.UpdateNominationReactions(ctx, row.NominationID, count); err != nil {
			return 0, err
		}
	}
	return count, nil
}
