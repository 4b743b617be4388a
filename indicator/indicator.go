// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package indicator

import (
	"context"
	"log/slog"

	"github.com/avelis/clubvote/chat"
	"github.com/avelis/clubvote/store"
)

// digits maps a voter count to its display emoji. Counts above ten collapse
// to the overflow marker.
var digits = []string{
	"0️⃣", "1️⃣", "2️⃣", "3️⃣",
	"4️⃣", "5️⃣", "6️⃣", "7️⃣",
	"8️⃣", "9️⃣", "\U0001f51f",
}

// Overflow marks a ballot that has drawn more voters than the digit emojis
// can show. It joins the capped digit rather than replacing it.
const Overflow = "➕"

// FreezeThreshold is the distinct-voter count at which the indicator stops
// updating forever. Past this point the count only says "lots".
const FreezeThreshold = 11

// EmojiFor returns the digit emoji representing count distinct voters,
// capped at ten.
func EmojiFor(count int) string {
	if count < 0 {
		count = 0
	}
	if count >= len(digits) {
		count = len(digits) - 1
	}
	return digits[count]
}

// Syncer keeps the ballot post's reaction in step with the distinct-voter
// count.
type Syncer struct {
	store         *store.Store
	chat          chat.Client
	ballotChannel int64
	logger        *slog.Logger
}

func NewSyncer(s *store.Store, c chat.Client, ballotChannel int64, logger *slog.Logger) *Syncer {
	return &Syncer{store: s, chat: c, ballotChannel: ballotChannel, logger: logger}
}

// Sync recomputes the indicator after a vote lands. Best-effort: indicator
// failures must never fail the vote that triggered them, so callers log the
// returned error and move on.
//
// Once the voter count reaches FreezeThreshold the overflow marker is posted
// and the election is frozen permanently; later syncs are no-ops even if
// votes are retracted or the count changes.
func (s *Syncer) Sync(ctx context.Context, electionID int64) error {
	election, err := s.store.GetElection(ctx, electionID)
	if err != nil {
		return err
	}
	if election.ReactionFrozen || election.BallotMessageID == nil {
		return nil
	}

	count, err := s.store.DistinctVoters(ctx, electionID)
	if err != nil {
		return err
	}
	want := EmojiFor(count)

	for _, emoji := range digits {
		if emoji == want {
			continue
		}
		if err := s.chat.RemoveOwnReaction(ctx, s.ballotChannel, *election.BallotMessageID, emoji); err != nil {
			s.logger.Debug("indicator removal skipped",
				"election_id", electionID, "emoji", emoji, "error", err)
		}
	}
	if err := s.chat.AddReaction(ctx, s.ballotChannel, *election.BallotMessageID, want); err != nil {
		return err
	}

	if count >= FreezeThreshold {
		if err := s.chat.AddReaction(ctx, s.ballotChannel, *election.BallotMessageID, Overflow); err != nil {
			return err
		}
		if err := s.store.FreezeReactions(ctx, electionID); err != nil {
			return err
		}
		s.logger.Info("ballot indicator frozen",
			"election_id", electionID, "distinct_voters", count)
	}
	return nil
}
