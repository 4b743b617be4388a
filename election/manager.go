// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/avelis/clubvote/ballot"
	"github.com/avelis/clubvote/chat"
	"github.com/avelis/clubvote/cliparse"
	"github.com/avelis/clubvote/indicator"
	"github.com/avelis/clubvote/models"
	"github.com/avelis/clubvote/store"
)

// Manager drives the election lifecycle: open with a freshly selected
// ballot, accept quadratically capped votes, and close with a tally. All
// state lives in the store; the manager holds no mutable state of its own.
type Manager struct {
	store   *store.Store
	chat    chat.Client
	builder *ballot.Builder
	syncer  *indicator.Syncer
	cfg     cliparse.Config
	logger  *slog.Logger
}

func NewManager(s *store.Store, c chat.Client, b *ballot.Builder, syncer *indicator.Syncer, cfg cliparse.Config, logger *slog.Logger) *Manager {
	return &Manager{store: s, chat: c, builder: b, syncer: syncer, cfg: cfg, logger: logger}
}

// Open selects a ballot and opens a new election around it. Fails with
// store.ErrElectionAlreadyOpen when one is already running and
// ErrNoEligibleCandidates when selection comes up empty.
//
// The ballot announcement is best-effort: a chat outage does not undo an
// already-opened election.
func (m *Manager) Open(ctx context.Context, req models.OpenElectionRequest) (models.OpenElectionResponse, error) {
	hours := req.Hours
	if hours <= 0 {
		hours = m.cfg.ElectionHours
	}
	size := req.BallotSize
	if size <= 0 {
		size = m.cfg.BallotSize
	}

	candidates, err := m.builder.Build(ctx, ballot.Options{
		Size:             size,
		MaxAppearances:   m.cfg.MaxAppearances,
		IncludeUnengaged: m.cfg.Staging,
	})
	if err != nil {
		return models.OpenElectionResponse{}, err
	}
	if len(candidates) == 0 {
		return models.OpenElectionResponse{}, ErrNoEligibleCandidates
	}

	ids := make([]int64, len(candidates))
	for i, c := range candidates {
		ids[i] = c.BookID
	}

	openedAt := time.Now().UTC()
	closesAt := openedAt.Add(time.Duration(hours) * time.Hour)
	e, err := m.store.CreateElection(ctx, req.OpenerID, openedAt, closesAt, ids)
	if err != nil {
		return models.OpenElectionResponse{}, err
	}

	m.logger.Info("election opened",
		"election_id", e.ID, "ballot_size", len(ids), "closes_at", closesAt)

	m.announceBallot(ctx, e, candidates)

	return models.OpenElectionResponse{
		ID:            e.ID,
		Ballot:        ids,
		BallotDetails: candidates,
		OpenedAt:      openedAt,
		ClosesAt:      closesAt,
	}, nil
}

func (m *Manager) announceBallot(ctx context.Context, e models.Election, candidates []models.Candidate) {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 A new election is open! Voting closes %s.\n\n", humanize.Time(e.ClosesAt))
	for i, c := range candidates {
		fmt.Fprintf(&b, "%d. **%s**", i+1, c.Title)
		if c.LastChance {
			b.WriteString(" (last chance!)")
		}
		b.WriteByte('\n')
	}

	msg, err := m.chat.SendMessage(ctx, m.cfg.BallotChannelID, b.String())
	if err != nil {
		m.logger.Warn("ballot announcement failed", "election_id", e.ID, "error", err)
		return
	}
	if err := m.store.SetBallotMessage(ctx, e.ID, msg.ID); err != nil {
		m.logger.Warn("failed to link ballot message", "election_id", e.ID, "error", err)
		return
	}
	if err := m.chat.AddReaction(ctx, m.cfg.BallotChannelID, msg.ID, indicator.EmojiFor(0)); err != nil {
		m.logger.Warn("failed to seed turnout indicator", "election_id", e.ID, "error", err)
	}
}

// SubmitVote validates and records one voter's weights, replacing any prior
// weights for the same books. The quadratic cost is checked per submission;
// a voter may spread entries across several submissions as long as each one
// fits under the cap on its own.
func (m *Manager) SubmitVote(ctx context.Context, req models.CastVoteRequest) error {
	e, err := m.resolveElection(ctx, req.ElectionID)
	if err != nil {
		return err
	}
	if e.ClosedAt != nil {
		return ErrElectionClosed
	}

	onBallot := make(map[int64]bool, len(e.Ballot))
	for _, id := range e.Ballot {
		onBallot[id] = true
	}

	seen := make(map[int64]bool, len(req.Entries))
	for _, entry := range req.Entries {
		if !onBallot[entry.BookID] {
			return &InvalidEntryError{BookID: entry.BookID, Reason: "not on the ballot"}
		}
		if seen[entry.BookID] {
			return &InvalidEntryError{BookID: entry.BookID, Reason: "listed more than once"}
		}
		seen[entry.BookID] = true
	}

	limit := m.cfg.CapFor(req.Member)
	if cost := quadraticCost(req.Entries); cost > float64(limit) {
		return &WeightCapError{Cost: cost, Cap: limit}
	}

	if err := m.store.UpsertVotes(ctx, e.ID, req.VoterID, req.Entries); err != nil {
		return err
	}

	m.logger.Info("vote recorded",
		"election_id", e.ID, "voter_id", req.VoterID,
		"tier", models.Tier(req.Member), "entries", len(req.Entries))

	if err := m.syncer.Sync(ctx, e.ID); err != nil {
		m.logger.Warn("turnout indicator sync failed", "election_id", e.ID, "error", err)
	}
	return nil
}

func (m *Manager) resolveElection(ctx context.Context, id int64) (models.Election, error) {
	if id != 0 {
		return m.store.GetElection(ctx, id)
	}
	e, err := m.store.GetOpenElection(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return models.Election{}, ErrNoOpenElection
	}
	return e, err
}

// Close transitions an election to closed and tallies it. Exactly one caller
// wins a close race; the losers get ErrElectionClosed. After the targeted
// close, any other open elections are defensively swept closed too.
func (m *Manager) Close(ctx context.Context, id int64, closedBy *int64) (models.CloseElectionResponse, error) {
	closedAt := time.Now().UTC()
	flipped, err := m.store.MarkClosed(ctx, id, closedBy, closedAt)
	if err != nil {
		return models.CloseElectionResponse{}, err
	}
	if !flipped {
		if _, err := m.store.GetElection(ctx, id); err != nil {
			return models.CloseElectionResponse{}, err
		}
		return models.CloseElectionResponse{}, ErrElectionClosed
	}

	if stragglers, err := m.store.MarkAllClosed(ctx, closedBy, closedAt); err != nil {
		m.logger.Warn("straggler sweep failed", "error", err)
	} else if len(stragglers) > 0 {
		m.logger.Warn("closed stragglers that should not have been open",
			"election_ids", stragglers)
	}

	e, err := m.store.GetElection(ctx, id)
	if err != nil {
		return models.CloseElectionResponse{}, err
	}

	totals, err := m.store.VoteTotals(ctx, e.ID)
	if err != nil {
		return models.CloseElectionResponse{}, err
	}
	books, err := m.store.GetBooks(ctx, e.Ballot)
	if err != nil {
		return models.CloseElectionResponse{}, err
	}
	titles := make(map[int64]string, len(books))
	for bookID, book := range books {
		titles[bookID] = book.Title
	}

	results, winner := Tally(e.Ballot, totals, titles)
	if winner != nil {
		if err := m.store.SetWinner(ctx, e.ID, winner.BookID); err != nil {
			return models.CloseElectionResponse{}, err
		}
	}

	message := resultsMessage(results, winner)
	m.logger.Info("election closed",
		"election_id", e.ID, "winner", winnerID(winner), "results", len(results))

	if _, err := m.chat.SendMessage(ctx, m.cfg.ResultsChannelID, message); err != nil {
		m.logger.Warn("results announcement failed", "election_id", e.ID, "error", err)
	}

	// Retire the ballot post so stale links stop inviting votes.
	if e.BallotMessageID != nil {
		closedNote := "🗳️ Voting has closed.\n\n" + message
		if err := m.chat.EditMessage(ctx, m.cfg.BallotChannelID, *e.BallotMessageID, closedNote); err != nil {
			m.logger.Warn("failed to retire ballot post", "election_id", e.ID, "error", err)
		}
	}

	return models.CloseElectionResponse{
		ID:       e.ID,
		ClosedAt: closedAt,
		Winner:   winner,
		Results:  results,
		Message:  message,
	}, nil
}

// CloseExpired closes every open election whose deadline has passed. Each
// election closes independently; one failure does not block the rest.
func (m *Manager) CloseExpired(ctx context.Context, now time.Time) error {
	expired, err := m.store.ListExpiredOpenElections(ctx, now)
	if err != nil {
		return err
	}
	for _, e := range expired {
		if _, err := m.Close(ctx, e.ID, nil); err != nil && !errors.Is(err, ErrElectionClosed) {
			m.logger.Error("scheduled close failed", "election_id", e.ID, "error", err)
		}
	}
	return nil
}

func resultsMessage(results []models.BookResult, winner *models.BookResult) string {
	if winner == nil {
		return "🗳️ The election closed with no votes cast. The books return to the pool."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🏆 **%s** wins with %s %s!\n\n",
		winner.Title, humanize.Ftoa(winner.TotalVotes), plural(winner.TotalVotes, "vote"))
	for i, r := range results {
		fmt.Fprintf(&b, "%s: %s — %s %s\n",
			humanize.Ordinal(i+1), r.Title, humanize.Ftoa(r.TotalVotes), plural(r.TotalVotes, "vote"))
	}
	return b.String()
}

func plural(n float64, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

func winnerID(w *models.BookResult) any {
	if w == nil {
		return nil
	}
	return w.BookID
}
