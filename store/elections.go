// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avelis/clubvote/models"
)

// CreateElection inserts a new open election. The transaction re-checks the
// "no open election" invariant and the one_open_election partial index backs
// it up, so a race between two simultaneous opens creates exactly one row;
// the loser gets ErrElectionAlreadyOpen.
func (s *Store) CreateElection(ctx context.Context, openerID int64, openedAt, closesAt time.Time, ballot []int64) (models.Election, error) {
	ballotJSON, err := json.Marshal(ballot)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to encode ballot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing int64
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM election WHERE closed_at IS NULL LIMIT 1
	`).Scan(&existing)
	if err == nil {
		return models.Election{}, ErrElectionAlreadyOpen
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.Election{}, fmt.Errorf("failed to check open election: %w", err)
	}

	election := models.Election{
		OpenerID: openerID,
		OpenedAt: openedAt,
		ClosesAt: closesAt,
		Ballot:   ballot,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO election (opener_id, opened_at, closes_at, ballot)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, openerID, openedAt, closesAt, ballotJSON).Scan(&election.ID)
	if isUniqueViolation(err, "one_open_election") {
		return models.Election{}, ErrElectionAlreadyOpen
	}
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to insert election: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err, "one_open_election") {
			return models.Election{}, ErrElectionAlreadyOpen
		}
		return models.Election{}, fmt.Errorf("failed to commit election: %w", err)
	}
	return election, nil
}

// GetElection fetches an election by id.
func (s *Store) GetElection(ctx context.Context, id int64) (models.Election, error) {
	return s.scanElection(s.db.QueryRowContext(ctx, electionColumns+` WHERE id = $1`, id))
}

// GetOpenElection returns the unique open election, or ErrNotFound when
// none is open.
func (s *Store) GetOpenElection(ctx context.Context) (models.Election, error) {
	return s.scanElection(s.db.QueryRowContext(ctx, electionColumns+` WHERE closed_at IS NULL LIMIT 1`))
}

// ListExpiredOpenElections returns open elections whose closes_at has passed.
func (s *Store) ListExpiredOpenElections(ctx context.Context, now time.Time) ([]models.Election, error) {
	rows, err := s.db.QueryContext(ctx, electionColumns+`
		WHERE closed_at IS NULL AND closes_at <= $1
		ORDER BY id
	`, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query expired elections: %w", err)
	}
	defer rows.Close()

	var out []models.Election
	for rows.Next() {
		e, err := s.scanElection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MarkClosed flips closed_at from NULL exactly once. The affected-rows check
// is the concurrency gate: of any number of concurrent closers, exactly one
// sees flipped == true and proceeds to tally.
func (s *Store) MarkClosed(ctx context.Context, id int64, closedBy *int64, closedAt time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE election
		SET closed_at = $1, closed_by = $2
		WHERE id = $3 AND closed_at IS NULL
	`, closedAt, closedBy, id)
	if err != nil {
		return false, fmt.Errorf("failed to close election: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkAllClosed defensively closes every remaining open election. Self-heals
// from any earlier violation of the one-open-election invariant. Returns the
// ids it closed.
func (s *Store) MarkAllClosed(ctx context.Context, closedBy *int64, closedAt time.Time) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		UPDATE election
		SET closed_at = $1, closed_by = $2
		WHERE closed_at IS NULL
		RETURNING id
	`, closedAt, closedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to close open elections: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetWinner records the tallied winner. Set exactly once by the close
// transition; never overwritten.
func (s *Store) SetWinner(ctx context.Context, id, winnerID int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE election SET winner_id = $1 WHERE id = $2 AND winner_id IS NULL
	`, winnerID, id)
	if err != nil {
		return fmt.Errorf("failed to set winner: %w", err)
	}
	return nil
}

// SetBallotMessage links the public ballot post to the election.
func (s *Store) SetBallotMessage(ctx context.Context, id, messageID int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE election SET ballot_message_id = $1 WHERE id = $2
	`, messageID, id)
	if err != nil {
		return fmt.Errorf("failed to set ballot message: %w", err)
	}
	return nil
}

// FreezeReactions permanently disables indicator recomputation for an
// election.
func (s *Store) FreezeReactions(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE election SET reaction_frozen = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to freeze reactions: %w", err)
	}
	return nil
}

// PastWinners returns the set of book ids that have won any past election.
// A won book never recompetes.
func (s *Store) PastWinners(ctx context.Context) (map[int64]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT winner_id FROM election WHERE winner_id IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query past winners: %w", err)
	}
	defer rows.Close()

	winners := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		winners[id] = true
	}
	return winners, rows.Err()
}

// BallotAppearances counts, per book, how many closed-with-a-winner
// elections included it on their ballot. Ballots are small jsonb arrays, so
// the aggregation happens here rather than in SQL.
func (s *Store) BallotAppearances(ctx context.Context) (map[int64]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ballot FROM election WHERE winner_id IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballot history: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var ballot []int64
		if err := json.Unmarshal(raw, &ballot); err != nil {
			return nil, fmt.Errorf("failed to decode ballot history: %w", err)
		}
		for _, bookID := range ballot {
			counts[bookID]++
		}
	}
	return counts, rows.Err()
}

const electionColumns = `
	SELECT id, opener_id, opened_at, closes_at, closed_at, closed_by,
	       ballot, ballot_message_id, reaction_frozen, winner_id
	FROM election`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanElection(row rowScanner) (models.Election, error) {
	var e models.Election
	var ballotRaw []byte
	err := row.Scan(
		&e.ID, &e.OpenerID, &e.OpenedAt, &e.ClosesAt, &e.ClosedAt, &e.ClosedBy,
		&ballotRaw, &e.BallotMessageID, &e.ReactionFrozen, &e.WinnerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Election{}, ErrNotFound
	}
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to scan election: %w", err)
	}
	if err := json.Unmarshal(ballotRaw, &e.Ballot); err != nil {
		return models.Election{}, fmt.Errorf("failed to decode ballot: %w", err)
	}
	return e, nil
}
