// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/avelis/clubvote/models"
)

// UpsertVotes writes a voter's weights for one election in a single
// transaction. The composite primary key (election_id, voter_id, book_id)
// makes resubmission an update, not a duplicate: revoting for the same book
// replaces the weight, and weights for books the new submission omits are
// left untouched.
func (s *Store) UpsertVotes(ctx context.Context, electionID, voterID int64, entries []models.VoteEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vote (election_id, voter_id, book_id, weight)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (election_id, voter_id, book_id)
		DO UPDATE SET weight = EXCLUDED.weight
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare vote upsert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, electionID, voterID, e.BookID, e.Weight); err != nil {
			return fmt.Errorf("failed to upsert vote for book %d: %w", e.BookID, err)
		}
	}
	return tx.Commit()
}

// VoterWeights returns a voter's current weights in one election, keyed by
// book id.
func (s *Store) VoterWeights(ctx context.Context, electionID, voterID int64) (map[int64]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT book_id, weight
		FROM vote
		WHERE election_id = $1 AND voter_id = $2
	`, electionID, voterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query voter weights: %w", err)
	}
	defer rows.Close()

	weights := make(map[int64]float64)
	for rows.Next() {
		var bookID int64
		var weight float64
		if err := rows.Scan(&bookID, &weight); err != nil {
			return nil, err
		}
		weights[bookID] = weight
	}
	return weights, rows.Err()
}

// VoteTotals sums weights per book for one election.
func (s *Store) VoteTotals(ctx context.Context, electionID int64) (map[int64]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT book_id, SUM(weight)
		FROM vote
		WHERE election_id = $1
		GROUP BY book_id
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vote totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[int64]float64)
	for rows.Next() {
		var bookID int64
		var total float64
		if err := rows.Scan(&bookID, &total); err != nil {
			return nil, err
		}
		totals[bookID] = total
	}
	return totals, rows.Err()
}

// DistinctVoters counts how many distinct voters have cast at least one vote
// in an election. Drives the engagement indicator on the ballot post.
func (s *Store) DistinctVoters(ctx context.Context, electionID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT voter_id) FROM vote WHERE election_id = $1
	`, electionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct voters: %w", err)
	}
	return count, nil
}
