// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avelis/clubvote/models"
)

// ErrNotNominator is returned when someone other than the original nominator
// tries to cancel a nomination.
var ErrNotNominator = errors.New("only the original nominator may cancel a nomination")

// CreateNomination inserts a live nomination for a book. Returns
// ErrNominationExists if the book already has one.
func (s *Store) CreateNomination(ctx context.Context, req models.CreateNominationRequest) (models.Nomination, error) {
	nom := models.Nomination{
		BookID:      req.BookID,
		NominatorID: req.NominatorID,
		MessageID:   req.MessageID,
		Reactions:   req.Reactions,
		CreatedAt:   time.Now().UTC(),
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO nomination (book_id, nominator_id, message_id, reactions, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, nom.BookID, nom.NominatorID, nom.MessageID, nom.Reactions, nom.CreatedAt).Scan(&nom.ID)
	if isUniqueViolation(err, "nomination_book_id_key") {
		return models.Nomination{}, ErrNominationExists
	}
	if err != nil {
		return models.Nomination{}, fmt.Errorf("failed to insert nomination: %w", err)
	}
	return nom, nil
}

// GetNomination fetches a nomination by id.
func (s *Store) GetNomination(ctx context.Context, id int64) (models.Nomination, error) {
	var nom models.Nomination
	err := s.db.QueryRowContext(ctx, `
		SELECT id, book_id, nominator_id, message_id, reactions, created_at
		FROM nomination
		WHERE id = $1
	`, id).Scan(&nom.ID, &nom.BookID, &nom.NominatorID, &nom.MessageID, &nom.Reactions, &nom.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Nomination{}, ErrNotFound
	}
	if err != nil {
		return models.Nomination{}, fmt.Errorf("failed to query nomination: %w", err)
	}
	return nom, nil
}

// UpdateNominationReactions overwrites a nomination's engagement count.
func (s *Store) UpdateNominationReactions(ctx context.Context, id int64, reactions int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE nomination SET reactions = $1 WHERE id = $2
	`, reactions, id)
	if err != nil {
		return fmt.Errorf("failed to update nomination reactions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CancelNomination deletes a nomination on behalf of its original nominator.
// Returns ErrNotNominator when requesterID does not match.
func (s *Store) CancelNomination(ctx context.Context, id, requesterID int64) error {
	nom, err := s.GetNomination(ctx, id)
	if err != nil {
		return err
	}
	if nom.NominatorID != requesterID {
		return ErrNotNominator
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM nomination WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete nomination: %w", err)
	}
	return nil
}

// CandidateRow is one joined row of the candidate pool: a nominated book with
// its live nomination and all-time vote sum.
type CandidateRow struct {
	BookID       int64
	Title        string
	CreatedAt    time.Time
	NominationID int64
	NominatorID  int64
	MessageID    int64
	Reactions    int
	VoteSum      float64
}

// ListCandidates returns every book with a live nomination, joined with its
// cumulative vote weight across all elections. Ordered by book id for
// deterministic iteration.
func (s *Store) ListCandidates(ctx context.Context) ([]CandidateRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.title, b.created_at,
		       n.id, n.nominator_id, n.message_id, n.reactions,
		       COALESCE(v.vote_sum, 0)
		FROM book b
		JOIN nomination n ON n.book_id = b.id
		LEFT JOIN (
			SELECT book_id, SUM(weight) AS vote_sum
			FROM vote
			GROUP BY book_id
		) v ON v.book_id = b.id
		ORDER BY b.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var out []CandidateRow
	for rows.Next() {
		var c CandidateRow
		if err := rows.Scan(
			&c.BookID, &c.Title, &c.CreatedAt,
			&c.NominationID, &c.NominatorID, &c.MessageID, &c.Reactions,
			&c.VoteSum,
		); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
