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

// CreatePrediction records a member prediction with its due date.
func (s *Store) CreatePrediction(ctx context.Context, predictorID int64, text string, odds *float64, dueDate time.Time, messageID int64) (models.Prediction, error) {
	pred := models.Prediction{
		PredictorID: predictorID,
		Text:        text,
		Odds:        odds,
		DueDate:     dueDate,
		MessageID:   messageID,
		CreatedAt:   time.Now().UTC(),
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO prediction (predictor_id, text, odds, due_date, message_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, pred.PredictorID, pred.Text, pred.Odds, pred.DueDate, pred.MessageID, pred.CreatedAt).Scan(&pred.ID)
	if err != nil {
		return models.Prediction{}, fmt.Errorf("failed to insert prediction: %w", err)
	}
	return pred, nil
}

// GetPrediction fetches a prediction by id.
func (s *Store) GetPrediction(ctx context.Context, id int64) (models.Prediction, error) {
	var pred models.Prediction
	err := s.db.QueryRowContext(ctx, `
		SELECT id, predictor_id, text, odds, due_date, message_id, reminded, created_at
		FROM prediction
		WHERE id = $1
	`, id).Scan(
		&pred.ID, &pred.PredictorID, &pred.Text, &pred.Odds,
		&pred.DueDate, &pred.MessageID, &pred.Reminded, &pred.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Prediction{}, ErrNotFound
	}
	if err != nil {
		return models.Prediction{}, fmt.Errorf("failed to query prediction: %w", err)
	}
	return pred, nil
}

// DuePredictions returns predictions whose due date has arrived and that have
// not been reminded yet.
func (s *Store) DuePredictions(ctx context.Context, now time.Time) ([]models.Prediction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, predictor_id, text, odds, due_date, message_id, reminded, created_at
		FROM prediction
		WHERE reminded = FALSE AND due_date <= $1
		ORDER BY due_date, id
	`, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query due predictions: %w", err)
	}
	defer rows.Close()

	var out []models.Prediction
	for rows.Next() {
		var pred models.Prediction
		if err := rows.Scan(
			&pred.ID, &pred.PredictorID, &pred.Text, &pred.Odds,
			&pred.DueDate, &pred.MessageID, &pred.Reminded, &pred.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		out = append(out, pred)
	}
	return out, rows.Err()
}

// MarkReminded flags a prediction so its reminder is never sent twice.
func (s *Store) MarkReminded(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE prediction SET reminded = TRUE WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to mark prediction reminded: %w", err)
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
