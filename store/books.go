// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/avelis/clubvote/models"
)

// CreateBook inserts a new book and returns it with its assigned id.
func (s *Store) CreateBook(ctx context.Context, req models.CreateBookRequest) (models.Book, error) {
	book := models.Book{
		Title:       req.Title,
		Description: req.Description,
		Summary:     req.Summary,
		ISBN:        req.ISBN,
		Length:      req.Length,
		CreatedAt:   time.Now().UTC(),
	}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO book (title, description, summary, isbn, length, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, book.Title, book.Description, book.Summary, book.ISBN, book.Length, book.CreatedAt).Scan(&book.ID)
	if err != nil {
		return models.Book{}, fmt.Errorf("failed to insert book: %w", err)
	}
	return book, nil
}

// GetBook fetches a book by id. Returns ErrNotFound if it does not exist.
func (s *Store) GetBook(ctx context.Context, id int64) (models.Book, error) {
	var book models.Book
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, summary, isbn, length, created_at
		FROM book
		WHERE id = $1
	`, id).Scan(
		&book.ID, &book.Title, &book.Description, &book.Summary,
		&book.ISBN, &book.Length, &book.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, ErrNotFound
	}
	if err != nil {
		return models.Book{}, fmt.Errorf("failed to query book: %w", err)
	}
	return book, nil
}

// GetBookByISBN fetches a book by its external identifier. Returns
// ErrNotFound when no book carries that ISBN.
func (s *Store) GetBookByISBN(ctx context.Context, isbn string) (models.Book, error) {
	var book models.Book
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, summary, isbn, length, created_at
		FROM book
		WHERE isbn = $1
	`, isbn).Scan(
		&book.ID, &book.Title, &book.Description, &book.Summary,
		&book.ISBN, &book.Length, &book.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, ErrNotFound
	}
	if err != nil {
		return models.Book{}, fmt.Errorf("failed to query book by isbn: %w", err)
	}
	return book, nil
}

// EnsureBook returns the existing book carrying the request's ISBN, or
// inserts a new one. The bool reports whether a row was created. Requests
// without an ISBN always insert; titles alone are not unique enough to
// deduplicate on.
func (s *Store) EnsureBook(ctx context.Context, req models.CreateBookRequest) (models.Book, bool, error) {
	if req.ISBN != nil {
		book, err := s.GetBookByISBN(ctx, *req.ISBN)
		if err == nil {
			return book, false, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return models.Book{}, false, err
		}
	}

	book, err := s.CreateBook(ctx, req)
	if isUniqueViolation(err, "book_isbn_key") {
		// Lost a race with a concurrent insert of the same ISBN.
		book, err = s.GetBookByISBN(ctx, *req.ISBN)
		return book, false, err
	}
	if err != nil {
		return models.Book{}, false, err
	}
	return book, true, nil
}

// UpdateBookSummary sets the denormalized summary fields. The only mutation
// a book ever receives.
func (s *Store) UpdateBookSummary(ctx context.Context, id int64, description, summary *string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE book
		SET description = COALESCE($1, description),
		    summary = COALESCE($2, summary)
		WHERE id = $3
	`, description, summary, id)
	if err != nil {
		return fmt.Errorf("failed to update book summary: %w", err)
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

// GetBooks fetches several books at once, keyed by id. Missing ids are
// simply absent from the result.
func (s *Store) GetBooks(ctx context.Context, ids []int64) (map[int64]models.Book, error) {
	books := make(map[int64]models.Book, len(ids))
	if len(ids) == 0 {
		return books, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, summary, isbn, length, created_at
		FROM book
		WHERE id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var book models.Book
		if err := rows.Scan(
			&book.ID, &book.Title, &book.Description, &book.Summary,
			&book.ISBN, &book.Length, &book.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books[book.ID] = book
	}
	return books, rows.Err()
}
