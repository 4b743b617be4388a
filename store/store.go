// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a requested book, nomination, election,
	// or prediction does not exist.
	ErrNotFound = errors.New("not found")

	// ErrElectionAlreadyOpen is returned when creating an election would
	// violate the one-open-election invariant.
	ErrElectionAlreadyOpen = errors.New("an election is already open")

	// ErrNominationExists is returned when a book already has a live
	// nomination.
	ErrNominationExists = errors.New("book already has a live nomination")
)

// Store provides typed access to the backing PostgreSQL database. All
// invariants (one open election, one vote row per voter/book/election, one
// live nomination per book) are enforced by the schema, not in-process, so
// multiple server instances can share one database.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, optionally on a specific constraint name.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code != "23505" {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
