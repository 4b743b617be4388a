// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"
)

var (
	// ErrNoOpenElection is returned when an operation needs an open
	// election and none exists.
	ErrNoOpenElection = errors.New("no election is currently open")

	// ErrElectionClosed is returned when acting on an election that has
	// already been closed.
	ErrElectionClosed = errors.New("election is already closed")

	// ErrNoEligibleCandidates is returned when ballot selection produces an
	// empty ballot, so there is nothing to vote on.
	ErrNoEligibleCandidates = errors.New("no eligible candidates for a ballot")
)

// WeightCapError reports a vote submission whose quadratic cost exceeds the
// voter's cap.
type WeightCapError struct {
	Cost float64
	Cap  int
}

func (e *WeightCapError) Error() string {
	return fmt.Sprintf("vote cost %g exceeds cap %d", e.Cost, e.Cap)
}

// InvalidEntryError reports a malformed vote entry: a book that is not on
// the ballot, or the same book listed twice.
type InvalidEntryError struct {
	BookID int64
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid vote for book %d: %s", e.BookID, e.Reason)
}
