// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the typed data-access layer over PostgreSQL.

Every method takes a context and returns explicit errors; callers branch on
the exported sentinels (ErrNotFound, ErrElectionAlreadyOpen,
ErrNominationExists, ErrNotNominator) rather than inspecting SQL errors.

The hard invariants live in the schema so they hold across concurrent
requests and multiple server processes:

  - at most one open election, via a partial unique index on
    election rows WHERE closed_at IS NULL
  - one weight per (election, voter, book), via the vote table's composite
    primary key; UpsertVotes turns resubmission into an update
  - one live nomination per book, via a unique constraint on
    nomination.book_id

Close transitions go through MarkClosed, whose affected-rows count tells the
caller whether it won the race to close, and MarkAllClosed, which defensively
sweeps up any stragglers.
*/
package store
