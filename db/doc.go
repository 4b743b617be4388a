// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db applies the database schema via embedded goose migrations.

# Migrations

Migrate runs all pending migrations on startup:

	if err := db.Migrate(ctx, conn); err != nil {
		log.Fatal(err)
	}

Migration files live in migrations/*.sql and are embedded into the binary,
so the server needs no filesystem access at runtime.

# Tables

  - book: nominable items, one row per ISBN
  - nomination: live nominations, at most one per book
  - election: voting rounds with a jsonb ballot of book ids
  - vote: one row per (election, voter, book)
  - prediction: member predictions with reminder dates

# Invariants enforced here

  - one_open_election: a partial unique index permits at most one election
    row with a NULL closed_at
  - vote primary key (election_id, voter_id, book_id): resubmission can only
    ever overwrite, never duplicate
  - nomination.book_id UNIQUE: one live nomination per book
*/
package db
