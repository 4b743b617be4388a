// Copyright (c) 2025 Ada Velis.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateBookRequest: title plus optional description, summary, isbn, length
  - CreateNominationRequest: book_id, nominator_id, message_id
  - OpenElectionRequest: opener_id, hours, ballot_size
  - CastVoteRequest: election_id, voter_id, entries, is_member
  - CloseElectionRequest: closed_by
  - CreatePredictionRequest: predictor_id, text, odds, due_date

# Response Types

Types for JSON responses:

  - OpenElectionResponse: id, ballot, ballot_details, opened_at, closes_at
  - CloseElectionResponse: id, closed_at, winner, results
  - BallotPreviewResponse: candidates
  - ErrorResponse: detail

Every error body is an ErrorResponse with a single human-readable detail
string.

# Domain Types

Internal data structures:

  - Book: a nominable item, created once per ISBN
  - Nomination: a member's proposal of a Book, with its engagement count
  - Election: one voting round with a fixed ordered ballot
  - Vote: one voter's weight for one book in one election
  - Candidate: a scored, ranked ballot-selection entry
  - BookResult: a tallied total for one ballot book
  - Prediction: a member prediction with a reminder date

# Constants

Voter tiers (vote-weight caps are configured per tier):

	TierMember = "member"
	TierPublic = "public"
*/
package models
