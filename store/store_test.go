package store

import (
	"context"
	"testing"
	"time"

	"github.com/avelis/clubvote/models"
	"github.com/avelis/clubvote/testutil"
)

func TestOneOpenElectionInvariant(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	s := New(conn)
	ctx := context.Background()

	now := time.Now().UTC()
	first, err := s.CreateElection(ctx, 1, now, now.Add(72*time.Hour), []int64{1, 2})
	if err != nil {
		t.Fatalf("first open failed: %v", err)
	}

	if _, err := s.CreateElection(ctx, 2, now, now.Add(72*time.Hour), []int64{3}); err != ErrElectionAlreadyOpen {
		t.Errorf("expected ErrElectionAlreadyOpen, got %v", err)
	}

	// Closing the first allows a second.
	flipped, err := s.MarkClosed(ctx, first.ID, nil, now)
	if err != nil || !flipped {
		t.Fatalf("close failed: flipped=%v err=%v", flipped, err)
	}
	if _, err := s.CreateElection(ctx, 2, now, now.Add(72*time.Hour), []int64{3}); err != nil {
		t.Errorf("open after close failed: %v", err)
	}
}

func TestMarkClosedFlipsOnce(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	s := New(conn)
	ctx := context.Background()

	now := time.Now().UTC()
	e, err := s.CreateElection(ctx, 1, now, now.Add(time.Hour), []int64{1})
	if err != nil {
		t.Fatal(err)
	}

	flipped, err := s.MarkClosed(ctx, e.ID, nil, now)
	if err != nil || !flipped {
		t.Fatalf("first close: flipped=%v err=%v", flipped, err)
	}
	flipped, err = s.MarkClosed(ctx, e.ID, nil, now)
	if err != nil {
		t.Fatal(err)
	}
	if flipped {
		t.Error("second close must not flip")
	}
}

func TestUpsertVotesReplacesWeight(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	s := New(conn)
	ctx := context.Background()

	book := testutil.CreateTestBook(t, conn, "x")
	electionID := testutil.CreateTestElection(t, conn, []int64{book}, true)

	if err := s.UpsertVotes(ctx, electionID, 900, []models.VoteEntry{{BookID: book, Weight: 3}}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertVotes(ctx, electionID, 900, []models.VoteEntry{{BookID: book, Weight: 1}}); err != nil {
		t.Fatal(err)
	}

	weights, err := s.VoterWeights(ctx, electionID, 900)
	if err != nil {
		t.Fatal(err)
	}
	if len(weights) != 1 || weights[book] != 1 {
		t.Errorf("expected single replaced weight 1, got %v", weights)
	}
}

func TestNominationUniquePerBook(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	s := New(conn)
	ctx := context.Background()

	book := testutil.CreateTestBook(t, conn, "x")
	if _, err := s.CreateNomination(ctx, models.CreateNominationRequest{BookID: book, NominatorID: 1, MessageID: 10}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateNomination(ctx, models.CreateNominationRequest{BookID: book, NominatorID: 2, MessageID: 11}); err != ErrNominationExists {
		t.Errorf("expected ErrNominationExists, got %v", err)
	}
}

func TestBallotAppearancesCountsOnlyWonElections(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	s := New(conn)
	ctx := context.Background()

	a := testutil.CreateTestBook(t, conn, "a")
	b := testutil.CreateTestBook(t, conn, "b")

	won := testutil.CreateTestElection(t, conn, []int64{a, b}, false)
	if err := s.SetWinner(ctx, won, a); err != nil {
		t.Fatal(err)
	}
	// A voteless election never gets a winner and never counts.
	testutil.CreateTestElection(t, conn, []int64{b}, false)

	counts, err := s.BallotAppearances(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts[a] != 1 || counts[b] != 1 {
		t.Errorf("expected one appearance each from the won election, got %v", counts)
	}

	winners, err := s.PastWinners(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !winners[a] || winners[b] {
		t.Errorf("expected only %d as winner, got %v", a, winners)
	}
}
