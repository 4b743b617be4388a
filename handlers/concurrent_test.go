package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/avelis/clubvote/models"
	"github.com/avelis/clubvote/testutil"
)

// TestConcurrentVoteSubmissions verifies that simultaneous submissions from
// different voters all land without corruption or duplicate rows.
func TestConcurrentVoteSubmissions(t *testing.T) {
	env := newTestEnv(t)
	h := NewVoteHandler(env.manager)

	bookID := testutil.CreateTestBook(t, env.conn, "Solaris")
	electionID := testutil.CreateTestElection(t, env.conn, []int64{bookID}, true)

	numVoters := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{
				ElectionID: electionID,
				VoterID:    int64(900 + voterIdx),
				Entries:    []models.VoteEntry{{BookID: bookID, Weight: float64(voterIdx%3 + 1)}},
				Member:     true,
			}, nil)
			w := httptest.NewRecorder()
			h.CastVote(w, req)

			if w.Code == http.StatusNoContent {
				successCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	var rows int
	if err := env.conn.QueryRow(`
		SELECT COUNT(*) FROM vote WHERE election_id = $1
	`, electionID).Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != numVoters {
		t.Errorf("expected one row per voter, got %d", rows)
	}
}

// TestConcurrentRevotesAreIdempotent hammers one voter's row from several
// goroutines; the composite key guarantees a single row survives.
func TestConcurrentRevotesAreIdempotent(t *testing.T) {
	env := newTestEnv(t)
	h := NewVoteHandler(env.manager)

	bookID := testutil.CreateTestBook(t, env.conn, "Solaris")
	electionID := testutil.CreateTestElection(t, env.conn, []int64{bookID}, true)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{
				ElectionID: electionID,
				VoterID:    900,
				Entries:    []models.VoteEntry{{BookID: bookID, Weight: 2}},
				Member:     true,
			}, nil)
			w := httptest.NewRecorder()
			h.CastVote(w, req)
		}()
	}
	wg.Wait()

	var rows int
	if err := env.conn.QueryRow(`
		SELECT COUNT(*) FROM vote WHERE election_id = $1 AND voter_id = 900
	`, electionID).Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Errorf("expected exactly one vote row, got %d", rows)
	}
}

// TestConcurrentCloses races several closers; exactly one wins.
func TestConcurrentCloses(t *testing.T) {
	env := newTestEnv(t)
	h := NewElectionHandler(env.store, env.manager, env.builder, env.cfg)

	bookID := testutil.CreateTestBook(t, env.conn, "Solaris")
	electionID := testutil.CreateTestElection(t, env.conn, []int64{bookID}, true)
	testutil.CastTestVote(t, env.conn, electionID, 900, bookID, 2)

	idStr := strconv.FormatInt(electionID, 10)
	path := "/elections/" + idStr + "/close"

	var okCount, conflictCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", path, nil, adminHeaders(env.cfg))
			req.SetPathValue("id", idStr)
			w := httptest.NewRecorder()
			h.CloseElection(w, req)

			switch w.Code {
			case http.StatusOK:
				okCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			default:
				t.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
			}
		}()
	}
	wg.Wait()

	if okCount.Load() != 1 {
		t.Errorf("expected exactly one winner of the close race, got %d", okCount.Load())
	}
	if conflictCount.Load() != 5 {
		t.Errorf("expected 5 conflicts, got %d", conflictCount.Load())
	}

	// The winner is recorded once despite the race.
	var winnerID int64
	if err := env.conn.QueryRow(`
		SELECT winner_id FROM election WHERE id = $1
	`, electionID).Scan(&winnerID); err != nil {
		t.Fatal(err)
	}
	if winnerID != bookID {
		t.Errorf("expected winner %d, got %d", bookID, winnerID)
	}
}
