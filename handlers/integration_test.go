package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/avelis/clubvote/indicator"
	"github.com/avelis/clubvote/metadata"
	"github.com/avelis/clubvote/models"
	"github.com/avelis/clubvote/testutil"
)

// TestFullElectionWorkflow walks an election from nomination to winner:
// nominate, preview, open, vote under the quadratic cap, watch the turnout
// indicator, close, and confirm the winner leaves the pool.
func TestFullElectionWorkflow(t *testing.T) {
	env := newTestEnv(t)

	bookHandler := NewBookHandler(env.store, metadata.Noop{}, metadata.Noop{})
	nomHandler := NewNominationHandler(env.store)
	electionHandler := NewElectionHandler(env.store, env.manager, env.builder, env.cfg)
	voteHandler := NewVoteHandler(env.manager)

	// Step 1: add two books through the API.
	var dune, hyperion models.Book
	for _, title := range []string{"Dune", "Hyperion"} {
		req := testutil.MakeRequest("POST", "/books", models.CreateBookRequest{Title: title}, nil)
		w := httptest.NewRecorder()
		bookHandler.CreateBook(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
		if title == "Dune" {
			testutil.AssertJSON(t, w, &dune)
		} else {
			testutil.AssertJSON(t, w, &hyperion)
		}
	}

	// Step 2: nominate both and script chat engagement.
	for i, book := range []models.Book{dune, hyperion} {
		req := testutil.MakeRequest("POST", "/nominations", models.CreateNominationRequest{
			BookID:      book.ID,
			NominatorID: int64(10 + i),
			MessageID:   book.ID * 1000,
		}, nil)
		w := httptest.NewRecorder()
		nomHandler.CreateNomination(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}
	env.chat.Reactors[dune.ID*1000] = []int64{301, 302, 303}
	env.chat.Reactors[hyperion.ID*1000] = []int64{304}

	// Step 3: preview matches what open will produce.
	req := testutil.MakeRequest("GET", "/elections/ballot-preview", nil, nil)
	w := httptest.NewRecorder()
	electionHandler.BallotPreview(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var preview models.BallotPreviewResponse
	testutil.AssertJSON(t, w, &preview)
	if len(preview.Candidates) != 2 || preview.Candidates[0].BookID != dune.ID {
		t.Fatalf("unexpected preview: %+v", preview.Candidates)
	}

	// Step 4: open the election.
	req = testutil.MakeRequest("POST", "/elections",
		models.OpenElectionRequest{OpenerID: 1, Hours: 48}, adminHeaders(env.cfg))
	w = httptest.NewRecorder()
	electionHandler.OpenElection(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var opened models.OpenElectionResponse
	testutil.AssertJSON(t, w, &opened)
	if got := opened.ClosesAt.Sub(opened.OpenedAt); got != 48*time.Hour {
		t.Errorf("expected requested 48h duration, got %v", got)
	}

	// Step 5: two voters cast capped votes.
	votes := []models.CastVoteRequest{
		{VoterID: 700, Member: true, Entries: []models.VoteEntry{
			{BookID: dune.ID, Weight: 3}, {BookID: hyperion.ID, Weight: 2},
		}},
		{VoterID: 701, Entries: []models.VoteEntry{
			{BookID: hyperion.ID, Weight: 3},
		}},
	}
	for _, v := range votes {
		req = testutil.MakeRequest("POST", "/votes", v, nil)
		w = httptest.NewRecorder()
		voteHandler.CastVote(w, req)
		testutil.AssertStatus(t, w, http.StatusNoContent)
	}

	// Step 6: the turnout indicator reflects two distinct voters.
	e, err := env.store.GetOpenElection(req.Context())
	if err != nil {
		t.Fatal(err)
	}
	if e.BallotMessageID == nil {
		t.Fatal("ballot message missing")
	}
	reactions := env.chat.Reactions[*e.BallotMessageID]
	found := false
	for _, emoji := range reactions {
		if emoji == indicator.EmojiFor(2) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected indicator %q, have %v", indicator.EmojiFor(2), reactions)
	}

	// Step 7: close and check the tally. Hyperion: 2+3=5, Dune: 3.
	path := "/elections/" + strconv.FormatInt(opened.ID, 10) + "/close"
	req = testutil.MakeRequest("POST", path,
		models.CloseElectionRequest{ClosedBy: &votes[0].VoterID}, adminHeaders(env.cfg))
	req.SetPathValue("id", strconv.FormatInt(opened.ID, 10))
	w = httptest.NewRecorder()
	electionHandler.CloseElection(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var closed models.CloseElectionResponse
	testutil.AssertJSON(t, w, &closed)
	if closed.Winner == nil || closed.Winner.BookID != hyperion.ID {
		t.Fatalf("expected Hyperion to win, got %+v", closed.Winner)
	}
	if closed.Winner.TotalVotes != 5 {
		t.Errorf("expected 5 votes, got %g", closed.Winner.TotalVotes)
	}

	// Step 8: no open election remains and the winner left the pool.
	if _, err := env.store.GetOpenElection(req.Context()); err == nil {
		t.Error("election still open after close")
	}

	req = testutil.MakeRequest("GET", "/elections/ballot-preview", nil, nil)
	w = httptest.NewRecorder()
	electionHandler.BallotPreview(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &preview)
	for _, c := range preview.Candidates {
		if c.BookID == hyperion.ID {
			t.Error("winner is still in the candidate pool")
		}
	}
}

// TestElectionWithNoVotesHasNoWinner closes an untouched election.
func TestElectionWithNoVotesHasNoWinner(t *testing.T) {
	env := newTestEnv(t)
	electionHandler := NewElectionHandler(env.store, env.manager, env.builder, env.cfg)

	bookID := env.nominate(t, "unread", 10, 801)
	electionID := testutil.CreateTestElection(t, env.conn, []int64{bookID}, true)

	path := "/elections/" + strconv.FormatInt(electionID, 10) + "/close"
	req := testutil.MakeRequest("POST", path, nil, adminHeaders(env.cfg))
	req.SetPathValue("id", strconv.FormatInt(electionID, 10))
	w := httptest.NewRecorder()
	electionHandler.CloseElection(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var closed models.CloseElectionResponse
	testutil.AssertJSON(t, w, &closed)
	if closed.Winner != nil {
		t.Errorf("voteless election should have no winner, got %+v", closed.Winner)
	}

	// With no winner recorded, the book stays available.
	req = testutil.MakeRequest("GET", "/elections/ballot-preview", nil, nil)
	w = httptest.NewRecorder()
	electionHandler.BallotPreview(w, req)

	var preview models.BallotPreviewResponse
	testutil.AssertJSON(t, w, &preview)
	if len(preview.Candidates) != 1 || preview.Candidates[0].BookID != bookID {
		t.Errorf("book should return to the pool, got %+v", preview.Candidates)
	}
}
