package handlers

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"

	_ "github.com/lib/pq"

	"github.com/avelis/clubvote/ballot"
	"github.com/avelis/clubvote/cliparse"
	"github.com/avelis/clubvote/election"
	"github.com/avelis/clubvote/indicator"
	"github.com/avelis/clubvote/store"
	"github.com/avelis/clubvote/testutil"
)

// testEnv bundles everything a handler test needs: a clean database, the
// wired domain services, and a scriptable chat fake.
type testEnv struct {
	conn    *sql.DB
	store   *store.Store
	chat    *testutil.FakeChat
	cfg     cliparse.Config
	builder *ballot.Builder
	manager *election.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	cfg := testutil.GetTestConfig()
	st := store.New(conn)
	fake := testutil.NewFakeChat()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	builder := ballot.NewBuilder(st, fake, cfg.NomChannelID, logger)
	syncer := indicator.NewSyncer(st, fake, cfg.BallotChannelID, logger)
	manager := election.NewManager(st, fake, builder, syncer, cfg, logger)

	return &testEnv{
		conn:    conn,
		store:   st,
		chat:    fake,
		cfg:     cfg,
		builder: builder,
		manager: manager,
	}
}

// nominate creates a book with a live nomination and scripts its reactors.
// The nomination message id follows the testutil convention (bookID*1000).
func (e *testEnv) nominate(t *testing.T, title string, nominatorID int64, reactors ...int64) int64 {
	t.Helper()
	bookID := testutil.CreateTestBook(t, e.conn, title)
	testutil.CreateTestNomination(t, e.conn, bookID, nominatorID, 0)
	e.chat.Reactors[bookID*1000] = reactors
	return bookID
}

func adminHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{"X-Admin-Token": cfg.AdminToken}
}
