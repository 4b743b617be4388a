package chat

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/channels/100/messages", r.URL.Path)
		assert.Equal(t, "Bot secret", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"content": "hello"}`, string(body))

		w.Write([]byte(`{"id": "987654321"}`))
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "secret", testLogger())
	msg, err := c.SendMessage(context.Background(), 100, "hello")
	require.NoError(t, err)
	assert.Equal(t, int64(987654321), msg.ID)
	assert.Equal(t, int64(100), msg.ChannelID)
}

func TestReactionsRoundTrip(t *testing.T) {
	var gotPaths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.Method+" "+r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "secret", testLogger())
	require.NoError(t, c.AddReaction(context.Background(), 100, 200, "3️⃣"))
	require.NoError(t, c.RemoveOwnReaction(context.Background(), 100, 200, "3️⃣"))

	require.Len(t, gotPaths, 2)
	assert.Contains(t, gotPaths[0], "PUT /channels/100/messages/200/reactions/")
	assert.Contains(t, gotPaths[0], "/@me")
	assert.Contains(t, gotPaths[1], "DELETE /channels/100/messages/200/reactions/")
}

func TestDistinctReactorsDeduplicates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/channels/100/messages/200":
			w.Write([]byte(`{"reactions": [{"emoji": {"name": "👍"}}, {"emoji": {"name": "🔥"}}]}`))
		default:
			// Same user reacted with both emoji; they count once.
			w.Write([]byte(`[{"id": "7"}, {"id": "8"}]`))
		}
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "secret", testLogger())
	reactors, err := c.DistinctReactors(context.Background(), 100, 200)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8}, reactors)
}

func TestMissingMessageIsErrNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewRESTClient(srv.URL, "secret", testLogger())
	_, err := c.DistinctReactors(context.Background(), 100, 200)
	assert.ErrorIs(t, err, ErrNotFound)
}
