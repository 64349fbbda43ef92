package temba

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, server string) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewClient(Config{
		Server:            server,
		Token:             "test-token",
		RequestsPerSecond: 1000,
		RateRetries:       2,
		RateWait:          time.Millisecond,
	}, logger)
}

func drain(t *testing.T, stream RecordStream) []Record {
	t.Helper()
	var recs []Record
	for {
		rec, err := stream.Next()
		if err == io.EOF {
			return recs
		}
		require.NoError(t, err)
		recs = append(recs, rec)
	}
}

func TestCursorFollowsNextLinks(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Token test-token", r.Header.Get("Authorization"))
		switch r.URL.Query().Get("cursor") {
		case "":
			fmt.Fprintf(w, `{"next": %q, "results": [{"uuid": "a"}, {"uuid": "b"}]}`, srv.URL+"/api/v2/groups.json?cursor=2")
		case "2":
			fmt.Fprint(w, `{"next": null, "results": [{"uuid": "c"}]}`)
		default:
			t.Fatalf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	stream, err := c.ListOp("groups").Fetch(context.Background(), nil)
	require.NoError(t, err)

	recs := drain(t, stream)
	require.Len(t, recs, 3)
	require.Equal(t, "a", recs[0]["uuid"])
	require.Equal(t, "c", recs[2]["uuid"])
}

func TestFetchEncodesArgs(t *testing.T) {
	after := time.Date(2025, 2, 3, 4, 5, 6, 0, time.FixedZone("X", 3600))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "2025-02-03T03:05:06Z", q.Get("after"))
		require.Equal(t, "inbox", q.Get("folder"))
		fmt.Fprint(w, `{"next": null, "results": []}`)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	stream, err := c.ListOp("messages").Fetch(context.Background(), map[string]any{
		"after":  after,
		"folder": "inbox",
	})
	require.NoError(t, err)
	require.Empty(t, drain(t, stream))
}

func TestFetchRejectsUnsupportedArg(t *testing.T) {
	c := testClient(t, "http://unused")
	_, err := c.ListOp("messages").Fetch(context.Background(), map[string]any{"after": []string{"x"}})
	require.Error(t, err)
}

func TestGetByUUID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("uuid") {
		case "present":
			fmt.Fprint(w, `{"next": null, "results": [{"uuid": "present", "name": "Amina"}]}`)
		case "absent":
			fmt.Fprint(w, `{"next": null, "results": []}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	ctx := context.Background()

	rec, found, err := c.GetByUUID(ctx, "contacts", "present")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Amina", rec["name"])

	_, found, err = c.GetByUUID(ctx, "contacts", "absent")
	require.NoError(t, err)
	require.False(t, found)

	_, found, err = c.GetByUUID(ctx, "contacts", "gone-entirely")
	require.NoError(t, err)
	require.False(t, found)
}

func TestTokenErrorIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.GetOrg(context.Background())

	var ae *APIError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, ErrorKindToken, ae.Kind)
	require.False(t, IsTransient(err))
}

func TestRateLimitRetriesThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"name": "Test Org"}`)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	rec, err := c.GetOrg(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Test Org", rec["name"])
	require.Equal(t, 2, calls)
}

func TestRateLimitExhaustsRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.GetOrg(context.Background())

	var ae *APIError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, ErrorKindRateExceeded, ae.Kind)
	require.True(t, IsTransient(err))
	require.Equal(t, 3, calls) // initial attempt plus two retries
}

func TestServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.GetOrg(context.Background())
	require.True(t, IsTransient(err))
}
