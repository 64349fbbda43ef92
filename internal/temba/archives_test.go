package temba

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeArchiveFile(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.jsonl.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	for _, line := range lines {
		_, err := gz.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
	return path
}

func TestArchiveReaderIteratesLines(t *testing.T) {
	path := writeArchiveFile(t, []string{
		`{"id": 1, "type": "flow"}`,
		``,
		`{"id": 2, "type": "inbox"}`,
	})

	r, err := OpenArchive(path)
	require.NoError(t, err)
	defer r.Close()

	first, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, float64(1), first["id"])

	second, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, "inbox", second["type"])

	_, err = r.Next()
	require.Equal(t, io.EOF, err)
}

func TestArchiveReaderBadLine(t *testing.T) {
	path := writeArchiveFile(t, []string{`{"id": 1}`, `{broken`})

	r, err := OpenArchive(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.Error(t, err)
}

func TestListArchivesPassesFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "run", q.Get("archive_type"))
		require.Equal(t, "monthly", q.Get("period"))
		require.Equal(t, "2025-01-01T00:00:00Z", q.Get("after"))
		fmt.Fprint(w, `{"next": null, "results": [
			{"archive_type": "run", "period": "monthly", "start_date": "2025-02-01", "record_count": 1234, "download_url": "https://files.example.org/runs.jsonl.gz"}
		]}`)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	after := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	archives, err := c.ListArchives(context.Background(), "run", "monthly", &after)
	require.NoError(t, err)
	require.Len(t, archives, 1)
	require.Equal(t, int64(1234), archives[0].RecordCount)
	require.Equal(t, "https://files.example.org/runs.jsonl.gz", archives[0].DownloadURL)
}

func TestDownloadArchiveWritesTempFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gz := gzip.NewWriter(w)
		fmt.Fprintln(gz, `{"id": 9}`)
		gz.Close()
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	path, err := c.DownloadArchive(context.Background(), srv.URL+"/archive.jsonl.gz")
	require.NoError(t, err)
	defer os.Remove(path)

	r, err := OpenArchive(path)
	require.NoError(t, err)
	defer r.Close()

	rec, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, float64(9), rec["id"])
}

func TestDownloadArchiveServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.DownloadArchive(context.Background(), srv.URL+"/x.jsonl.gz")
	require.True(t, IsTransient(err))
}
