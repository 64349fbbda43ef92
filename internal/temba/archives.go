package temba

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Archive is one downloadable bulk export offered by the remote API as an
// alternative to paginated fetch for high-volume collections.
type Archive struct {
	ArchiveType string
	Period      string
	StartDate   string
	RecordCount int64
	DownloadURL string
}

// ListArchives fetches the archive descriptors of one type, optionally
// limited to those starting after a checkpoint time.
func (c *Client) ListArchives(ctx context.Context, archiveType, period string, after *time.Time) ([]Archive, error) {
	args := map[string]any{
		"archive_type": archiveType,
		"period":       period,
	}
	if after != nil {
		args["after"] = after.UTC()
	}
	stream, err := c.ListOp("archives").Fetch(ctx, args)
	if err != nil {
		return nil, err
	}
	var archives []Archive
	for {
		rec, err := stream.Next()
		if err == io.EOF {
			return archives, nil
		}
		if err != nil {
			return nil, err
		}
		a := Archive{
			ArchiveType: stringField(rec, "archive_type"),
			Period:      stringField(rec, "period"),
			StartDate:   stringField(rec, "start_date"),
			DownloadURL: stringField(rec, "download_url"),
		}
		if n, ok := rec["record_count"].(float64); ok {
			a.RecordCount = int64(n)
		}
		archives = append(archives, a)
	}
}

// DownloadArchive streams the archive file to a temporary file and returns
// its path. The caller removes the file when done.
func (c *Client) DownloadArchive(ctx context.Context, downloadURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("create archive request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &APIError{Kind: ErrorKindConnection, Msg: "download archive", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Kind: ErrorKindConnection, Status: resp.StatusCode, Msg: "download archive"}
	}

	f, err := os.CreateTemp("", "rapidpro-archive-*.jsonl.gz")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", &APIError{Kind: ErrorKindConnection, Msg: "write archive", Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), nil
}

// ArchiveReader iterates the records of a gzipped JSON-lines archive file.
type ArchiveReader struct {
	f       *os.File
	gz      *gzip.Reader
	scanner *bufio.Scanner
}

func OpenArchive(path string) (*ArchiveReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	scanner := bufio.NewScanner(gz)
	// individual records can be large (flow runs with many values)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &ArchiveReader{f: f, gz: gz, scanner: scanner}, nil
}

func (r *ArchiveReader) Next() (Record, error) {
	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("decode archive line: %w", err)
		}
		return rec, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read archive: %w", err)
	}
	return nil, io.EOF
}

func (r *ArchiveReader) Close() error {
	r.gz.Close()
	return r.f.Close()
}

func stringField(rec Record, key string) string {
	s, _ := rec[key].(string)
	return s
}
