package ingest

import (
	"context"
	"io"
	"log/slog"
	"os"

	"rapidpro_warehouse/internal/temba"
)

// archiveStream presents a list of remote archives as one flat record
// stream. Archives are downloaded lazily, one at a time, and each temp file
// is removed as soon as it is exhausted.
type archiveStream struct {
	ctx     context.Context
	client  RemoteClient
	pending []temba.Archive
	reader  *temba.ArchiveReader
	path    string
	logger  *slog.Logger
}

func newArchiveStream(ctx context.Context, client RemoteClient, archives []temba.Archive, logger *slog.Logger) *archiveStream {
	return &archiveStream{ctx: ctx, client: client, pending: archives, logger: logger}
}

func (s *archiveStream) Next() (temba.Record, error) {
	for {
		if s.reader != nil {
			rec, err := s.reader.Next()
			if err == nil {
				return rec, nil
			}
			if err != io.EOF {
				s.discard()
				return nil, err
			}
			s.discard()
		}

		var a temba.Archive
		for s.reader == nil {
			if len(s.pending) == 0 {
				return nil, io.EOF
			}
			a, s.pending = s.pending[0], s.pending[1:]
			if a.DownloadURL == "" || a.RecordCount == 0 {
				continue
			}
			s.logger.Debug("downloading archive",
				"type", a.ArchiveType,
				"period", a.Period,
				"start_date", a.StartDate,
				"records", a.RecordCount,
			)
			path, err := s.client.DownloadArchive(s.ctx, a.DownloadURL)
			if err != nil {
				return nil, err
			}
			reader, err := temba.OpenArchive(path)
			if err != nil {
				os.Remove(path)
				return nil, err
			}
			s.reader, s.path = reader, path
		}
	}
}

// Close releases the current archive, if any. Safe to call after EOF.
func (s *archiveStream) Close() {
	s.discard()
}

func (s *archiveStream) discard() {
	if s.reader == nil {
		return
	}
	s.reader.Close()
	if err := os.Remove(s.path); err != nil {
		s.logger.Warn("removing archive temp file", "path", s.path, "error", err)
	}
	s.reader, s.path = nil, ""
}
