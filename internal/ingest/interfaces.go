package ingest

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"rapidpro_warehouse/internal/domain"
	"rapidpro_warehouse/internal/temba"
)

// CheckpointStore persists sync progress per (org, collection,
// subcollection) triple. Get returns nil when no checkpoint exists yet.
// CreateAndStart is a single atomic insert; the unique constraint on the
// triple makes a concurrent duplicate fail loudly, which is the system's
// only concurrency guard.
type CheckpointStore interface {
	Get(ctx context.Context, orgID int64, collection, subcollection string) (*domain.SyncCheckpoint, error)
	CreateAndStart(ctx context.Context, orgID int64, collection, subcollection string, startedAt time.Time) (*domain.SyncCheckpoint, error)
	Restart(ctx context.Context, id int64, startedAt time.Time) error
	SetFinished(ctx context.Context, id int64, savedAt time.Time) error
}

// RecordStore is the warehouse side of the pipeline.
type RecordStore interface {
	Count(ctx context.Context, orgID int64, collection string) (int64, error)
	FindByUUID(ctx context.Context, orgID int64, collection, uuid string) (*domain.Record, error)
	FindByRapidproID(ctx context.Context, orgID int64, collection string, rapidproID int64) (*domain.Record, error)
	BulkSave(ctx context.Context, records []*domain.Record) error
}

// OrganizationStore persists organizations.
type OrganizationStore interface {
	UpsertByToken(ctx context.Context, org *domain.Organization) (*domain.Organization, error)
	GetByToken(ctx context.Context, token string) (*domain.Organization, error)
	ListActive(ctx context.Context) ([]*domain.Organization, error)
}

// RemoteClient is the per-organization remote API surface the engine needs.
type RemoteClient interface {
	GetOrg(ctx context.Context) (temba.Record, error)
	ListOp(collection string) temba.FetchOp
	GetByUUID(ctx context.Context, collection, uuid string) (temba.Record, bool, error)
	ListArchives(ctx context.Context, archiveType, period string, after *time.Time) ([]temba.Archive, error)
	DownloadArchive(ctx context.Context, downloadURL string) (string, error)
}

// ClientFactory builds a remote client for an organization's credentials.
type ClientFactory interface {
	ForOrg(org *domain.Organization) RemoteClient
}

// ResolutionCache remembers which referenced objects already exist locally,
// so repeated get-or-fetch lookups of the same contact or flow skip the
// database. Optional; a nil cache disables it.
type ResolutionCache interface {
	Get(ctx context.Context, key string) (int64, bool, error)
	Set(ctx context.Context, key string, id int64) error
}
