package scheduler

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"rapidpro_warehouse/internal/domain"
	"rapidpro_warehouse/internal/ingest"
)

type Syncer interface {
	SyncAllData(ctx context.Context, org *domain.Organization, coll *ingest.Collection, returnObjs bool) ([]*domain.Record, error)
}

type OrganizationLister interface {
	ListActive(ctx context.Context) ([]*domain.Organization, error)
	GetByToken(ctx context.Context, token string) (*domain.Organization, error)
}

type Notifier interface {
	Publish(ctx context.Context, event *domain.SyncEvent) error
	Close() error
}
