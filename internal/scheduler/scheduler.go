package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rapidpro_warehouse/internal/config"
	"rapidpro_warehouse/internal/domain"
	"rapidpro_warehouse/internal/ingest"
	"rapidpro_warehouse/internal/temba"
)

// Scheduler drives batch syncs: the cross product of organizations and
// collections, each pair isolated so one failure never stops the rest of
// the batch. In debug mode failures stop the batch instead, so a developer
// sees the first error rather than a wall of logs.
type Scheduler struct {
	syncer   Syncer
	orgs     OrganizationLister
	notifier Notifier
	retry    config.RetryConfig
	interval time.Duration
	debug    bool
	logger   *slog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewScheduler(syncer Syncer, orgs OrganizationLister, notifier Notifier, cfg *config.Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer:   syncer,
		orgs:     orgs,
		notifier: notifier,
		retry:    cfg.API.Retry,
		interval: cfg.Sync.Interval,
		debug:    cfg.Debug,
		logger:   logger,
		sleep:    sleepCtx,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runBatch(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runBatch(ctx)
		}
	}
}

func (s *Scheduler) runBatch(ctx context.Context) {
	if err := s.RunOnce(ctx, nil, nil); err != nil {
		s.logger.Error("sync batch failed", "error", err)
	}
}

// RunOnce syncs the given organizations and collections once. Empty slices
// mean all active organizations and all known collections.
func (s *Scheduler) RunOnce(ctx context.Context, orgTokens, collectionNames []string) error {
	orgs, err := s.resolveOrgs(ctx, orgTokens)
	if err != nil {
		return err
	}
	colls, err := resolveCollections(collectionNames)
	if err != nil {
		return err
	}

	batchStart := time.Now()
	s.publish(ctx, &domain.SyncEvent{Type: domain.EventBatchStarted, Timestamp: batchStart.UTC()})

	for _, org := range orgs {
		for _, coll := range colls {
			if err := s.syncOne(ctx, org, coll); err != nil {
				return err
			}
		}
	}

	s.publish(ctx, &domain.SyncEvent{
		Type:      domain.EventBatchFinished,
		Duration:  time.Since(batchStart),
		Timestamp: time.Now().UTC(),
	})
	return nil
}

// syncOne runs one (org, collection) pair and classifies its failure. Only
// debug mode propagates errors; a concurrent-run rejection is never an
// error, just a skipped pair.
func (s *Scheduler) syncOne(ctx context.Context, org *domain.Organization, coll *ingest.Collection) error {
	s.logger.Info("syncing", "org", org.Name, "collection", coll.Name)
	start := time.Now()

	err := s.syncWithRetry(ctx, org, coll)

	event := &domain.SyncEvent{
		Type:         domain.EventCollectionSynced,
		Organization: org.Name,
		Collection:   coll.Name,
		Duration:     time.Since(start),
		Timestamp:    time.Now().UTC(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	s.publish(ctx, event)

	if err == nil {
		return nil
	}

	var running *ingest.ImportRunningError
	if errors.As(err, &running) {
		s.logger.Info("sync already in progress, skipping",
			"org", org.Name,
			"collection", coll.Name,
			"subcollection", running.Subcollection,
		)
		return nil
	}
	if temba.IsAPIError(err) {
		s.logger.Error("remote API failure", "org", org.Name, "collection", coll.Name, "error", err)
	} else {
		s.logger.Error("sync failed", "org", org.Name, "collection", coll.Name, "error", err)
	}
	if s.debug {
		return err
	}
	return nil
}

// syncWithRetry retries transient remote failures a bounded number of times
// with a fixed wait. Anything else fails on the first attempt.
func (s *Scheduler) syncWithRetry(ctx context.Context, org *domain.Organization, coll *ingest.Collection) error {
	var err error
	for attempt := 1; ; attempt++ {
		_, err = s.syncer.SyncAllData(ctx, org, coll, false)
		if err == nil || !temba.IsTransient(err) || attempt >= s.retry.MaxAttempts {
			return err
		}
		s.logger.Warn("transient failure, retrying",
			"org", org.Name,
			"collection", coll.Name,
			"attempt", attempt,
			"wait", s.retry.Wait,
			"error", err,
		)
		if werr := s.sleep(ctx, s.retry.Wait); werr != nil {
			return err
		}
	}
}

func (s *Scheduler) resolveOrgs(ctx context.Context, tokens []string) ([]*domain.Organization, error) {
	if len(tokens) == 0 {
		return s.orgs.ListActive(ctx)
	}
	orgs := make([]*domain.Organization, 0, len(tokens))
	for _, token := range tokens {
		org, err := s.orgs.GetByToken(ctx, token)
		if err != nil {
			return nil, err
		}
		if org == nil {
			return nil, fmt.Errorf("no organization for token %q", redactToken(token))
		}
		orgs = append(orgs, org)
	}
	return orgs, nil
}

func resolveCollections(names []string) ([]*ingest.Collection, error) {
	if len(names) == 0 {
		return ingest.Collections(), nil
	}
	colls := make([]*ingest.Collection, 0, len(names))
	for _, name := range names {
		coll, ok := ingest.CollectionByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown collection %q", name)
		}
		colls = append(colls, coll)
	}
	return colls, nil
}

func (s *Scheduler) publish(ctx context.Context, event *domain.SyncEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.logger.Warn("publishing sync event", "type", event.Type, "error", err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func redactToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + "****"
}
