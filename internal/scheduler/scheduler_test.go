package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rapidpro_warehouse/internal/config"
	"rapidpro_warehouse/internal/domain"
	"rapidpro_warehouse/internal/ingest"
	"rapidpro_warehouse/internal/scheduler/mocks"
	"rapidpro_warehouse/internal/temba"
)

type SchedulerTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	syncer   *mocks.MockSyncer
	orgs     *mocks.MockOrganizationLister
	notifier *mocks.MockNotifier

	cfg    *config.Config
	logger *slog.Logger
	ctx    context.Context

	sleeps int
}

func (s *SchedulerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.syncer = mocks.NewMockSyncer(s.ctrl)
	s.orgs = mocks.NewMockOrganizationLister(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)

	s.cfg = &config.Config{}
	s.cfg.API.Retry = config.RetryConfig{MaxAttempts: 3, Wait: 30 * time.Second}
	s.cfg.Sync.Interval = time.Hour

	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	s.ctx = context.Background()
	s.sleeps = 0
}

func (s *SchedulerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *SchedulerTestSuite) scheduler() *Scheduler {
	sched := NewScheduler(s.syncer, s.orgs, s.notifier, s.cfg, s.logger)
	sched.sleep = func(ctx context.Context, d time.Duration) error {
		s.sleeps++
		return nil
	}
	return sched
}

func (s *SchedulerTestSuite) allowEvents() {
	s.notifier.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (s *SchedulerTestSuite) TestBatchCoversCrossProduct() {
	s.allowEvents()
	orgs := []*domain.Organization{
		{ID: 1, Name: "Org A"},
		{ID: 2, Name: "Org B"},
	}
	s.orgs.EXPECT().ListActive(gomock.Any()).Return(orgs, nil)

	for _, org := range orgs {
		for range ingest.Collections() {
			s.syncer.EXPECT().
				SyncAllData(gomock.Any(), org, gomock.Any(), false).
				Return(nil, nil)
		}
	}

	s.Require().NoError(s.scheduler().RunOnce(s.ctx, nil, nil))
}

// One failing pair never takes down the rest of the batch.
func (s *SchedulerTestSuite) TestFailureIsIsolatedPerPair() {
	s.allowEvents()
	org := &domain.Organization{ID: 1, Name: "Org A"}
	s.orgs.EXPECT().GetByToken(gomock.Any(), "token-a").Return(org, nil)

	s.syncer.EXPECT().
		SyncAllData(gomock.Any(), org, gomock.Any(), false).
		Return(nil, &temba.APIError{Kind: temba.ErrorKindToken, Msg: "invalid token"})
	s.syncer.EXPECT().
		SyncAllData(gomock.Any(), org, gomock.Any(), false).
		Return(nil, nil)

	err := s.scheduler().RunOnce(s.ctx, []string{"token-a"}, []string{"groups", "contacts"})
	s.NoError(err)
}

func (s *SchedulerTestSuite) TestDebugPropagatesFailures() {
	s.allowEvents()
	s.cfg.Debug = true
	org := &domain.Organization{ID: 1, Name: "Org A"}
	s.orgs.EXPECT().GetByToken(gomock.Any(), "token-a").Return(org, nil)

	s.syncer.EXPECT().
		SyncAllData(gomock.Any(), org, gomock.Any(), false).
		Return(nil, &temba.APIError{Kind: temba.ErrorKindBadRequest, Msg: "bad request"})

	err := s.scheduler().RunOnce(s.ctx, []string{"token-a"}, []string{"groups", "contacts"})
	s.Error(err)
}

// A concurrent-run rejection is skippable even in debug mode.
func (s *SchedulerTestSuite) TestAlreadyRunningIsNeverAnError() {
	s.allowEvents()
	s.cfg.Debug = true
	org := &domain.Organization{ID: 1, Name: "Org A"}
	s.orgs.EXPECT().GetByToken(gomock.Any(), "token-a").Return(org, nil)

	s.syncer.EXPECT().
		SyncAllData(gomock.Any(), org, gomock.Any(), false).
		Return(nil, &ingest.ImportRunningError{Organization: "Org A", Collection: "groups"})

	err := s.scheduler().RunOnce(s.ctx, []string{"token-a"}, []string{"groups"})
	s.NoError(err)
}

func (s *SchedulerTestSuite) TestTransientFailuresAreRetried() {
	s.allowEvents()
	org := &domain.Organization{ID: 1, Name: "Org A"}
	s.orgs.EXPECT().GetByToken(gomock.Any(), "token-a").Return(org, nil)

	transient := &temba.APIError{Kind: temba.ErrorKindConnection, Msg: "connection refused"}
	gomock.InOrder(
		s.syncer.EXPECT().SyncAllData(gomock.Any(), org, gomock.Any(), false).Return(nil, transient),
		s.syncer.EXPECT().SyncAllData(gomock.Any(), org, gomock.Any(), false).Return(nil, transient),
		s.syncer.EXPECT().SyncAllData(gomock.Any(), org, gomock.Any(), false).Return(nil, nil),
	)

	err := s.scheduler().RunOnce(s.ctx, []string{"token-a"}, []string{"groups"})
	s.NoError(err)
	s.Equal(2, s.sleeps)
}

func (s *SchedulerTestSuite) TestPermanentFailuresAreNotRetried() {
	s.allowEvents()
	org := &domain.Organization{ID: 1, Name: "Org A"}
	s.orgs.EXPECT().GetByToken(gomock.Any(), "token-a").Return(org, nil)

	s.syncer.EXPECT().
		SyncAllData(gomock.Any(), org, gomock.Any(), false).
		Return(nil, &temba.APIError{Kind: temba.ErrorKindToken, Msg: "invalid token"}).
		Times(1)

	err := s.scheduler().RunOnce(s.ctx, []string{"token-a"}, []string{"groups"})
	s.NoError(err)
	s.Zero(s.sleeps)
}

func (s *SchedulerTestSuite) TestUnknownTokenFailsTheBatch() {
	s.orgs.EXPECT().GetByToken(gomock.Any(), "nope").Return(nil, nil)

	err := s.scheduler().RunOnce(s.ctx, []string{"nope"}, nil)
	s.Error(err)
}

func (s *SchedulerTestSuite) TestUnknownCollectionFailsTheBatch() {
	s.orgs.EXPECT().ListActive(gomock.Any()).Return([]*domain.Organization{{ID: 1}}, nil)

	err := s.scheduler().RunOnce(s.ctx, nil, []string{"unicorns"})
	s.ErrorContains(err, "unicorns")
}

func (s *SchedulerTestSuite) TestEventsCarryOutcome() {
	org := &domain.Organization{ID: 1, Name: "Org A"}
	s.orgs.EXPECT().GetByToken(gomock.Any(), "token-a").Return(org, nil)
	s.syncer.EXPECT().
		SyncAllData(gomock.Any(), org, gomock.Any(), false).
		Return(nil, errors.New("boom"))

	var events []*domain.SyncEvent
	s.notifier.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *domain.SyncEvent) error {
			events = append(events, e)
			return nil
		}).
		Times(3)

	s.Require().NoError(s.scheduler().RunOnce(s.ctx, []string{"token-a"}, []string{"groups"}))

	s.Require().Len(events, 3)
	s.Equal(domain.EventBatchStarted, events[0].Type)
	s.Equal(domain.EventCollectionSynced, events[1].Type)
	s.Equal("groups", events[1].Collection)
	s.Contains(events[1].Error, "boom")
	s.Equal(domain.EventBatchFinished, events[2].Type)
}

func TestSchedulerTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerTestSuite))
}
