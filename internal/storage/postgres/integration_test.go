//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"rapidpro_warehouse/internal/domain"
	"rapidpro_warehouse/testdata/utils"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB

	orgs        *OrganizationStore
	checkpoints *CheckpointStore
	records     *RecordStore

	org *domain.Organization
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations/postgres")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "000001_init.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db

	s.orgs = NewOrganizationStore(db)
	s.checkpoints = NewCheckpointStore(db)
	s.records = NewRecordStore(db)
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM organizations")

	org, err := s.orgs.UpsertByToken(s.ctx, &domain.Organization{
		APIToken:  "token-1",
		Server:    "https://rapidpro.io",
		IsActive:  true,
		Name:      "Test Org",
		Languages: []string{"eng"},
		Credits:   domain.JSONMap{"used": float64(10)},
	})
	s.Require().NoError(err)
	s.org = org
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestOrgUpsertIsIdempotent() {
	again, err := s.orgs.UpsertByToken(s.ctx, &domain.Organization{
		APIToken: "token-1",
		Server:   "https://rapidpro.io",
		IsActive: true,
		Name:     "Renamed Org",
		Country:  utils.Ptr("UG"),
	})
	s.Require().NoError(err)
	s.Equal(s.org.ID, again.ID)

	got, err := s.orgs.GetByToken(s.ctx, "token-1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("Renamed Org", got.Name)
	s.Equal("UG", *got.Country)
}

func (s *PostgresIntegrationSuite) TestGetByTokenMissing() {
	got, err := s.orgs.GetByToken(s.ctx, "no-such")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *PostgresIntegrationSuite) TestCheckpointLifecycle() {
	started := time.Now().UTC().Truncate(time.Microsecond)

	cp, err := s.checkpoints.Get(s.ctx, s.org.ID, "contacts", "")
	s.Require().NoError(err)
	s.Nil(cp)

	cp, err = s.checkpoints.CreateAndStart(s.ctx, s.org.ID, "contacts", "", started)
	s.Require().NoError(err)
	s.True(cp.IsRunning)

	s.Require().NoError(s.checkpoints.SetFinished(s.ctx, cp.ID, started))

	got, err := s.checkpoints.Get(s.ctx, s.org.ID, "contacts", "")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.False(got.IsRunning)
	s.Require().NotNil(got.LastSaved)
	s.True(got.LastSaved.Equal(started))
	s.True(got.LastStarted.Equal(started))

	restarted := started.Add(time.Hour)
	s.Require().NoError(s.checkpoints.Restart(s.ctx, cp.ID, restarted))
	got, err = s.checkpoints.Get(s.ctx, s.org.ID, "contacts", "")
	s.Require().NoError(err)
	s.True(got.IsRunning)
	s.True(got.LastStarted.Equal(restarted))
}

func (s *PostgresIntegrationSuite) TestCheckpointTripleIsUnique() {
	now := time.Now().UTC()
	_, err := s.checkpoints.CreateAndStart(s.ctx, s.org.ID, "messages", "inbox", now)
	s.Require().NoError(err)

	_, err = s.checkpoints.CreateAndStart(s.ctx, s.org.ID, "messages", "inbox", now)
	s.Error(err, "second create for the same triple must fail loudly")

	// the same collection under another folder is a different triple
	_, err = s.checkpoints.CreateAndStart(s.ctx, s.org.ID, "messages", "sent", now)
	s.NoError(err)
}

func (s *PostgresIntegrationSuite) TestRecordRoundTrip() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	u := "b51c1972-6eac-44f5-a399-9b23b78ed7c8"
	recs := []*domain.Record{
		{
			OrganizationID: s.org.ID,
			Collection:     "contacts",
			UUID:           utils.Ptr(u),
			Fields:         domain.JSONMap{"name": "Amina", "language": "eng"},
			FirstSynced:    now,
			LastSynced:     now,
		},
		{
			OrganizationID: s.org.ID,
			Collection:     "messages",
			RapidproID:     utils.Ptr(int64(4099)),
			Fields:         domain.JSONMap{"text": "hello"},
			FirstSynced:    now,
			LastSynced:     now,
		},
	}
	s.Require().NoError(s.records.BulkSave(s.ctx, recs))

	n, err := s.records.Count(s.ctx, s.org.ID, "contacts")
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	byUUID, err := s.records.FindByUUID(s.ctx, s.org.ID, "contacts", u)
	s.Require().NoError(err)
	s.Require().NotNil(byUUID)
	s.Equal("Amina", byUUID.Fields["name"])

	byID, err := s.records.FindByRapidproID(s.ctx, s.org.ID, "messages", 4099)
	s.Require().NoError(err)
	s.Require().NotNil(byID)
	s.Equal("hello", byID.Fields["text"])

	missing, err := s.records.FindByUUID(s.ctx, s.org.ID, "contacts", "93e32fd6-913e-4ec2-87bd-6ded00ec1a0a")
	s.Require().NoError(err)
	s.Nil(missing)
}

// The remote hands out the same record twice when message folders overlap.
// Duplicate identifiers must land silently, within one batch and across
// batches, leaving a single stored row.
func (s *PostgresIntegrationSuite) TestBulkSaveAbsorbsDuplicateIdentifiers() {
	now := time.Now().UTC()
	msg := func() *domain.Record {
		return &domain.Record{
			OrganizationID: s.org.ID,
			Collection:     "messages",
			RapidproID:     utils.Ptr(int64(101)),
			Fields:         domain.JSONMap{"text": "hi"},
			FirstSynced:    now,
			LastSynced:     now,
		}
	}

	// same id twice in one batch, as the inbox and incoming folders produce
	s.Require().NoError(s.records.BulkSave(s.ctx, []*domain.Record{msg(), msg()}))
	// and again in a later batch
	s.Require().NoError(s.records.BulkSave(s.ctx, []*domain.Record{msg()}))

	n, err := s.records.Count(s.ctx, s.org.ID, "messages")
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	u := "5f0e3a1b-9a6c-47a8-8f0d-3a6f6f2d9b11"
	contact := func() *domain.Record {
		return &domain.Record{
			OrganizationID: s.org.ID,
			Collection:     "contacts",
			UUID:           utils.Ptr(u),
			Fields:         domain.JSONMap{"name": "Amina"},
			FirstSynced:    now,
			LastSynced:     now,
		}
	}
	s.Require().NoError(s.records.BulkSave(s.ctx, []*domain.Record{contact(), contact()}))
	s.Require().NoError(s.records.BulkSave(s.ctx, []*domain.Record{contact()}))

	n, err = s.records.Count(s.ctx, s.org.ID, "contacts")
	s.Require().NoError(err)
	s.Equal(int64(1), n)
}

func (s *PostgresIntegrationSuite) TestDeleteCascades() {
	now := time.Now().UTC()
	_, err := s.checkpoints.CreateAndStart(s.ctx, s.org.ID, "contacts", "", now)
	s.Require().NoError(err)
	s.Require().NoError(s.records.BulkSave(s.ctx, []*domain.Record{{
		OrganizationID: s.org.ID,
		Collection:     "contacts",
		UUID:           utils.Ptr("0b8e99d6-38e5-49e1-92c7-9f41b6e16a57"),
		Fields:         domain.JSONMap{},
		FirstSynced:    now,
		LastSynced:     now,
	}}))

	counts, err := s.orgs.CountsByCollection(s.ctx, s.org.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), counts["contacts"])

	s.Require().NoError(s.orgs.Delete(s.ctx, s.org.ID))

	n, err := s.records.Count(s.ctx, s.org.ID, "contacts")
	s.Require().NoError(err)
	s.Zero(n)

	cp, err := s.checkpoints.Get(s.ctx, s.org.ID, "contacts", "")
	s.Require().NoError(err)
	s.Nil(cp)
}
