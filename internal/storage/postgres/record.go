package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"rapidpro_warehouse/internal/domain"
)

type RecordStore struct {
	db *sqlx.DB
}

func NewRecordStore(db *sqlx.DB) *RecordStore {
	return &RecordStore{db: db}
}

func (s *RecordStore) Count(ctx context.Context, orgID int64, collection string) (int64, error) {
	var n int64
	query := `SELECT COUNT(*) FROM records WHERE organization_id = $1 AND collection = $2`

	if err := s.db.GetContext(ctx, &n, query, orgID, collection); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *RecordStore) FindByUUID(ctx context.Context, orgID int64, collection, uuid string) (*domain.Record, error) {
	var rec domain.Record
	query := `
		SELECT id, organization_id, collection, uuid, rapidpro_id, data, first_synced, last_synced
		FROM records
		WHERE organization_id = $1 AND collection = $2 AND uuid = $3`

	err := s.db.GetContext(ctx, &rec, query, orgID, collection, uuid)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RecordStore) FindByRapidproID(ctx context.Context, orgID int64, collection string, rapidproID int64) (*domain.Record, error) {
	var rec domain.Record
	query := `
		SELECT id, organization_id, collection, uuid, rapidpro_id, data, first_synced, last_synced
		FROM records
		WHERE organization_id = $1 AND collection = $2 AND rapidpro_id = $3`

	err := s.db.GetContext(ctx, &rec, query, orgID, collection, rapidproID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// BulkSave inserts one batch in a single statement. Callers see a batch
// succeed or fail as a unit; the executor honors a surrounding transaction
// when one is on the context. Rows that collide with an already stored
// identifier are dropped silently: message folders overlap on the remote, so
// the same record legitimately arrives more than once within a sync.
func (s *RecordStore) BulkSave(ctx context.Context, records []*domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	query := `
		INSERT INTO records (organization_id, collection, uuid, rapidpro_id, data, first_synced, last_synced)
		VALUES (:organization_id, :collection, :uuid, :rapidpro_id, :data, :first_synced, :last_synced)
		ON CONFLICT DO NOTHING`

	_, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, s.db), query, records)
	return err
}
