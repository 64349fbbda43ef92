package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"rapidpro_warehouse/internal/domain"
)

type CheckpointStore struct {
	db *sqlx.DB
}

func NewCheckpointStore(db *sqlx.DB) *CheckpointStore {
	return &CheckpointStore{db: db}
}

func (s *CheckpointStore) Get(ctx context.Context, orgID int64, collection, subcollection string) (*domain.SyncCheckpoint, error) {
	var cp domain.SyncCheckpoint
	query := `
		SELECT id, organization_id, collection_name, subcollection_name,
		       last_started, last_saved, is_running
		FROM sync_checkpoints
		WHERE organization_id = $1 AND collection_name = $2 AND subcollection_name = $3`

	err := s.db.GetContext(ctx, &cp, query, orgID, collection, subcollection)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// CreateAndStart inserts the checkpoint already in the running state. The
// unique constraint on the triple makes a concurrent create fail instead of
// producing two running checkpoints.
func (s *CheckpointStore) CreateAndStart(ctx context.Context, orgID int64, collection, subcollection string, startedAt time.Time) (*domain.SyncCheckpoint, error) {
	query := `
		INSERT INTO sync_checkpoints (organization_id, collection_name, subcollection_name, last_started, is_running)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id`

	cp := &domain.SyncCheckpoint{
		OrganizationID:    orgID,
		CollectionName:    collection,
		SubcollectionName: subcollection,
		LastStarted:       startedAt,
		IsRunning:         true,
	}
	err := s.db.QueryRowContext(ctx, query, orgID, collection, subcollection, startedAt).Scan(&cp.ID)
	if err != nil {
		return nil, err
	}
	return cp, nil
}

func (s *CheckpointStore) Restart(ctx context.Context, id int64, startedAt time.Time) error {
	query := `
		UPDATE sync_checkpoints
		SET last_started = $2, is_running = TRUE
		WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id, startedAt)
	return err
}

// SetFinished records the window start of the run that just completed, not
// the completion time: anything created while the run was in flight gets
// picked up again next time.
func (s *CheckpointStore) SetFinished(ctx context.Context, id int64, savedAt time.Time) error {
	query := `
		UPDATE sync_checkpoints
		SET last_saved = $2, is_running = FALSE
		WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, id, savedAt)
	return err
}
