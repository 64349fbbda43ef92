package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"rapidpro_warehouse/internal/domain"
)

type OrganizationStore struct {
	db *sqlx.DB
}

func NewOrganizationStore(db *sqlx.DB) *OrganizationStore {
	return &OrganizationStore{db: db}
}

const orgColumns = `id, api_token, server, is_active, name, country,
	primary_language, languages, credits, timezone, date_style, anon`

func (s *OrganizationStore) UpsertByToken(ctx context.Context, org *domain.Organization) (*domain.Organization, error) {
	query := `
		INSERT INTO organizations (
			api_token, server, is_active, name, country, primary_language,
			languages, credits, timezone, date_style, anon
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (api_token) DO UPDATE SET
			server = EXCLUDED.server,
			is_active = EXCLUDED.is_active,
			name = EXCLUDED.name,
			country = EXCLUDED.country,
			primary_language = EXCLUDED.primary_language,
			languages = EXCLUDED.languages,
			credits = EXCLUDED.credits,
			timezone = EXCLUDED.timezone,
			date_style = EXCLUDED.date_style,
			anon = EXCLUDED.anon
		RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		org.APIToken,
		org.Server,
		org.IsActive,
		org.Name,
		org.Country,
		org.PrimaryLanguage,
		org.Languages,
		org.Credits,
		org.Timezone,
		org.DateStyle,
		org.Anon,
	).Scan(&org.ID)
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (s *OrganizationStore) GetByToken(ctx context.Context, token string) (*domain.Organization, error) {
	var org domain.Organization
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE api_token = $1`

	err := s.db.GetContext(ctx, &org, query, token)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (s *OrganizationStore) ListActive(ctx context.Context) ([]*domain.Organization, error) {
	var orgs []*domain.Organization
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE is_active ORDER BY id`

	if err := s.db.SelectContext(ctx, &orgs, query); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Delete removes the organization and, through the FK cascade, all of its
// records and checkpoints.
func (s *OrganizationStore) Delete(ctx context.Context, id int64) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	return err
}

// CountsByCollection reports how many records the org holds per collection,
// used by the delete CLI to show what is about to disappear.
func (s *OrganizationStore) CountsByCollection(ctx context.Context, id int64) (map[string]int64, error) {
	query := `
		SELECT collection, COUNT(*) AS n
		FROM records
		WHERE organization_id = $1
		GROUP BY collection
		ORDER BY collection`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var collection string
		var n int64
		if err := rows.Scan(&collection, &n); err != nil {
			return nil, err
		}
		counts[collection] = n
	}
	return counts, rows.Err()
}
