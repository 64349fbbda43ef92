package domain

import "github.com/lib/pq"

// Organization is a RapidPro account whose data is mirrored into the
// warehouse. It owns every imported record and every sync checkpoint.
type Organization struct {
	ID              int64          `db:"id"`
	APIToken        string         `db:"api_token"`
	Server          string         `db:"server"`
	IsActive        bool           `db:"is_active"`
	Name            string         `db:"name"`
	Country         *string        `db:"country"`
	PrimaryLanguage *string        `db:"primary_language"`
	Languages       pq.StringArray `db:"languages"`
	Credits         JSONMap        `db:"credits"`
	Timezone        *string        `db:"timezone"`
	DateStyle       *string        `db:"date_style"`
	Anon            bool           `db:"anon"`
}
