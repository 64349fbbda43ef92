package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONMap is a JSONB column holding arbitrary mapped fields.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", src)
	}
}

// Record is one staged remote object. RapidPro identifies objects either by
// uuid or by an integer id; the latter is kept as rapidpro_id so it never
// collides with the local primary key. All type-specific fields live in
// Fields after mapping.
type Record struct {
	ID             int64      `db:"id"`
	OrganizationID int64      `db:"organization_id"`
	Collection     string     `db:"collection"`
	UUID           *string    `db:"uuid"`
	RapidproID     *int64     `db:"rapidpro_id"`
	Fields         JSONMap    `db:"data"`
	FirstSynced    time.Time  `db:"first_synced"`
	LastSynced     time.Time  `db:"last_synced"`
}
