package domain

import "time"

// SyncCheckpoint records sync progress for one (organization, collection,
// subcollection) triple. The triple is unique; the subcollection is the
// empty string except for collections that fan out (message folders).
type SyncCheckpoint struct {
	ID                int64      `db:"id"`
	OrganizationID    int64      `db:"organization_id"`
	CollectionName    string     `db:"collection_name"`
	SubcollectionName string     `db:"subcollection_name"`
	LastStarted       time.Time  `db:"last_started"`
	LastSaved         *time.Time `db:"last_saved"`
	IsRunning         bool       `db:"is_running"`
}
