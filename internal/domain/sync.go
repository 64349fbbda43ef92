package domain

import "time"

// Sync event types published to the notifier.
const (
	EventBatchStarted     = "batch_started"
	EventBatchFinished    = "batch_finished"
	EventCollectionSynced = "collection_synced"
)

// SyncEvent describes the outcome of a sync step.
type SyncEvent struct {
	Type         string        `json:"type"`
	Organization string        `json:"organization,omitempty"`
	Collection   string        `json:"collection,omitempty"`
	Error        string        `json:"error,omitempty"`
	Duration     time.Duration `json:"duration,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}
