package ingest

import (
	"slices"

	"rapidpro_warehouse/internal/domain"
	"rapidpro_warehouse/internal/temba"
)

// FetchArgs decides the arguments for a paginated fetch. Incremental fetch
// only happens when the endpoint declares an "after" parameter and the
// checkpoint has a previous successful sync; everything else is a full
// fetch. The timestamp is normalized to UTC.
func FetchArgs(op temba.FetchOp, cp *domain.SyncCheckpoint) map[string]any {
	if cp == nil || cp.LastSaved == nil {
		return map[string]any{}
	}
	if slices.Contains(op.Params(), "after") {
		return map[string]any{"after": cp.LastSaved.UTC()}
	}
	return map[string]any{}
}
