package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"rapidpro_warehouse/internal/domain"
	"rapidpro_warehouse/internal/temba"
)

// bulkChunkSize is the number of unsaved imports accumulated before a bulk
// save is flushed.
const bulkChunkSize = 100

// Importer maps remote records into warehouse rows, resolving references
// with get-or-fetch semantics.
type Importer struct {
	records RecordStore
	cache   ResolutionCache
	logger  *slog.Logger
	now     func() time.Time
}

func NewImporter(records RecordStore, cache ResolutionCache, logger *slog.Logger) *Importer {
	return &Importer{
		records: records,
		cache:   cache,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateFromTembaList drives a record stream through the importer, batching
// saves. During the very first import for an org+collection the existence
// check is skipped: the store is known to be empty. A failing record fails
// the whole call; chunks flushed before the failure stay committed. The
// count of imported records comes back alongside the objects, which are only
// collected when returnObjs is set.
func (imp *Importer) CreateFromTembaList(
	ctx context.Context,
	client RemoteClient,
	org *domain.Organization,
	coll *Collection,
	stream temba.RecordStream,
	returnObjs bool,
	isInitialImport bool,
) ([]*domain.Record, int, error) {
	var objs []*domain.Record
	var chunk []*domain.Record
	imported := 0

	for {
		rec, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, imported, fmt.Errorf("fetch %s record: %w", coll.Name, err)
		}

		if !isInitialImport {
			found, err := imp.recordExists(ctx, org, coll, rec)
			if err != nil {
				return nil, imported, err
			}
			if found {
				continue
			}
		}

		obj, err := imp.CreateFromTemba(ctx, client, org, coll, rec, false)
		if err != nil {
			imp.logger.Error("record import failed",
				"collection", coll.Name,
				"org", org.Name,
				"error", err,
			)
			return nil, imported, fmt.Errorf("import %s record: %w", coll.Name, err)
		}
		chunk = append(chunk, obj)
		imported++
		if returnObjs {
			objs = append(objs, obj)
		}

		if len(chunk) > bulkChunkSize {
			if err := imp.records.BulkSave(ctx, chunk); err != nil {
				return nil, imported, fmt.Errorf("bulk save %s: %w", coll.Name, err)
			}
			chunk = nil
		}
	}

	if len(chunk) > 0 {
		if err := imp.records.BulkSave(ctx, chunk); err != nil {
			return nil, imported, fmt.Errorf("bulk save %s: %w", coll.Name, err)
		}
	}

	return objs, imported, nil
}

// recordExists checks for a previously imported copy of a remote record by
// the collection's declared identity. The payload is not trusted to pick the
// key: run payloads carry a uuid the warehouse never stores, so routing by
// whatever keys happen to be present would miss the stored row. Collections
// with no declared identity are always imported.
func (imp *Importer) recordExists(ctx context.Context, org *domain.Organization, coll *Collection, rec temba.Record) (bool, error) {
	spec, ok := coll.Mapping.identity()
	if !ok {
		return false, nil
	}
	switch spec.Kind {
	case KindUUID:
		u, ok := rec[spec.Remote].(string)
		if !ok || u == "" {
			return false, nil
		}
		existing, err := imp.records.FindByUUID(ctx, org.ID, coll.Name, u)
		if err != nil {
			return false, err
		}
		return existing != nil, nil
	case KindRemoteID:
		id, ok := asInt64(rec[spec.Remote])
		if !ok {
			return false, nil
		}
		existing, err := imp.records.FindByRapidproID(ctx, org.ID, coll.Name, id)
		if err != nil {
			return false, err
		}
		return existing != nil, nil
	}
	return false, nil
}

// CreateFromTemba maps one remote record into a warehouse row. Bulk callers
// pass doSave=false and flush through BulkSave themselves.
func (imp *Importer) CreateFromTemba(
	ctx context.Context,
	client RemoteClient,
	org *domain.Organization,
	coll *Collection,
	rec temba.Record,
	doSave bool,
) (*domain.Record, error) {
	now := imp.now().UTC()
	obj := &domain.Record{
		OrganizationID: org.ID,
		Collection:     coll.Name,
		Fields:         domain.JSONMap{},
		FirstSynced:    now,
		LastSynced:     now,
	}

	for _, spec := range coll.Mapping.Fields {
		value, ok := rec[spec.Remote]
		if !ok || value == nil {
			continue
		}
		switch spec.Kind {
		case KindScalar:
			obj.Fields[spec.localName()] = value

		case KindUUID:
			s, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("field %s: expected uuid string, got %T", spec.Remote, value)
			}
			parsed, err := uuid.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", spec.Remote, err)
			}
			u := parsed.String()
			obj.UUID = &u

		case KindRemoteID:
			id, ok := asInt64(value)
			if !ok {
				return nil, fmt.Errorf("field %s: expected integer id, got %T", spec.Remote, value)
			}
			obj.RapidproID = &id

		case KindEmbedded, KindEmbeddedList, KindEmbeddedMap:
			mapped, err := embedValue(spec, value)
			if err != nil {
				return nil, err
			}
			obj.Fields[spec.localName()] = mapped

		case KindReference:
			ref, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("field %s: expected object reference, got %T", spec.Remote, value)
			}
			resolved, err := imp.getOrFetch(ctx, client, org, spec.RefCollection, temba.Record(ref))
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", spec.Remote, err)
			}
			if resolved == nil {
				// remote object is gone; the reference stays null
				continue
			}
			obj.Fields[spec.localName()] = ref

		case KindReferenceList:
			list, ok := value.([]any)
			if !ok {
				return nil, fmt.Errorf("field %s: expected reference list, got %T", spec.Remote, value)
			}
			kept := make([]any, 0, len(list))
			for _, elem := range list {
				ref, ok := elem.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("field %s: expected object reference element, got %T", spec.Remote, elem)
				}
				resolved, err := imp.getOrFetch(ctx, client, org, spec.RefCollection, temba.Record(ref))
				if err != nil {
					return nil, fmt.Errorf("field %s: %w", spec.Remote, err)
				}
				if resolved == nil {
					continue
				}
				kept = append(kept, ref)
			}
			obj.Fields[spec.localName()] = kept
		}
	}

	if doSave {
		if err := imp.records.BulkSave(ctx, []*domain.Record{obj}); err != nil {
			return nil, fmt.Errorf("save %s record: %w", coll.Name, err)
		}
	}
	return obj, nil
}

// getOrFetch resolves a remote object reference: local lookup first, then a
// single-object remote fetch that is persisted before the parent completes.
// A nil result is the first-class "referenced object no longer exists"
// outcome, not an error.
func (imp *Importer) getOrFetch(
	ctx context.Context,
	client RemoteClient,
	org *domain.Organization,
	collection string,
	ref temba.Record,
) (*domain.Record, error) {
	refUUID, ok := ref["uuid"].(string)
	if !ok || refUUID == "" {
		return nil, fmt.Errorf("reference to %s has no uuid", collection)
	}

	cacheKey := fmt.Sprintf("resolve:%d:%s:%s", org.ID, collection, refUUID)
	if imp.cache != nil {
		if id, hit, err := imp.cache.Get(ctx, cacheKey); err == nil && hit {
			return &domain.Record{ID: id, OrganizationID: org.ID, Collection: collection, UUID: &refUUID}, nil
		}
	}

	existing, err := imp.records.FindByUUID(ctx, org.ID, collection, refUUID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if imp.cache != nil {
			if err := imp.cache.Set(ctx, cacheKey, existing.ID); err != nil {
				imp.logger.Warn("resolution cache set failed", "key", cacheKey, "error", err)
			}
		}
		return existing, nil
	}

	remote, found, err := client.GetByUUID(ctx, collection, refUUID)
	if err != nil {
		return nil, err
	}
	if !found {
		imp.logger.Warn("referenced object no longer exists on remote",
			"collection", collection,
			"uuid", refUUID,
		)
		return nil, nil
	}

	refColl, ok := CollectionByName(collection)
	if !ok {
		return nil, fmt.Errorf("no registered collection %s", collection)
	}
	return imp.CreateFromTemba(ctx, client, org, refColl, remote, true)
}
