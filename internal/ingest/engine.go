package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"rapidpro_warehouse/internal/config"
	"rapidpro_warehouse/internal/domain"
	"rapidpro_warehouse/internal/temba"
)

// Engine is the per-(organization, collection) sync driver. It owns the
// checkpoint lifecycle around each sync attempt:
//
//	no checkpoint  -> create and start -> running -> finished
//	checkpoint     -> restart          -> running -> finished
//	still running  -> ImportRunningError, nothing touched
//
// A failed sync leaves the checkpoint marked running on purpose: an
// operator (or the staleness override) decides when it may run again.
type Engine struct {
	checkpoints CheckpointStore
	records     RecordStore
	clients     ClientFactory
	importer    *Importer
	cfg         config.SyncConfig
	logger      *slog.Logger
	now         func() time.Time
}

func NewEngine(
	checkpoints CheckpointStore,
	records RecordStore,
	clients ClientFactory,
	cache ResolutionCache,
	cfg config.SyncConfig,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		checkpoints: checkpoints,
		records:     records,
		clients:     clients,
		importer:    NewImporter(records, cache, logger),
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// SyncAllData syncs every record of one collection for one organization,
// incrementally when the collection supports it. The returned slice is only
// populated when returnObjs is set.
func (e *Engine) SyncAllData(ctx context.Context, org *domain.Organization, coll *Collection, returnObjs bool) ([]*domain.Record, error) {
	checkpointTime := e.now().UTC()

	cp, err := e.checkpoints.Get(ctx, org.ID, coll.Name, "")
	if err != nil {
		return nil, fmt.Errorf("resolve checkpoint: %w", err)
	}
	cp, err = e.startCheckpoint(ctx, org, coll.Name, "", cp, checkpointTime)
	if err != nil {
		return nil, err
	}

	client := e.clients.ForOrg(org)
	objs, imported, err := e.syncWithCheckpoint(ctx, client, org, coll, cp, returnObjs)
	if err != nil {
		// checkpoint intentionally stays running; see type comment
		return nil, err
	}

	if err := e.checkpoints.SetFinished(ctx, cp.ID, checkpointTime); err != nil {
		return nil, fmt.Errorf("finish checkpoint: %w", err)
	}

	e.logger.Info("collection synced",
		"org", org.Name,
		"collection", coll.Name,
		"imported", imported,
	)
	return objs, nil
}

// startCheckpoint transitions a checkpoint to running, creating it on first
// sync and rejecting the attempt when a previous run is still in flight.
func (e *Engine) startCheckpoint(
	ctx context.Context,
	org *domain.Organization,
	collection, subcollection string,
	cp *domain.SyncCheckpoint,
	checkpointTime time.Time,
) (*domain.SyncCheckpoint, error) {
	if cp == nil {
		created, err := e.checkpoints.CreateAndStart(ctx, org.ID, collection, subcollection, checkpointTime)
		if err != nil {
			return nil, fmt.Errorf("start checkpoint: %w", err)
		}
		return created, nil
	}
	if e.stillRunning(cp, checkpointTime) {
		return nil, &ImportRunningError{
			Organization:  org.Name,
			Collection:    collection,
			Subcollection: subcollection,
		}
	}
	if err := e.checkpoints.Restart(ctx, cp.ID, checkpointTime); err != nil {
		return nil, fmt.Errorf("restart checkpoint: %w", err)
	}
	cp.LastStarted = checkpointTime
	cp.IsRunning = true
	return cp, nil
}

// stillRunning honors the running flag unless the optional staleness
// override says the run crashed long ago.
func (e *Engine) stillRunning(cp *domain.SyncCheckpoint, now time.Time) bool {
	if !cp.IsRunning {
		return false
	}
	if e.cfg.StaleAfter > 0 && now.Sub(cp.LastStarted) > e.cfg.StaleAfter {
		e.logger.Warn("overriding stale running checkpoint",
			"collection", cp.CollectionName,
			"subcollection", cp.SubcollectionName,
			"last_started", cp.LastStarted,
		)
		return false
	}
	return true
}

func (e *Engine) syncWithCheckpoint(
	ctx context.Context,
	client RemoteClient,
	org *domain.Organization,
	coll *Collection,
	cp *domain.SyncCheckpoint,
	returnObjs bool,
) ([]*domain.Record, int, error) {
	count, err := e.records.Count(ctx, org.ID, coll.Name)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", coll.Name, err)
	}
	initialImport := count == 0

	if coll.ArchiveType != "" && e.cfg.UseArchives {
		return e.syncFromArchives(ctx, client, org, coll, cp, returnObjs, initialImport)
	}
	if len(coll.Folders) > 0 {
		return e.syncFolders(ctx, client, org, coll, cp, returnObjs, initialImport)
	}

	op := client.ListOp(coll.Name)
	stream, err := op.Fetch(ctx, FetchArgs(op, cp))
	if err != nil {
		return nil, 0, fmt.Errorf("fetch %s: %w", coll.Name, err)
	}
	return e.importer.CreateFromTembaList(ctx, client, org, coll, stream, returnObjs, initialImport)
}

// syncFolders fans one collection out into per-folder sub-checkpoints, each
// under the same running guard. A fresh folder checkpoint falls back to the
// outer checkpoint's fetch window.
func (e *Engine) syncFolders(
	ctx context.Context,
	client RemoteClient,
	org *domain.Organization,
	coll *Collection,
	outer *domain.SyncCheckpoint,
	returnObjs bool,
	initialImport bool,
) ([]*domain.Record, int, error) {
	op := client.ListOp(coll.Name)
	outerArgs := FetchArgs(op, outer)

	var objs []*domain.Record
	imported := 0
	for _, folder := range coll.Folders {
		e.logger.Info("syncing folder", "org", org.Name, "collection", coll.Name, "folder", folder)
		folderTime := e.now().UTC()

		cp, err := e.checkpoints.Get(ctx, org.ID, coll.Name, folder)
		if err != nil {
			return nil, imported, fmt.Errorf("resolve folder checkpoint: %w", err)
		}
		cp, err = e.startCheckpoint(ctx, org, coll.Name, folder, cp, folderTime)
		if err != nil {
			return nil, imported, err
		}

		args := FetchArgs(op, cp)
		if len(args) == 0 {
			args = outerArgs
		}
		merged := map[string]any{"folder": folder}
		for k, v := range args {
			merged[k] = v
		}

		stream, err := op.Fetch(ctx, merged)
		if err != nil {
			return nil, imported, fmt.Errorf("fetch %s folder %s: %w", coll.Name, folder, err)
		}
		created, n, err := e.importer.CreateFromTembaList(ctx, client, org, coll, stream, returnObjs, initialImport)
		if err != nil {
			return nil, imported, err
		}
		imported += n
		if returnObjs {
			objs = append(objs, created...)
		}

		if err := e.checkpoints.SetFinished(ctx, cp.ID, folderTime); err != nil {
			return nil, imported, fmt.Errorf("finish folder checkpoint: %w", err)
		}
	}
	return objs, imported, nil
}

// syncFromArchives replaces the paginated fetch with the remote's bulk
// archive files for high-volume collections. The downstream dedup, batching
// and checkpointing are identical to the API path.
func (e *Engine) syncFromArchives(
	ctx context.Context,
	client RemoteClient,
	org *domain.Organization,
	coll *Collection,
	cp *domain.SyncCheckpoint,
	returnObjs bool,
	initialImport bool,
) ([]*domain.Record, int, error) {
	var after *time.Time
	if cp != nil && cp.LastSaved != nil {
		t := cp.LastSaved.UTC()
		after = &t
	}
	period := e.cfg.ArchivePeriod
	if period == "" {
		period = "monthly"
	}
	archives, err := client.ListArchives(ctx, coll.ArchiveType, period, after)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s archives: %w", coll.ArchiveType, err)
	}
	stream := newArchiveStream(ctx, client, archives, e.logger)
	defer stream.Close()
	return e.importer.CreateFromTembaList(ctx, client, org, coll, stream, returnObjs, initialImport)
}

// TembaFactory builds real API clients from organization credentials.
type TembaFactory struct {
	cfg    config.APIConfig
	logger *slog.Logger
}

func NewTembaFactory(cfg config.APIConfig, logger *slog.Logger) *TembaFactory {
	return &TembaFactory{cfg: cfg, logger: logger}
}

func (f *TembaFactory) ForOrg(org *domain.Organization) RemoteClient {
	server := org.Server
	if server == "" {
		server = f.cfg.DefaultServer
	}
	return temba.NewClient(temba.Config{
		Server:            server,
		Token:             org.APIToken,
		Timeout:           f.cfg.Timeout,
		RequestsPerSecond: f.cfg.RequestsPerSecond,
		RateRetries:       f.cfg.RateRetries,
		RateWait:          f.cfg.RateWait,
	}, f.logger)
}
