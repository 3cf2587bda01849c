package catalog

import (
	"context"
	"fmt"

	"github.com/mkoval/go-lol-metrics/internal/model"
	"github.com/mkoval/go-lol-metrics/internal/riot"
)

// ItemSource fetches the upstream item catalog for a game version.
type ItemSource interface {
	Items(ctx context.Context, version string) ([]riot.ItemDef, error)
}

// Store is the slice of the persistence layer the syncer needs: the singleton
// synced-version record plus catalog reads and writes.
type Store interface {
	SyncedVersion() (string, error)
	RecordSyncedVersion(version string) error
	ItemsByIDs(ids []int) (map[int]model.Item, error)
	InsertItems(items []model.Item) error
	UpdateItemName(id int, name string) error
}

// Syncer reconciles the local item catalog against the upstream catalog for
// a given game version.
type Syncer struct {
	source ItemSource
	store  Store
}

// NewSyncer returns a Syncer reading from source and writing to store.
func NewSyncer(source ItemSource, store Store) *Syncer {
	return &Syncer{source: source, store: store}
}

// SyncIfStale compares the upstream version against the last fully-synced one
// and reconciles the catalog when they differ: new tracked items are staged
// and batch-inserted, existing items whose upstream name changed are renamed
// in place. The version record is only written after every item write
// succeeded, so a failed sync is re-attempted in full on the next call.
func (s *Syncer) SyncIfStale(ctx context.Context, upstreamVersion string, exceptions, excluded map[int]bool) (model.SyncResult, error) {
	synced, err := s.store.SyncedVersion()
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("read synced version: %w", err)
	}
	if synced == upstreamVersion {
		return model.SyncResult{}, nil
	}

	defs, err := s.source.Items(ctx, upstreamVersion)
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("fetch item catalog for %s: %w", upstreamVersion, err)
	}

	var tracked []riot.ItemDef
	ids := make([]int, 0, len(defs))
	for _, def := range defs {
		if ShouldTrack(def.ID, def.HasUpgradePath(), exceptions, excluded) {
			tracked = append(tracked, def)
			ids = append(ids, def.ID)
		}
	}

	existing, err := s.store.ItemsByIDs(ids)
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("load existing items: %w", err)
	}

	var toInsert []model.Item
	upserted := 0
	for _, def := range tracked {
		current, ok := existing[def.ID]
		switch {
		case !ok:
			toInsert = append(toInsert, model.Item{ID: def.ID, Name: def.Name})
		case current.Name != def.Name:
			if err := s.store.UpdateItemName(def.ID, def.Name); err != nil {
				return model.SyncResult{}, fmt.Errorf("rename item %d: %w", def.ID, err)
			}
			upserted++
		}
	}

	if err := s.store.InsertItems(toInsert); err != nil {
		return model.SyncResult{}, fmt.Errorf("insert new items: %w", err)
	}
	upserted += len(toInsert)

	if err := s.store.RecordSyncedVersion(upstreamVersion); err != nil {
		return model.SyncResult{}, fmt.Errorf("record synced version: %w", err)
	}
	return model.SyncResult{Changed: true, ItemsUpserted: upserted}, nil
}
