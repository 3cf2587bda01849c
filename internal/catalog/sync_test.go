package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/mkoval/go-lol-metrics/internal/model"
	"github.com/mkoval/go-lol-metrics/internal/riot"
)

type fakeSource struct {
	defs []riot.ItemDef
	err  error
}

func (f *fakeSource) Items(ctx context.Context, version string) ([]riot.ItemDef, error) {
	return f.defs, f.err
}

type fakeStore struct {
	version  string
	items    map[int]model.Item
	inserted []model.Item
	renamed  map[int]string
}

func newFakeStore(version string) *fakeStore {
	return &fakeStore{
		version: version,
		items:   make(map[int]model.Item),
		renamed: make(map[int]string),
	}
}

func (f *fakeStore) SyncedVersion() (string, error)     { return f.version, nil }
func (f *fakeStore) RecordSyncedVersion(v string) error { f.version = v; return nil }

func (f *fakeStore) UpdateItemName(id int, name string) error {
	f.renamed[id] = name
	f.items[id] = model.Item{ID: id, Name: name}
	return nil
}

func (f *fakeStore) ItemsByIDs(ids []int) (map[int]model.Item, error) {
	out := make(map[int]model.Item)
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

func (f *fakeStore) InsertItems(items []model.Item) error {
	for _, item := range items {
		f.items[item.ID] = item
	}
	f.inserted = append(f.inserted, items...)
	return nil
}

func TestSyncIfStaleNoopWhenVersionMatches(t *testing.T) {
	store := newFakeStore("14.10.1")
	source := &fakeSource{err: errors.New("should not be called")}

	syncer := NewSyncer(source, store)
	result, err := syncer.SyncIfStale(context.Background(), "14.10.1", ItemExceptions, ExcludedItems)
	if err != nil {
		t.Fatalf("SyncIfStale: %v", err)
	}
	if result.Changed {
		t.Error("expected no change when versions match")
	}
	if result.ItemsUpserted != 0 {
		t.Errorf("expected 0 upserts, got %d", result.ItemsUpserted)
	}
}

func TestSyncIfStaleInsertsAndRecordsVersion(t *testing.T) {
	store := newFakeStore("")
	source := &fakeSource{defs: []riot.ItemDef{
		{ID: 3031, Name: "Infinity Edge"},                               // tracked: no upgrade path
		{ID: 1038, Name: "B. F. Sword", Into: []string{"3031"}},         // component, skipped
		{ID: 3006, Name: "Berserker's Greaves", Into: []string{"3800"}}, // exception
		{ID: 2003, Name: "Health Potion"},                               // excluded
	}}

	syncer := NewSyncer(source, store)
	result, err := syncer.SyncIfStale(context.Background(), "14.11.1", ItemExceptions, ExcludedItems)
	if err != nil {
		t.Fatalf("SyncIfStale: %v", err)
	}
	if !result.Changed {
		t.Error("expected change on new version")
	}
	if result.ItemsUpserted != 2 {
		t.Errorf("expected 2 upserts, got %d", result.ItemsUpserted)
	}
	if _, ok := store.items[3031]; !ok {
		t.Error("final item not inserted")
	}
	if _, ok := store.items[3006]; !ok {
		t.Error("exception item not inserted")
	}
	if _, ok := store.items[1038]; ok {
		t.Error("component item inserted")
	}
	if _, ok := store.items[2003]; ok {
		t.Error("excluded item inserted")
	}
	if store.version != "14.11.1" {
		t.Errorf("synced version = %q, want 14.11.1", store.version)
	}
}

func TestSyncIfStaleRenamesChangedItem(t *testing.T) {
	store := newFakeStore("14.10.1")
	store.items[3031] = model.Item{ID: 3031, Name: "Old Name"}
	source := &fakeSource{defs: []riot.ItemDef{{ID: 3031, Name: "Infinity Edge"}}}

	syncer := NewSyncer(source, store)
	result, err := syncer.SyncIfStale(context.Background(), "14.11.1", ItemExceptions, ExcludedItems)
	if err != nil {
		t.Fatalf("SyncIfStale: %v", err)
	}
	if result.ItemsUpserted != 1 {
		t.Errorf("expected 1 upsert for the rename, got %d", result.ItemsUpserted)
	}
	if store.renamed[3031] != "Infinity Edge" {
		t.Errorf("item not renamed: %q", store.renamed[3031])
	}
	if len(store.inserted) != 0 {
		t.Errorf("rename must not re-insert, inserted %d items", len(store.inserted))
	}
}

func TestSyncIfStaleFetchFailureLeavesVersionUntouched(t *testing.T) {
	store := newFakeStore("14.10.1")
	source := &fakeSource{err: errors.New("upstream down")}

	syncer := NewSyncer(source, store)
	_, err := syncer.SyncIfStale(context.Background(), "14.11.1", ItemExceptions, ExcludedItems)
	if err == nil {
		t.Fatal("expected error from failed fetch")
	}
	if store.version != "14.10.1" {
		t.Errorf("version advanced past a failed sync: %q", store.version)
	}
}
