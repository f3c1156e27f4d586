package groups

import (
	"testing"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
)

func seedSnapshot() workspace.Snapshot {
	return workspace.Snapshot{
		Stores: []workspace.Store{
			{ID: "HRA101", Name: "Downtown Hardware", OwnerID: "HRA301", ParentStoreID: "HRA101"},
			{ID: "HRA102", Name: "Uptown Hardware", OwnerID: "HRA301", ParentStoreID: "HRA101"},
			{ID: "HRA103", Name: "Valley Supply", OwnerID: "HRA302"},
			{ID: "HRA104", Name: "Metro Tools", OwnerID: "HRA303", ParentStoreID: "HRA104"},
			{ID: "HRA105", Name: "Metro Tools East", OwnerID: "HRA303", ParentStoreID: "HRA104"},
			{ID: "HRA106", Name: "Oak Avenue Hardware", OwnerID: "HRA305"},
		},
		StoreGroups: []workspace.StoreGroup{
			{ID: "G001", ParentStoreID: "HRA101", ChildStoreIDs: []workspace.StoreID{"HRA102"}},
			{ID: "G002", ParentStoreID: "HRA104", ChildStoreIDs: []workspace.StoreID{"HRA105"}},
		},
	}
}

func TestFindGroupForParentAndChildren(t *testing.T) {
	snap := seedSnapshot()
	r := NewResolver(&snap)

	for _, g := range snap.StoreGroups {
		for _, id := range GroupStoreIDs(g) {
			got, ok := r.FindGroupFor(id)
			if !ok || got.ID != g.ID {
				t.Fatalf("FindGroupFor(%s) = %v,%v want %s", id, got.ID, ok, g.ID)
			}
		}
	}

	if _, ok := r.FindGroupFor("HRA103"); ok {
		t.Fatalf("standalone store should have no group")
	}
}

func TestFindGroupForFirstMatchWins(t *testing.T) {
	snap := seedSnapshot()
	snap.StoreGroups = append(snap.StoreGroups, workspace.StoreGroup{ID: "G003", ParentStoreID: "HRA106", ChildStoreIDs: []workspace.StoreID{"HRA102"}})
	r := NewResolver(&snap)

	got, ok := r.FindGroupFor("HRA102")
	if !ok || got.ID != "G001" {
		t.Fatalf("expected first match G001, got %v", got.ID)
	}
}

func TestAllGroupStoresDropsUnknownIDs(t *testing.T) {
	snap := seedSnapshot()
	r := NewResolver(&snap)

	stores := r.AllGroupStores(workspace.StoreGroup{
		ParentStoreID: "HRA101",
		ChildStoreIDs: []workspace.StoreID{"HRA999", "HRA102", "HRA101"},
	})
	if len(stores) != 2 {
		t.Fatalf("expected 2 resolved stores, got %d", len(stores))
	}
	if stores[0].ID != "HRA101" || stores[1].ID != "HRA102" {
		t.Fatalf("unexpected order %v", stores)
	}
}

func TestGroupLabel(t *testing.T) {
	snap := seedSnapshot()
	r := NewResolver(&snap)

	if got := r.GroupLabel("HRA105"); got != "HRA104" {
		t.Fatalf("expected parent label, got %q", got)
	}
	if got := r.GroupLabel("HRA106"); got != IndividualLabel {
		t.Fatalf("expected Individual, got %q", got)
	}
	var empty Resolver
	if got := empty.GroupLabel("HRA101"); got != IndividualLabel {
		t.Fatalf("nil snapshot should resolve Individual, got %q", got)
	}
}
