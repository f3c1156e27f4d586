package groups

import (
	"context"
	"testing"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
)

func newTestService(t *testing.T) *service {
	t.Helper()
	svc, err := NewService(logger.Nop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	s := svc.(*service)
	s.newID = func() workspace.GroupID { return "group-test" }
	return s
}

func TestCreateThenResolveThenDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	seed := seedSnapshot()
	seed.StoreGroups = nil
	ws := workspace.New(seed)

	created, err := svc.Create(ctx, ws, Input{ParentStoreID: "HRA103", ChildStoreIDs: []workspace.StoreID{"HRA106", "HRA103", "HRA106", " "}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "group-test" {
		t.Fatalf("unexpected id %s", created.ID)
	}
	if len(created.ChildStoreIDs) != 1 || created.ChildStoreIDs[0] != "HRA106" {
		t.Fatalf("parent must be excluded and children de-duplicated: %v", created.ChildStoreIDs)
	}
	if created.ParentStoreName != "Valley Supply" || len(created.Stores) != 2 {
		t.Fatalf("unexpected resolved stores %+v", created)
	}

	snap := ws.View()
	r := NewResolver(&snap)
	for _, id := range []workspace.StoreID{"HRA103", "HRA106"} {
		if g, ok := r.FindGroupFor(id); !ok || g.ID != created.ID {
			t.Fatalf("FindGroupFor(%s) did not return the new group", id)
		}
	}

	if err := svc.Delete(ctx, ws, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	snap = ws.View()
	r = NewResolver(&snap)
	for _, id := range []workspace.StoreID{"HRA103", "HRA106"} {
		if _, ok := r.FindGroupFor(id); ok {
			t.Fatalf("FindGroupFor(%s) should be empty after delete", id)
		}
	}
}

func TestCreateRequiresParent(t *testing.T) {
	svc := newTestService(t)
	ws := workspace.New(seedSnapshot())

	_, err := svc.Create(context.Background(), ws, Input{ChildStoreIDs: []workspace.StoreID{"HRA103"}})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ws.StoreGroups()) != 2 {
		t.Fatalf("validation failure must not mutate groups")
	}

	_, err = svc.Create(context.Background(), ws, Input{ParentStoreID: "HRA999"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for unknown parent, got %v", err)
	}
}

func TestCreateRejectsStoreAlreadyGrouped(t *testing.T) {
	svc := newTestService(t)
	ws := workspace.New(seedSnapshot())

	_, err := svc.Create(context.Background(), ws, Input{ParentStoreID: "HRA103", ChildStoreIDs: []workspace.StoreID{"HRA105"}})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateKeepsIDAndAllowsOwnStores(t *testing.T) {
	svc := newTestService(t)
	ws := workspace.New(seedSnapshot())

	updated, err := svc.Update(context.Background(), ws, "G001", Input{ParentStoreID: "HRA101", ChildStoreIDs: []workspace.StoreID{"HRA102", "HRA103"}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != "G001" || len(updated.ChildStoreIDs) != 2 {
		t.Fatalf("unexpected update result %+v", updated)
	}

	_, err = svc.Update(context.Background(), ws, "G404", Input{ParentStoreID: "HRA106"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSearchStores(t *testing.T) {
	svc := newTestService(t)
	ws := workspace.New(seedSnapshot())

	got := svc.SearchStores(context.Background(), ws, "metro", "HRA104")
	if len(got) != 1 || got[0].ID != "HRA105" {
		t.Fatalf("unexpected search result %v", got)
	}
	if got := svc.SearchStores(context.Background(), ws, "hra10", ""); len(got) != 6 {
		t.Fatalf("expected id match on all stores, got %d", len(got))
	}
	if got := svc.SearchStores(context.Background(), ws, "", ""); len(got) != 6 {
		t.Fatalf("empty query should list all stores, got %d", len(got))
	}
}
