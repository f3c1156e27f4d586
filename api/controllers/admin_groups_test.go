package controllers

import (
	"net/http"
	"testing"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/groups"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
)

func newGroupService(t *testing.T) groups.Service {
	t.Helper()
	svc, err := groups.NewService(logger.Nop())
	if err != nil {
		t.Fatalf("new group service: %v", err)
	}
	return svc
}

func TestStoreGroupRoundTrip(t *testing.T) {
	logg := logger.Nop()
	svc := newGroupService(t)
	sess := seededSession(t, "HRA305")
	me := Me(logg)

	var before groups.Profile
	decodeData(t, serve(me, sess, call{method: http.MethodGet, target: "/api/v1/me"}), &before)
	if before.PrimaryGroup != nil {
		t.Fatalf("HRA106 starts ungrouped, got %+v", before.PrimaryGroup)
	}

	rec := serve(AdminStoreGroupCreate(svc, logg), sess, call{
		method: http.MethodPost,
		target: "/api/admin/v1/store-groups",
		body:   `{"parent_store_id":"HRA106","child_store_ids":["HRA103"]}`,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	var created groups.GroupDTO
	decodeData(t, rec, &created)
	if created.ID == "" || len(created.Stores) != 2 {
		t.Fatalf("unexpected group %+v", created)
	}

	var grouped groups.Profile
	decodeData(t, serve(me, sess, call{method: http.MethodGet, target: "/api/v1/me"}), &grouped)
	if grouped.PrimaryGroup == nil || grouped.PrimaryGroup.ID != created.ID {
		t.Fatalf("expected primary group %s, got %+v", created.ID, grouped.PrimaryGroup)
	}
	if grouped.Stores[0].GroupLabel != "HRA106" {
		t.Fatalf("expected group label HRA106, got %q", grouped.Stores[0].GroupLabel)
	}

	params := map[string]string{"groupId": created.ID.String()}
	rec = serve(AdminStoreGroupUpdate(svc, logg), sess, call{
		method: http.MethodPut,
		target: "/api/admin/v1/store-groups/" + created.ID.String(),
		body:   `{"parent_store_id":"HRA106","child_store_ids":[]}`,
		params: params,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var updated groups.GroupDTO
	decodeData(t, rec, &updated)
	if updated.ID != created.ID || len(updated.ChildStoreIDs) != 0 {
		t.Fatalf("unexpected update %+v", updated)
	}

	rec = serve(AdminStoreGroupDelete(svc, logg), sess, call{
		method: http.MethodDelete,
		target: "/api/admin/v1/store-groups/" + created.ID.String(),
		params: params,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var deleted map[string]string
	decodeData(t, rec, &deleted)
	if deleted["status"] != "deleted" || deleted["group_id"] != created.ID.String() {
		t.Fatalf("unexpected delete body %v", deleted)
	}

	var after groups.Profile
	decodeData(t, serve(me, sess, call{method: http.MethodGet, target: "/api/v1/me"}), &after)
	if after.PrimaryGroup != nil {
		t.Fatalf("expected no group after delete, got %+v", after.PrimaryGroup)
	}
	if after.Stores[0].GroupLabel != groups.IndividualLabel {
		t.Fatalf("expected individual label, got %q", after.Stores[0].GroupLabel)
	}

	again := serve(AdminStoreGroupDelete(svc, logg), sess, call{method: http.MethodDelete, target: "/", params: params})
	if again.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete got %d", again.Code)
	}
}

func TestStoreGroupUpdateRejectsTakenStore(t *testing.T) {
	svc := newGroupService(t)
	sess := seededSession(t, "ADMIN001")

	rec := serve(AdminStoreGroupUpdate(svc, logger.Nop()), sess, call{
		method: http.MethodPut,
		target: "/api/admin/v1/store-groups/G001",
		body:   `{"parent_store_id":"HRA101","child_store_ids":["HRA104"]}`,
		params: map[string]string{"groupId": "G001"},
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d: %s", rec.Code, rec.Body.String())
	}

	missing := serve(AdminStoreGroupUpdate(svc, logger.Nop()), sess, call{
		method: http.MethodPut,
		target: "/api/admin/v1/store-groups/G999",
		body:   `{"parent_store_id":"HRA103"}`,
		params: map[string]string{"groupId": "G999"},
	})
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", missing.Code)
	}
}

func TestAdminStoreSearch(t *testing.T) {
	svc := newGroupService(t)
	sess := seededSession(t, "ADMIN001")
	h := AdminStoreSearch(svc, logger.Nop())

	var byName []groups.StoreDTO
	decodeData(t, serve(h, sess, call{method: http.MethodGet, target: "/api/admin/v1/stores?q=market"}), &byName)
	if len(byName) != 3 || byName[0].ID != "HRA101" || byName[2].ID != "HRA106" {
		t.Fatalf("unexpected search result %+v", byName)
	}

	var excluded []groups.StoreDTO
	decodeData(t, serve(h, sess, call{method: http.MethodGet, target: "/api/admin/v1/stores?q=MARKET&exclude=HRA101"}), &excluded)
	if len(excluded) != 2 || excluded[0].ID != "HRA105" {
		t.Fatalf("expected HRA105 and HRA106, got %+v", excluded)
	}

	var byID []groups.StoreDTO
	decodeData(t, serve(h, sess, call{method: http.MethodGet, target: "/api/admin/v1/stores?q=hra103"}), &byID)
	if len(byID) != 1 || byID[0].Name != "Hillside Store" {
		t.Fatalf("expected HRA103 by id, got %+v", byID)
	}

	var all []groups.StoreDTO
	decodeData(t, serve(h, sess, call{method: http.MethodGet, target: "/api/admin/v1/stores"}), &all)
	if len(all) != 6 {
		t.Fatalf("expected every store, got %d", len(all))
	}
}

func TestAdminGuests(t *testing.T) {
	sess := seededSession(t, "ADMIN001")
	if err := sess.Workspace.AddGuest(workspace.Guest{ID: "guest-1", Name: "Pat Lee", Email: "pat@example.com"}); err != nil {
		t.Fatalf("add guest: %v", err)
	}

	rec := serve(AdminGuests(logger.Nop()), sess, call{method: http.MethodGet, target: "/api/admin/v1/guests"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var guests []workspace.Guest
	decodeData(t, rec, &guests)
	if len(guests) != 1 || guests[0].Email != "pat@example.com" {
		t.Fatalf("unexpected guests %+v", guests)
	}

	anon := serve(AdminGuests(logger.Nop()), nil, call{method: http.MethodGet, target: "/api/admin/v1/guests"})
	if anon.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session got %d", anon.Code)
	}
}
