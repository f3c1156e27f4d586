package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/hra-tradeshow-backend/api/responses"
	"github.com/angelmondragon/hra-tradeshow-backend/api/validators"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/groups"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
)

type storeGroupRequest struct {
	ParentStoreID string   `json:"parent_store_id" validate:"max=64"`
	ChildStoreIDs []string `json:"child_store_ids" validate:"omitempty,max=100,dive,max=64"`
}

func (r storeGroupRequest) toInput() groups.Input {
	children := make([]workspace.StoreID, 0, len(r.ChildStoreIDs))
	for _, id := range r.ChildStoreIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			children = append(children, workspace.StoreID(trimmed))
		}
	}
	return groups.Input{
		ParentStoreID: workspace.StoreID(strings.TrimSpace(r.ParentStoreID)),
		ChildStoreIDs: children,
	}
}

// AdminStoreSearch finds stores by id or name, excluding the group parent being edited.
func AdminStoreSearch(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "group service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}
		query := validators.QueryString(r, "q")
		exclude := workspace.StoreID(validators.QueryString(r, "exclude"))
		responses.WriteSuccess(w, svc.SearchStores(r.Context(), sess.Workspace, query, exclude))
	}
}

func AdminStoreGroupList(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "group service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, svc.List(r.Context(), sess.Workspace))
	}
}

func AdminStoreGroupCreate(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "group service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		var body storeGroupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		group, err := svc.Create(r.Context(), sess.Workspace, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, group)
	}
}

func AdminStoreGroupUpdate(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "group service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		var body storeGroupRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		group, err := svc.Update(r.Context(), sess.Workspace, workspace.GroupID(chi.URLParam(r, "groupId")), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, group)
	}
}

func AdminStoreGroupDelete(svc groups.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "group service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		id := workspace.GroupID(chi.URLParam(r, "groupId"))
		if err := svc.Delete(r.Context(), sess.Workspace, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted", "group_id": id.String()})
	}
}

// AdminGuests lists guest registrations in the admin's workspace.
func AdminGuests(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, sess.Workspace.Guests())
	}
}
