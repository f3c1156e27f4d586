package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/hra-tradeshow-backend/api/responses"
	"github.com/angelmondragon/hra-tradeshow-backend/api/validators"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/optins"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
)

// OptInEngine is the opt-in surface the HTTP layer drives.
type OptInEngine interface {
	OptIn(ctx context.Context, sess *workspace.Session, req optins.Request) (*optins.Result, error)
	OptInVendor(ctx context.Context, sess *workspace.Session, vendorID workspace.VendorID) (*optins.VendorResult, error)
	GroupSelection(sess *workspace.Session) optins.GroupSelection
}

type optInRequest struct {
	CaseCount int      `json:"case_count" validate:"omitempty,min=1"`
	StoreIDs  []string `json:"store_ids" validate:"omitempty,max=50,dive,required,max=64"`
}

// OptInGroupSelection returns the "select all group stores" preset.
func OptInGroupSelection(engine OptInEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "opt-in engine unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, engine.GroupSelection(sess))
	}
}

// DealOptIn records opt-ins for a deal. An empty body opts in at the deal
// minimum using the default store selection.
func DealOptIn(engine OptInEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "opt-in engine unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		var body optInRequest
		if err := validators.DecodeOptionalJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeIDs := make([]workspace.StoreID, 0, len(body.StoreIDs))
		for _, id := range body.StoreIDs {
			storeIDs = append(storeIDs, workspace.StoreID(strings.TrimSpace(id)))
		}

		result, err := engine.OptIn(r.Context(), sess, optins.Request{
			DealID:    workspace.DealID(chi.URLParam(r, "dealId")),
			CaseCount: body.CaseCount,
			StoreIDs:  storeIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// VendorOptIn opts into every deal of a vendor, the "opt in to all" action after a QR scan.
func VendorOptIn(engine OptInEngine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if engine == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "opt-in engine unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		result, err := engine.OptInVendor(r.Context(), sess, workspace.VendorID(chi.URLParam(r, "vendorId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
