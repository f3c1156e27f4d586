package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/hra-tradeshow-backend/api/responses"
	"github.com/angelmondragon/hra-tradeshow-backend/api/validators"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/deals"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/reports"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
)

type dealRequest struct {
	VendorID    string `json:"vendor_id" validate:"max=64"`
	Brand       string `json:"brand" validate:"max=120"`
	ProductName string `json:"product_name" validate:"max=200"`
	ImageURL    string `json:"image_url" validate:"omitempty,url,max=2048"`
	ExpiryDate  string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	MinQuantity int    `json:"min_quantity"`
	RebateText  string `json:"rebate_text" validate:"max=120"`
}

func (r dealRequest) toInput() deals.Input {
	return deals.Input{
		VendorID:    workspace.VendorID(strings.TrimSpace(r.VendorID)),
		Brand:       validators.SanitizeString(r.Brand, 120),
		ProductName: validators.SanitizeString(r.ProductName, 200),
		ImageURL:    strings.TrimSpace(r.ImageURL),
		ExpiryDate:  strings.TrimSpace(r.ExpiryDate),
		MinQuantity: r.MinQuantity,
		RebateText:  validators.SanitizeString(r.RebateText, 120),
	}
}

// DealList returns deals with the caller's opted-in state, optionally filtered by vendor_id.
func DealList(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "deal service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}
		filter := deals.Filter{VendorID: workspace.VendorID(validators.QueryString(r, "vendor_id"))}
		responses.WriteSuccess(w, svc.List(r.Context(), sess, filter))
	}
}

func DealDetail(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "deal service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}
		deal, err := svc.Get(r.Context(), sess, workspace.DealID(chi.URLParam(r, "dealId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

// AdminDealCreate adds a deal to the admin's workspace.
func AdminDealCreate(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "deal service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		var body dealRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deal, err := svc.Create(r.Context(), sess.Workspace, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, deal)
	}
}

// AdminDealUpdate replaces a deal by id.
func AdminDealUpdate(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "deal service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		var body dealRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deal, err := svc.Update(r.Context(), sess.Workspace, workspace.DealID(chi.URLParam(r, "dealId")), body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

// AdminDealList is the admin's raw deal table.
func AdminDealList(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, sess.Workspace.Deals())
	}
}

// VendorDeals is the vendor dashboard: own deals with sign-up counts.
func VendorDeals(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "deal service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, svc.VendorDashboard(r.Context(), sess.Workspace, sess.User.VendorID))
	}
}

// VendorDealSignupsCSV downloads the opt-ins of one of the vendor's own deals.
func VendorDealSignupsCSV(svc deals.Service, reportSvc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || reportSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		deal, optIns, err := svc.SignUps(r.Context(), sess.Workspace, sess.User.VendorID, workspace.DealID(chi.URLParam(r, "dealId")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		export, err := reportSvc.VendorSignupsCSV(r.Context(), sess.Workspace, deal.ID, optIns)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render csv"))
			return
		}
		responses.WriteAttachment(w, "text/csv; charset=utf-8", export.Filename, export.Body)
	}
}
