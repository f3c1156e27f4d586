package controllers

import (
	"net/http"

	"github.com/angelmondragon/hra-tradeshow-backend/api/responses"
	"github.com/angelmondragon/hra-tradeshow-backend/api/validators"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/reports"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/pagination"
)

func reportFilter(r *http.Request) reports.Filter {
	get := func(key string) string { return validators.QueryString(r, key) }
	return reports.Filter{
		VendorID: workspace.VendorID(get("vendor_id")),
		StoreID:  workspace.StoreID(get("store_id")),
		GroupID:  workspace.GroupID(get("group_id")),
		Date:     get("date"),
		From:     get("from"),
		To:       get("to"),
	}
}

// AdminAnalytics returns totals, vendor performance and top products.
func AdminAnalytics(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, svc.Analytics(r.Context(), sess.Workspace))
	}
}

// AdminReports lists filtered report rows, one cursor page at a time.
func AdminReports(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		params := pagination.Params{Limit: limit, Cursor: validators.QueryString(r, "cursor")}

		page, err := svc.Rows(r.Context(), sess.Workspace, reportFilter(r), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// AdminReportsCSV downloads every row matching the filter.
func AdminReportsCSV(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		export, err := svc.ExportCSV(r.Context(), sess.Workspace, reportFilter(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteAttachment(w, "text/csv; charset=utf-8", export.Filename, export.Body)
	}
}
