package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/hra-tradeshow-backend/api/responses"
	"github.com/angelmondragon/hra-tradeshow-backend/api/validators"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/deals"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/qrcode"
)

type qrRenderer interface {
	VendorPNG(vendorID string) ([]byte, error)
	VendorLink(vendorID string) string
}

type qrScanRequest struct {
	Data string `json:"data" validate:"required,max=2048"`
}

type qrScanResponse struct {
	Vendor workspace.Vendor `json:"vendor"`
	Link   string           `json:"link"`
	Deals  []deals.DealDTO  `json:"deals"`
}

// VendorList returns every vendor in the session workspace.
func VendorList(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, sess.Workspace.Vendors())
	}
}

// VendorQRCode renders the vendor's booth QR code as a PNG.
func VendorQRCode(gen qrRenderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gen == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "qr generator unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		vendorID := workspace.VendorID(strings.TrimSpace(chi.URLParam(r, "vendorId")))
		if _, found := sess.Workspace.FindVendor(vendorID); !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.NotFound("vendor", vendorID.String()))
			return
		}

		png, err := gen.VendorPNG(vendorID.String())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render qr code"))
			return
		}
		w.Header().Set("Cache-Control", "public, max-age=3600")
		responses.WriteAttachment(w, "image/png", "", png)
	}
}

// QRScan resolves scanned booth data to the vendor and its deals.
func QRScan(svc deals.Service, gen qrRenderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || gen == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "deal service unavailable"))
			return
		}
		sess, ok := requireSession(w, r, logg)
		if !ok {
			return
		}

		var body qrScanRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := qrcode.ParseVendorLink(body.Data)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Invalid("unrecognized QR code", map[string]string{"data": err.Error()}))
			return
		}
		vendor, found := sess.Workspace.FindVendor(workspace.VendorID(id))
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.NotFound("vendor", id))
			return
		}

		responses.WriteSuccess(w, qrScanResponse{
			Vendor: vendor,
			Link:   gen.VendorLink(id),
			Deals:  svc.List(r.Context(), sess, deals.Filter{VendorID: vendor.ID}),
		})
	}
}
