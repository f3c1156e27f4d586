package deals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/optins"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/rebate"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Service lists deals for any role and lets admins maintain them.
type Service interface {
	List(ctx context.Context, sess *workspace.Session, filter Filter) []DealDTO
	Get(ctx context.Context, sess *workspace.Session, id workspace.DealID) (*DealDTO, error)
	Create(ctx context.Context, ws *workspace.Workspace, input Input) (*workspace.Deal, error)
	Update(ctx context.Context, ws *workspace.Workspace, id workspace.DealID, input Input) (*workspace.Deal, error)
	VendorDashboard(ctx context.Context, ws *workspace.Workspace, vendorID workspace.VendorID) []VendorDealDTO
	SignUps(ctx context.Context, ws *workspace.Workspace, vendorID workspace.VendorID, dealID workspace.DealID) (*workspace.Deal, []workspace.OptIn, error)
}

type service struct {
	logg  *logger.Logger
	now   func() time.Time
	loc   *time.Location
	newID func() workspace.DealID
}

// NewService builds the deal service. loc decides which calendar day "today" is for expiry.
func NewService(logg *logger.Logger, loc *time.Location) (Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		logg: logg,
		now:  time.Now,
		loc:  loc,
		newID: func() workspace.DealID {
			return workspace.DealID("deal-" + uuid.NewString())
		},
	}, nil
}

func (s *service) List(ctx context.Context, sess *workspace.Session, filter Filter) []DealDTO {
	snap := sess.Workspace.View()
	today := s.now().In(s.loc).Format(dateLayout)

	out := make([]DealDTO, 0, len(snap.Deals))
	for _, d := range snap.Deals {
		if filter.VendorID != "" && d.VendorID != filter.VendorID {
			continue
		}
		out = append(out, s.view(&snap, sess.User, d, today))
	}
	return out
}

func (s *service) Get(ctx context.Context, sess *workspace.Session, id workspace.DealID) (*DealDTO, error) {
	snap := sess.Workspace.View()
	d, ok := snap.FindDeal(id)
	if !ok {
		return nil, pkgerrors.NotFound("deal", id.String())
	}
	dto := s.view(&snap, sess.User, d, s.now().In(s.loc).Format(dateLayout))
	return &dto, nil
}

func (s *service) view(snap *workspace.Snapshot, user workspace.User, d workspace.Deal, today string) DealDTO {
	dto := DealDTO{
		Deal:      d,
		IsExpired: d.ExpiryDate != "" && d.ExpiryDate < today,
		IsOptedIn: optins.IsOptedIn(snap, d.ID, user),
	}
	if perCase, err := rebate.PerCase(d.RebateText); err == nil {
		dto.RebatePerCase = rebate.Format(perCase)
	}
	return dto
}

func (s *service) Create(ctx context.Context, ws *workspace.Workspace, input Input) (*workspace.Deal, error) {
	var created workspace.Deal
	err := ws.Update(func(tx *workspace.Snapshot) error {
		deal, err := buildDeal(tx, input)
		if err != nil {
			return err
		}
		deal.ID = s.newID()
		if err := tx.AddDeal(deal); err != nil {
			return err
		}
		created = deal
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"deal_id": created.ID, "vendor_id": created.VendorID}), "deal.created")
	return &created, nil
}

// Update replaces every field of the deal; the id is kept.
func (s *service) Update(ctx context.Context, ws *workspace.Workspace, id workspace.DealID, input Input) (*workspace.Deal, error) {
	var updated workspace.Deal
	err := ws.Update(func(tx *workspace.Snapshot) error {
		if _, ok := tx.FindDeal(id); !ok {
			return pkgerrors.NotFound("deal", id.String())
		}
		deal, err := buildDeal(tx, input)
		if err != nil {
			return err
		}
		deal.ID = id
		if err := tx.UpdateDeal(deal); err != nil {
			return err
		}
		updated = deal
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"deal_id": updated.ID, "vendor_id": updated.VendorID}), "deal.updated")
	return &updated, nil
}

func (s *service) VendorDashboard(ctx context.Context, ws *workspace.Workspace, vendorID workspace.VendorID) []VendorDealDTO {
	snap := ws.View()
	out := []VendorDealDTO{}
	for _, d := range snap.Deals {
		if d.VendorID != vendorID {
			continue
		}
		row := VendorDealDTO{Deal: d}
		for _, o := range snap.OptIns {
			if o.DealID == d.ID {
				row.SignUps++
				row.TotalCases += o.CaseCount
			}
		}
		out = append(out, row)
	}
	return out
}

// SignUps returns the opt-ins of one of the vendor's deals. Deals owned by
// another vendor are forbidden.
func (s *service) SignUps(ctx context.Context, ws *workspace.Workspace, vendorID workspace.VendorID, dealID workspace.DealID) (*workspace.Deal, []workspace.OptIn, error) {
	snap := ws.View()
	d, ok := snap.FindDeal(dealID)
	if !ok {
		return nil, nil, pkgerrors.NotFound("deal", dealID.String())
	}
	if d.VendorID != vendorID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeForbidden, "deal belongs to another vendor")
	}
	out := []workspace.OptIn{}
	for _, o := range snap.OptIns {
		if o.DealID == dealID {
			out = append(out, o)
		}
	}
	return &d, out, nil
}

func buildDeal(tx *workspace.Snapshot, input Input) (workspace.Deal, error) {
	fields := map[string]string{}

	vendor, ok := tx.FindVendor(workspace.VendorID(strings.TrimSpace(input.VendorID.String())))
	if !ok {
		fields["vendor_id"] = "select a valid vendor"
	}
	if strings.TrimSpace(input.ProductName) == "" {
		fields["product_name"] = "required"
	}
	if input.MinQuantity < 1 {
		fields["min_quantity"] = "must be at least 1"
	}
	expiry := strings.TrimSpace(input.ExpiryDate)
	if expiry != "" {
		if _, err := time.Parse(dateLayout, expiry); err != nil {
			fields["expiry_date"] = "must be YYYY-MM-DD"
		}
	}
	if len(fields) > 0 {
		msg := "invalid deal"
		if _, vendorMissing := fields["vendor_id"]; vendorMissing {
			msg = "select a valid vendor"
		}
		return workspace.Deal{}, pkgerrors.Invalid(msg, fields)
	}

	image := strings.TrimSpace(input.ImageURL)
	if image == "" {
		image = DefaultImageURL
	}
	return workspace.Deal{
		VendorID:    vendor.ID,
		Brand:       strings.TrimSpace(input.Brand),
		ProductName: strings.TrimSpace(input.ProductName),
		ImageURL:    image,
		ExpiryDate:  expiry,
		MinQuantity: input.MinQuantity,
		RebateText:  strings.TrimSpace(input.RebateText),
		VendorName:  vendor.Name,
	}, nil
}
