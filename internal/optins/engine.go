package optins

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/groups"
	"github.com/angelmondragon/hra-tradeshow-backend/internal/workspace"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/hra-tradeshow-backend/pkg/errors"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"github.com/google/uuid"
)

type metricsRecorder interface {
	AddOptIns(role, vendor string, count, cases int)
}

// Request is one opt-in submission. A zero CaseCount means the deal minimum.
type Request struct {
	DealID    workspace.DealID
	CaseCount int
	StoreIDs  []workspace.StoreID
}

type Result struct {
	Created         []workspace.OptIn   `json:"created"`
	SkippedStoreIDs []workspace.StoreID `json:"skipped_store_ids"`
}

type VendorResult struct {
	Created        []workspace.OptIn  `json:"created"`
	SkippedDealIDs []workspace.DealID `json:"skipped_deal_ids"`
}

// GroupSelection is the "select all group stores" preset for the primary store.
type GroupSelection struct {
	GroupID workspace.GroupID `json:"group_id,omitempty"`
	Stores  []workspace.Store `json:"stores"`
}

// Engine turns opt-in submissions into OptIn records inside a session workspace.
type Engine struct {
	logg    *logger.Logger
	metrics metricsRecorder
	now     func() time.Time
	newID   func() (uuid.UUID, error)
}

func NewEngine(logg *logger.Logger, metrics metricsRecorder) (*Engine, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Engine{
		logg:    logg,
		metrics: metrics,
		now:     time.Now,
		newID:   uuid.NewV7,
	}, nil
}

// OptIn records one opt-in per resolved store. Stores that already hold an
// opt-in for the deal are skipped; when every target is skipped the call
// fails with a conflict and nothing is written.
func (e *Engine) OptIn(ctx context.Context, sess *workspace.Session, req Request) (*Result, error) {
	if sess == nil || sess.Workspace == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required")
	}
	user := sess.User

	var (
		result Result
		deal   workspace.Deal
	)
	err := sess.Workspace.Update(func(tx *workspace.Snapshot) error {
		var ok bool
		deal, ok = tx.FindDeal(req.DealID)
		if !ok {
			return pkgerrors.NotFound("deal", req.DealID.String())
		}

		cases := req.CaseCount
		if cases == 0 {
			cases = deal.MinQuantity
		}
		if cases < deal.MinQuantity {
			return pkgerrors.Invalid("case count below deal minimum", map[string]string{
				"case_count": fmt.Sprintf("must be at least %d", deal.MinQuantity),
			})
		}

		targets, err := ResolveStores(user, req.StoreIDs)
		if err != nil {
			return err
		}

		created, skipped, err := e.build(tx, deal, cases, targets, user)
		if err != nil {
			return err
		}
		if len(created) == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "already opted in to this deal").
				WithDetails(map[string]any{"deal_id": deal.ID, "store_ids": skipped})
		}
		if err := e.commit(tx, user, created); err != nil {
			return err
		}

		result = Result{Created: created, SkippedStoreIDs: skipped}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.record(ctx, user, deal.VendorID, result.Created)
	if len(result.SkippedStoreIDs) > 0 {
		e.logg.Info(e.logg.WithFields(ctx, map[string]any{
			"deal_id":   deal.ID,
			"store_ids": result.SkippedStoreIDs,
		}), "optin.duplicate_skipped")
	}
	return &result, nil
}

// OptInVendor opts into every deal of the vendor at its minimum quantity,
// using the default store selection. Deals the user already holds are skipped.
func (e *Engine) OptInVendor(ctx context.Context, sess *workspace.Session, vendorID workspace.VendorID) (*VendorResult, error) {
	if sess == nil || sess.Workspace == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session required")
	}
	user := sess.User

	result := VendorResult{Created: []workspace.OptIn{}, SkippedDealIDs: []workspace.DealID{}}
	err := sess.Workspace.Update(func(tx *workspace.Snapshot) error {
		if _, ok := tx.FindVendor(vendorID); !ok {
			return pkgerrors.NotFound("vendor", vendorID.String())
		}
		targets, err := ResolveStores(user, nil)
		if err != nil {
			return err
		}

		for _, deal := range tx.Deals {
			if deal.VendorID != vendorID {
				continue
			}
			if IsOptedIn(tx, deal.ID, user) {
				result.SkippedDealIDs = append(result.SkippedDealIDs, deal.ID)
				continue
			}
			created, _, err := e.build(tx, deal, deal.MinQuantity, targets, user)
			if err != nil {
				return err
			}
			if len(created) == 0 {
				result.SkippedDealIDs = append(result.SkippedDealIDs, deal.ID)
				continue
			}
			if err := e.commit(tx, user, created); err != nil {
				return err
			}
			result.Created = append(result.Created, created...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.record(ctx, user, vendorID, result.Created)
	return &result, nil
}

// GroupSelection returns {parent} ∪ children of the primary store's group.
// Users outside a group get an empty selection.
func (e *Engine) GroupSelection(sess *workspace.Session) GroupSelection {
	out := GroupSelection{Stores: []workspace.Store{}}
	if sess == nil || sess.Workspace == nil {
		return out
	}
	primary, ok := sess.User.PrimaryStore()
	if !ok {
		return out
	}
	snap := sess.Workspace.View()
	r := groups.NewResolver(&snap)
	g, ok := r.FindGroupFor(primary)
	if !ok {
		return out
	}
	out.GroupID = g.ID
	out.Stores = r.AllGroupStores(g)
	return out
}

func (e *Engine) build(tx *workspace.Snapshot, deal workspace.Deal, cases int, targets []workspace.StoreID, user workspace.User) ([]workspace.OptIn, []workspace.StoreID, error) {
	now := e.now()
	created := make([]workspace.OptIn, 0, len(targets))
	skipped := []workspace.StoreID{}
	for _, storeID := range targets {
		if isDuplicate(tx, deal.ID, storeID, user) {
			skipped = append(skipped, storeID)
			continue
		}
		id, err := e.newID()
		if err != nil {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate opt-in id")
		}
		created = append(created, workspace.OptIn{
			ID:        id,
			DealID:    deal.ID,
			StoreID:   storeID,
			UserID:    user.ID,
			CaseCount: cases,
			Timestamp: now,
			IsGuest:   user.Role == enums.UserRoleGuest,
		})
	}
	return created, skipped, nil
}

func (e *Engine) commit(tx *workspace.Snapshot, user workspace.User, created []workspace.OptIn) error {
	tx.AddOptIns(created...)
	if user.Role != enums.UserRoleGuest || len(created) == 0 {
		return nil
	}
	err := tx.RecordGuestDeal(user.ID, created[0].DealID)
	if err != nil && !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		return err
	}
	return nil
}

func (e *Engine) record(ctx context.Context, user workspace.User, vendorID workspace.VendorID, created []workspace.OptIn) {
	if len(created) == 0 {
		return
	}
	cases := 0
	for _, o := range created {
		cases += o.CaseCount
	}
	if e.metrics != nil {
		e.metrics.AddOptIns(user.Role.String(), vendorID.String(), len(created), cases)
	}
	e.logg.Info(e.logg.WithFields(ctx, map[string]any{
		"deal_id":     created[0].DealID,
		"vendor_id":   vendorID,
		"optin_count": len(created),
		"case_count":  cases,
		"is_guest":    created[0].IsGuest,
	}), "optin.created")
}
